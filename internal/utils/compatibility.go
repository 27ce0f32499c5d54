package utils

import "chamber-connect-backend/internal/domain"

// Compatibility scoring weights. The four terms sum to exactly 1.0, so the
// cap only bites when every predicate fires.
const (
	weightGeography  = 0.3
	weightSize       = 0.2
	weightIndustries = 0.3
	weightGoals      = 0.2

	sizeRatioThreshold = 0.5
)

// Fixed-order reason strings reported to both chambers.
const (
	ReasonSameGeography          = "Same geographic scope"
	ReasonSimilarSize            = "Similar size"
	ReasonComplementaryIndustry  = "Complementary industries"
	ReasonSharedPartnershipGoals = "Shared partnership goals"
)

// CompatibilityResult is the scored match between two chamber profiles.
type CompatibilityResult struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// CompatibilityScore weighs categorical and numeric comparisons between two
// chamber discovery profiles into a score in [0, 1] with human-readable
// reasons listing which predicates fired, in fixed order.
func CompatibilityScore(a, b domain.DiscoveryProfile) CompatibilityResult {
	var score float64
	var reasons []string

	if a.GeographicScope != "" && a.GeographicScope == b.GeographicScope {
		score += weightGeography
		reasons = append(reasons, ReasonSameGeography)
	}

	if similarSize(a.MemberCount, b.MemberCount) {
		score += weightSize
		reasons = append(reasons, ReasonSimilarSize)
	}

	if complementaryIndustries(a.PrimaryIndustries, b.PrimaryIndustries) {
		score += weightIndustries
		reasons = append(reasons, ReasonComplementaryIndustry)
	}

	if intersects(a.PartnershipGoals, b.PartnershipGoals) {
		score += weightGoals
		reasons = append(reasons, ReasonSharedPartnershipGoals)
	}

	if score > 1.0 {
		score = 1.0
	}
	return CompatibilityResult{Score: score, Reasons: reasons}
}

// similarSize reports whether the relative size gap is under the threshold.
// Two zero-size chambers are not comparable; skipping them avoids a 0/0.
func similarSize(a, b int32) bool {
	max := a
	if b > max {
		max = b
	}
	if max <= 0 {
		return false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return float64(diff)/float64(max) < sizeRatioThreshold
}

// complementaryIndustries rewards partial overlap: the lists must share at
// least one industry while the combined set is still larger than the shared
// one, so full duplication and total disjointness both score nothing.
func complementaryIndustries(a, b []string) bool {
	shared := intersectionSize(a, b)
	if shared == 0 {
		return false
	}
	complementary := len(a) + len(b) - shared
	return complementary > shared
}

func intersects(a, b []string) bool {
	return intersectionSize(a, b) > 0
}

func intersectionSize(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	n := 0
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}
