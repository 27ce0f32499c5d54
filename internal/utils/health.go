package utils

// HealthInputs are the per-chamber counters the admin dashboard already has
// in hand when it renders the health card.
type HealthInputs struct {
	MemberCount        int32
	ActiveMembers      int32
	VerifiedBusinesses int32
	TotalBusinesses    int32
	EventsThisMonth    int32
	ScansThisMonth     int32
}

// Component weights for the 0-100 health score.
const (
	healthWeightActivity     = 40.0
	healthWeightVerification = 30.0
	healthWeightEvents       = 15.0
	healthWeightScans        = 15.0

	// A chamber running this many events or collecting this many scans in a
	// month earns the full component.
	healthFullEvents = 4
	healthFullScans  = 200
)

// HealthScore reduces chamber activity counters to a 0-100 score. Single
// pass, no persistence; recomputed per dashboard load.
func HealthScore(in HealthInputs) int {
	score := ratio(in.ActiveMembers, in.MemberCount)*healthWeightActivity +
		ratio(in.VerifiedBusinesses, in.TotalBusinesses)*healthWeightVerification +
		capped(in.EventsThisMonth, healthFullEvents)*healthWeightEvents +
		capped(in.ScansThisMonth, healthFullScans)*healthWeightScans

	rounded := int(score + 0.5)
	if rounded > 100 {
		rounded = 100
	}
	return rounded
}

func ratio(part, whole int32) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

func capped(n, full int32) float64 {
	if n <= 0 {
		return 0
	}
	if n >= full {
		return 1
	}
	return float64(n) / float64(full)
}
