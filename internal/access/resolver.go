package access

import (
	"sort"

	"chamber-connect-backend/internal/domain"
)

// ResolvePrimaryMembership selects the single chamber context for a user
// holding possibly-multiple memberships. Precedence: any admin membership,
// else any staff membership, else the earliest join. Candidates are stable-
// sorted by joined_at ascending first, so ties within the admin and staff
// branches resolve to the earliest join regardless of input order.
func ResolvePrimaryMembership(memberships []domain.ChamberMembership) *domain.ChamberMembership {
	if len(memberships) == 0 {
		return nil
	}

	sorted := make([]domain.ChamberMembership, len(memberships))
	copy(sorted, memberships)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].JoinedAt.Before(sorted[j].JoinedAt)
	})

	for _, role := range []domain.MembershipRole{domain.MembershipRoleAdmin, domain.MembershipRoleStaff} {
		for i := range sorted {
			if sorted[i].Role == role {
				return &sorted[i]
			}
		}
	}
	return &sorted[0]
}
