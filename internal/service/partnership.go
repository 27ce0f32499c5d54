package service

import (
	"context"
	"sort"
	"time"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
	"chamber-connect-backend/internal/utils"
)

type partnershipService struct {
	partnershipRepo repository.PartnershipRepository
	membershipRepo  repository.MembershipRepository
	subSvc          SubscriptionService
}

func NewPartnershipService(
	partnershipRepo repository.PartnershipRepository,
	membershipRepo repository.MembershipRepository,
	subSvc SubscriptionService,
) PartnershipService {
	return &partnershipService{
		partnershipRepo: partnershipRepo,
		membershipRepo:  membershipRepo,
		subSvc:          subSvc,
	}
}

func (s *partnershipService) UpsertDiscoveryProfile(ctx context.Context, userID int32, profile *domain.DiscoveryProfile) error {
	const op = "partnership.upsert_profile"

	if err := s.requireCrossChamber(ctx, op, userID, profile.ChamberID); err != nil {
		return err
	}

	// The advertised member count mirrors the live roster at save time.
	count, err := s.membershipRepo.CountActive(ctx, profile.ChamberID)
	if err == nil {
		profile.MemberCount = count
	}
	return s.partnershipRepo.UpsertProfile(ctx, profile)
}

// DiscoverChambers lists every other visible chamber profile scored against
// the caller's own profile, best matches first.
func (s *partnershipService) DiscoverChambers(ctx context.Context, userID, chamberID int32) ([]DiscoveryMatch, error) {
	const op = "partnership.discover"

	if err := s.requireCrossChamber(ctx, op, userID, chamberID); err != nil {
		return nil, err
	}

	own, err := s.partnershipRepo.GetProfileByChamber(ctx, chamberID)
	if err != nil {
		return nil, apperr.Domain(op, "no_profile", "publish a discovery profile before browsing the network").
			WithChamber(chamberID)
	}

	profiles, err := s.partnershipRepo.ListVisibleProfiles(ctx, chamberID)
	if err != nil {
		return nil, err
	}

	matches := make([]DiscoveryMatch, 0, len(profiles))
	for _, p := range profiles {
		matches = append(matches, DiscoveryMatch{
			Profile:       p,
			Compatibility: utils.CompatibilityScore(*own, p),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Compatibility.Score > matches[j].Compatibility.Score
	})
	return matches, nil
}

func (s *partnershipService) RequestPartnership(ctx context.Context, userID, chamberID, partnerChamberID int32, message string) (*domain.ChamberPartnership, error) {
	const op = "partnership.request"

	if err := s.requireCrossChamber(ctx, op, userID, chamberID); err != nil {
		return nil, err
	}
	if chamberID == partnerChamberID {
		return nil, apperr.Validation(op, "partner_chamber_id", "a chamber cannot partner with itself")
	}

	own, err := s.partnershipRepo.GetProfileByChamber(ctx, chamberID)
	if err != nil {
		return nil, apperr.Domain(op, "no_profile", "publish a discovery profile before requesting partnerships").
			WithChamber(chamberID)
	}
	partner, err := s.partnershipRepo.GetProfileByChamber(ctx, partnerChamberID)
	if err != nil {
		return nil, apperr.Domain(op, "partner_not_discoverable", "the requested chamber is not in the network").
			WithChamber(chamberID)
	}
	if !partner.Visible {
		return nil, apperr.Domain(op, "partner_not_discoverable", "the requested chamber is not in the network").
			WithChamber(chamberID)
	}

	existing, err := s.partnershipRepo.ListPartnershipsByChamber(ctx, chamberID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if involves(p, partnerChamberID) && (p.Status == domain.PartnershipStatusPending || p.Status == domain.PartnershipStatusAccepted) {
			return nil, apperr.Domain(op, "partnership_exists", "an open partnership with this chamber already exists").
				WithChamber(chamberID)
		}
	}

	// The score is frozen at request time so both sides see the same number.
	result := utils.CompatibilityScore(*own, *partner)
	partnership := &domain.ChamberPartnership{
		RequestingChamber:  chamberID,
		PartnerChamber:     partnerChamberID,
		Status:             domain.PartnershipStatusPending,
		Message:            message,
		CompatibilityScore: result.Score,
	}
	if err := s.partnershipRepo.CreatePartnership(ctx, partnership); err != nil {
		return nil, err
	}
	return partnership, nil
}

func (s *partnershipService) RespondToPartnership(ctx context.Context, userID, chamberID, partnershipID int32, accept bool) (*domain.ChamberPartnership, error) {
	const op = "partnership.respond"

	if err := s.requireCrossChamber(ctx, op, userID, chamberID); err != nil {
		return nil, err
	}

	partnership, err := s.partnershipRepo.GetPartnership(ctx, partnershipID)
	if err != nil {
		return nil, err
	}
	if partnership.PartnerChamber != chamberID {
		return nil, apperr.Domain(op, "forbidden", "only the invited chamber can respond").
			WithChamber(chamberID).WithUser(userID)
	}
	if partnership.Status != domain.PartnershipStatusPending {
		return nil, apperr.Domain(op, "not_pending", "the partnership request has already been answered").
			WithChamber(chamberID)
	}

	now := time.Now()
	partnership.RespondedAt = &now
	if accept {
		partnership.Status = domain.PartnershipStatusAccepted
	} else {
		partnership.Status = domain.PartnershipStatusDeclined
	}
	if err := s.partnershipRepo.UpdatePartnership(ctx, partnership); err != nil {
		return nil, err
	}
	return partnership, nil
}

func (s *partnershipService) ListPartnerships(ctx context.Context, chamberID int32) ([]domain.ChamberPartnership, error) {
	return s.partnershipRepo.ListPartnershipsByChamber(ctx, chamberID)
}

func (s *partnershipService) requireCrossChamber(ctx context.Context, op string, userID, chamberID int32) error {
	perms, err := s.subSvc.GetPermissions(ctx, userID, chamberID)
	if err != nil {
		return err
	}
	if !perms.CanAccessCrossChamber {
		return apperr.Domain(op, "forbidden", "cross-chamber networking requires a plan with networking enabled").
			WithChamber(chamberID).WithUser(userID)
	}
	return nil
}

func involves(p domain.ChamberPartnership, chamberID int32) bool {
	return p.RequestingChamber == chamberID || p.PartnerChamber == chamberID
}
