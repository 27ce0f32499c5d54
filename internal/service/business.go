package service

import (
	"context"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type businessService struct {
	businessRepo   repository.BusinessRepository
	membershipRepo repository.MembershipRepository
}

func NewBusinessService(businessRepo repository.BusinessRepository, membershipRepo repository.MembershipRepository) BusinessService {
	return &businessService{
		businessRepo:   businessRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *businessService) CreateBusiness(ctx context.Context, userID int32, b *domain.Business) error {
	const op = "business.create"

	membership, err := s.membershipRepo.GetByUserAndChamber(ctx, userID, b.ChamberID)
	if err != nil {
		return err
	}
	if membership.Status != domain.MembershipStatusActive {
		return apperr.Domain(op, "membership_inactive", "only active members can list a business").
			WithChamber(b.ChamberID).WithUser(userID)
	}

	if existing, err := s.businessRepo.GetByOwner(ctx, b.ChamberID, userID); err == nil && existing != nil {
		return apperr.Domain(op, "business_exists", "a business profile already exists for this member").
			WithChamber(b.ChamberID).WithUser(userID)
	}

	b.OwnerUserID = userID
	b.MembershipStatus = domain.BusinessMemberStatusPending
	b.VerificationStatus = domain.VerificationStatusPending
	return s.businessRepo.Create(ctx, b)
}

func (s *businessService) GetBusiness(ctx context.Context, id int32) (*domain.Business, error) {
	return s.businessRepo.GetByID(ctx, id)
}

func (s *businessService) UpdateBusiness(ctx context.Context, userID int32, b *domain.Business) error {
	const op = "business.update"

	current, err := s.businessRepo.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	if current.OwnerUserID != userID {
		return apperr.Domain(op, "forbidden", "only the owner can update a business profile").
			WithChamber(current.ChamberID).WithUser(userID)
	}

	// Owners edit the profile, never their own standing.
	b.ChamberID = current.ChamberID
	b.OwnerUserID = current.OwnerUserID
	b.MembershipStatus = current.MembershipStatus
	b.VerificationStatus = current.VerificationStatus
	return s.businessRepo.Update(ctx, b)
}

func (s *businessService) ListDirectory(ctx context.Context, chamberID int32) ([]domain.Business, error) {
	all, err := s.businessRepo.ListByChamber(ctx, chamberID)
	if err != nil {
		return nil, err
	}
	// The public directory lists standing members and trials only.
	visible := make([]domain.Business, 0, len(all))
	for _, b := range all {
		if b.MembershipStatus == domain.BusinessMemberStatusMember || b.MembershipStatus == domain.BusinessMemberStatusTrial {
			visible = append(visible, b)
		}
	}
	return visible, nil
}
