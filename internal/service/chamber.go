package service

import (
	"context"
	"regexp"
	"time"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type chamberService struct {
	chamberRepo    repository.ChamberRepository
	membershipRepo repository.MembershipRepository
	subSvc         SubscriptionService
}

func NewChamberService(
	chamberRepo repository.ChamberRepository,
	membershipRepo repository.MembershipRepository,
	subSvc SubscriptionService,
) ChamberService {
	return &chamberService{
		chamberRepo:    chamberRepo,
		membershipRepo: membershipRepo,
		subSvc:         subSvc,
	}
}

func (s *chamberService) GetChamber(ctx context.Context, id int32) (*domain.Chamber, error) {
	return s.chamberRepo.GetByID(ctx, id)
}

func (s *chamberService) GetChamberBySlug(ctx context.Context, slug string) (*domain.Chamber, error) {
	return s.chamberRepo.GetBySlug(ctx, slug)
}

func (s *chamberService) ListChambers(ctx context.Context) ([]domain.Chamber, error) {
	chambers, err := s.chamberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	// Chambers that hide their member count still report zero publicly.
	for i := range chambers {
		if !chambers[i].ShowMemberCount {
			chambers[i].MemberCount = 0
		}
	}
	return chambers, nil
}

func (s *chamberService) CreateChamber(ctx context.Context, userID int32, chamber *domain.Chamber) error {
	const op = "chamber.create"

	if !slugPattern.MatchString(chamber.Slug) {
		return apperr.Validation(op, "slug", "slug must be lowercase letters, digits and hyphens")
	}
	if existing, err := s.chamberRepo.GetBySlug(ctx, chamber.Slug); err == nil && existing != nil {
		return apperr.Domain(op, "slug_taken", "a chamber with this slug already exists")
	}

	if err := s.chamberRepo.Create(ctx, chamber); err != nil {
		return err
	}

	// The creator becomes the founding admin.
	membership := &domain.ChamberMembership{
		ChamberID: chamber.ID,
		UserID:    userID,
		Role:      domain.MembershipRoleAdmin,
		Status:    domain.MembershipStatusActive,
		JoinedAt:  time.Now(),
	}
	return s.membershipRepo.Create(ctx, membership)
}

func (s *chamberService) UpdateChamber(ctx context.Context, userID int32, chamber *domain.Chamber) error {
	const op = "chamber.update"

	perms, err := s.subSvc.GetPermissions(ctx, userID, chamber.ID)
	if err != nil {
		return err
	}
	if !perms.CanManageChamber {
		return apperr.Domain(op, "forbidden", "only chamber admins can update chamber settings").
			WithChamber(chamber.ID).WithUser(userID)
	}

	current, err := s.chamberRepo.GetByID(ctx, chamber.ID)
	if err != nil {
		return err
	}
	// The slug is an external identifier and never changes after creation.
	chamber.Slug = current.Slug
	return s.chamberRepo.Update(ctx, chamber)
}
