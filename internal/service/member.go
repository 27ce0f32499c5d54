package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/logger"
	"chamber-connect-backend/internal/repository"
)

const invitationTTL = 7 * 24 * time.Hour

type memberService struct {
	membershipRepo repository.MembershipRepository
	businessRepo   repository.BusinessRepository
	userRepo       repository.UserRepository
	chamberRepo    repository.ChamberRepository
	inviteRepo     repository.InvitationRepository
	subSvc         SubscriptionService
	emailSvc       EmailService
}

func NewMemberService(
	membershipRepo repository.MembershipRepository,
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	chamberRepo repository.ChamberRepository,
	inviteRepo repository.InvitationRepository,
	subSvc SubscriptionService,
	emailSvc EmailService,
) MemberService {
	return &memberService{
		membershipRepo: membershipRepo,
		businessRepo:   businessRepo,
		userRepo:       userRepo,
		chamberRepo:    chamberRepo,
		inviteRepo:     inviteRepo,
		subSvc:         subSvc,
		emailSvc:       emailSvc,
	}
}

func (s *memberService) ListMembers(ctx context.Context, chamberID int32, status domain.MembershipStatus) ([]domain.ChamberMembership, error) {
	return s.membershipRepo.ListByChamber(ctx, chamberID, status)
}

// ApproveMember activates a pending membership and then verifies the
// member's business profile. The two writes are not atomic: when the
// second write fails the membership stays approved, a warning is logged
// and the call still succeeds.
func (s *memberService) ApproveMember(ctx context.Context, adminUserID, chamberID, membershipID int32) (*domain.ChamberMembership, error) {
	const op = "member.approve"

	if err := s.requireManageMembers(ctx, op, adminUserID, chamberID); err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.ChamberID != chamberID {
		return nil, apperr.Domain(op, "wrong_chamber", "membership does not belong to this chamber").
			WithChamber(chamberID).WithUser(adminUserID)
	}
	if membership.Status != domain.MembershipStatusPending {
		return nil, apperr.Domain(op, "not_pending", "only pending memberships can be approved").
			WithChamber(chamberID)
	}

	if s.subSvc.HasReachedMemberLimit(ctx, chamberID) {
		return nil, apperr.Domain(op, "member_limit_reached", "the chamber plan's member limit has been reached").
			WithChamber(chamberID)
	}

	membership.Status = domain.MembershipStatusActive
	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return nil, err
	}

	if business, err := s.businessRepo.GetByOwner(ctx, chamberID, membership.UserID); err == nil && business != nil {
		if err := s.businessRepo.UpdateVerification(ctx, business.ID, domain.VerificationStatusVerified); err != nil {
			logger.Warn("member approved but business verification not updated",
				"operation", op, "chamber_id", chamberID, "membership_id", membershipID,
				"business_id", business.ID, "error", err)
		}
	}

	s.notifyDecision(ctx, op, chamberID, membership.UserID, true)
	return membership, nil
}

func (s *memberService) RejectMember(ctx context.Context, adminUserID, chamberID, membershipID int32) error {
	const op = "member.reject"

	if err := s.requireManageMembers(ctx, op, adminUserID, chamberID); err != nil {
		return err
	}

	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if membership.ChamberID != chamberID {
		return apperr.Domain(op, "wrong_chamber", "membership does not belong to this chamber").
			WithChamber(chamberID).WithUser(adminUserID)
	}

	membership.Status = domain.MembershipStatusInactive
	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return err
	}

	s.notifyDecision(ctx, op, chamberID, membership.UserID, false)
	return nil
}

func (s *memberService) InviteMember(ctx context.Context, adminUserID, chamberID int32, email string, role domain.MembershipRole) (*domain.ChamberInvitation, error) {
	const op = "member.invite"

	if err := s.requireManageMembers(ctx, op, adminUserID, chamberID); err != nil {
		return nil, err
	}
	if s.subSvc.HasReachedMemberLimit(ctx, chamberID) {
		return nil, apperr.Domain(op, "member_limit_reached", "the chamber plan's member limit has been reached").
			WithChamber(chamberID)
	}

	inv := &domain.ChamberInvitation{
		Code:            generateInviteCode(),
		ChamberID:       chamberID,
		Email:           email,
		Role:            role,
		CreatedByUserID: adminUserID,
		ExpiresAt:       time.Now().Add(invitationTTL),
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	chamber, err := s.chamberRepo.GetByID(ctx, chamberID)
	if err != nil {
		return nil, err
	}
	if err := s.emailSvc.SendInvitation(ctx, email, chamber.Name, inv.Code); err != nil {
		// The invitation row exists; the admin can resend from the UI.
		logger.Warn("invitation created but email not sent",
			"operation", op, "chamber_id", chamberID, "invitation_id", inv.ID, "error", err)
	}
	return inv, nil
}

func (s *memberService) ResolvePrimaryMembership(ctx context.Context, userID int32) (*domain.ChamberMembership, error) {
	memberships, err := s.membershipRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	active := memberships[:0]
	for _, m := range memberships {
		if m.Status == domain.MembershipStatusActive {
			active = append(active, m)
		}
	}
	return access.ResolvePrimaryMembership(active), nil
}

func (s *memberService) requireManageMembers(ctx context.Context, op string, adminUserID, chamberID int32) error {
	perms, err := s.subSvc.GetPermissions(ctx, adminUserID, chamberID)
	if err != nil {
		return err
	}
	if !perms.CanManageMembers {
		return apperr.Domain(op, "forbidden", "member management requires an admin role and an active subscription").
			WithChamber(chamberID).WithUser(adminUserID)
	}
	return nil
}

func (s *memberService) notifyDecision(ctx context.Context, op string, chamberID, userID int32, approved bool) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("decision email skipped", "operation", op, "user_id", userID, "error", err)
		}
		return
	}
	chamber, err := s.chamberRepo.GetByID(ctx, chamberID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendMembershipDecision(ctx, user.Email, chamber.Name, approved); err != nil {
		logger.Warn("decision email failed", "operation", op, "user_id", userID, "error", err)
	}
}

func generateInviteCode() string {
	return uuid.NewString()
}
