package service

import (
	"context"
	"time"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/logger"
	"chamber-connect-backend/internal/repository"
	"chamber-connect-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	inviteRepo     repository.InvitationRepository
	chamberRepo    repository.ChamberRepository
	tokens         security.TokenManager
}

func NewAuthService(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	inviteRepo repository.InvitationRepository,
	chamberRepo repository.ChamberRepository,
	tokens security.TokenManager,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		inviteRepo:     inviteRepo,
		chamberRepo:    chamberRepo,
		tokens:         tokens,
	}
}

func (s *authService) ValidateInvitation(ctx context.Context, code string) (*domain.ChamberInvitation, error) {
	const op = "auth.validate_invitation"

	inv, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if inv.UsedAt != nil {
		return nil, apperr.Domain(op, "invitation_used", "invitation has already been used").WithChamber(inv.ChamberID)
	}
	if inv.ExpiresAt.Before(time.Now()) {
		return nil, apperr.Domain(op, "invitation_expired", "invitation has expired").WithChamber(inv.ChamberID)
	}
	return inv, nil
}

func (s *authService) Signup(ctx context.Context, inviteCode, name, email, phone, password string) (*domain.User, string, string, error) {
	const op = "auth.signup"

	inv, err := s.ValidateInvitation(ctx, inviteCode)
	if err != nil {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", apperr.Infrastructure(op, "bcrypt", err)
	}

	role := domain.UserRoleBusinessOwner
	if inv.Role == domain.MembershipRoleAdmin || inv.Role == domain.MembershipRoleStaff {
		role = domain.UserRoleStaff
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		PhoneNumber:  phone,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	membership := &domain.ChamberMembership{
		ChamberID: inv.ChamberID,
		UserID:    user.ID,
		Role:      inv.Role,
		Status:    domain.MembershipStatusActive,
		JoinedAt:  time.Now(),
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, "", "", err
	}

	now := time.Now()
	inv.UsedAt = &now
	inv.UsedByUserID = &user.ID
	if err := s.inviteRepo.Update(ctx, inv); err != nil {
		// The account is live; a stale invitation row is recoverable.
		logger.ErrorContext(ctx, "failed to mark invitation used",
			"operation", op, "invitation_id", inv.ID, "error", err)
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	logger.InfoContext(ctx, "user signed up", "operation", op, "user_id", user.ID, "chamber_id", inv.ChamberID)
	return user, access, refresh, nil
}

func (s *authService) RequestToJoin(ctx context.Context, chamberID int32, userID int32, note string) (*domain.ChamberMembership, error) {
	const op = "auth.request_to_join"

	chamber, err := s.chamberRepo.GetByID(ctx, chamberID)
	if err != nil {
		return nil, err
	}
	if !chamber.AllowMemberSignup {
		return nil, apperr.Domain(op, "signup_closed", "chamber does not accept join requests").WithChamber(chamberID)
	}

	if existing, err := s.membershipRepo.GetByUserAndChamber(ctx, userID, chamberID); err == nil && existing != nil {
		return nil, apperr.Domain(op, "already_member", "a membership for this chamber already exists").
			WithChamber(chamberID).WithUser(userID)
	}

	membership := &domain.ChamberMembership{
		ChamberID: chamberID,
		UserID:    userID,
		Role:      domain.MembershipRoleMember,
		Status:    domain.MembershipStatusPending,
		JoinedAt:  time.Now(),
		Note:      note,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	const op = "auth.login"

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, "", "", apperr.Domain(op, "invalid_credentials", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", apperr.Domain(op, "invalid_credentials", "invalid email or password")
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	const op = "auth.refresh_token"

	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", apperr.Domain(op, "invalid_token", "refresh token is invalid or expired")
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", apperr.Domain(op, "wrong_token_type", "an access token cannot be used to refresh")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", apperr.Infrastructure("auth.issue_tokens", "jwt", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", apperr.Infrastructure("auth.issue_tokens", "jwt", err)
	}
	return access, refresh, nil
}
