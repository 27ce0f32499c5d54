package service

import (
	"context"
	"testing"
	"time"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest(t *testing.T) (*authService, *MockUserRepo, *MockMembershipRepo, *MockInviteRepo, *MockChamberRepo) {
	t.Helper()
	userRepo := new(MockUserRepo)
	membershipRepo := new(MockMembershipRepo)
	inviteRepo := new(MockInviteRepo)
	chamberRepo := new(MockChamberRepo)
	tokens := security.NewTokenManager("test-secret-key", 60, 0)
	svc := NewAuthService(userRepo, membershipRepo, inviteRepo, chamberRepo, tokens).(*authService)
	return svc, userRepo, membershipRepo, inviteRepo, chamberRepo
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	validInvite := func() *domain.ChamberInvitation {
		return &domain.ChamberInvitation{
			ID:        1,
			Code:      "ABCDEFGHJKLMNPQR",
			ChamberID: 1,
			Email:     "new@example.com",
			Role:      domain.MembershipRoleMember,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}
	}

	t.Run("creates user, membership and burns the invitation", func(t *testing.T) {
		svc, userRepo, membershipRepo, inviteRepo, _ := newAuthServiceForTest(t)

		inviteRepo.On("GetByCode", ctx, "ABCDEFGHJKLMNPQR").Return(validInvite(), nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.PasswordHash != "hunter22"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 42
		}).Return(nil)
		membershipRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.ChamberMembership) bool {
			return m.ChamberID == 1 && m.UserID == 42 && m.Status == domain.MembershipStatusActive
		})).Return(nil)
		inviteRepo.On("Update", ctx, mock.MatchedBy(func(inv *domain.ChamberInvitation) bool {
			return inv.UsedAt != nil && inv.UsedByUserID != nil && *inv.UsedByUserID == 42
		})).Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "ABCDEFGHJKLMNPQR", "New Member", "new@example.com", "", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int32(42), user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("rejects an expired invitation", func(t *testing.T) {
		svc, _, _, inviteRepo, _ := newAuthServiceForTest(t)

		expired := validInvite()
		expired.ExpiresAt = time.Now().Add(-time.Hour)
		inviteRepo.On("GetByCode", ctx, "ABCDEFGHJKLMNPQR").Return(expired, nil)

		_, _, _, err := svc.Signup(ctx, "ABCDEFGHJKLMNPQR", "New Member", "new@example.com", "", "hunter22")
		require.Error(t, err)
		assert.Equal(t, "invitation_expired", apperr.As(err).Code)
	})

	t.Run("rejects a used invitation", func(t *testing.T) {
		svc, _, _, inviteRepo, _ := newAuthServiceForTest(t)

		used := validInvite()
		now := time.Now()
		used.UsedAt = &now
		inviteRepo.On("GetByCode", ctx, "ABCDEFGHJKLMNPQR").Return(used, nil)

		_, _, _, err := svc.Signup(ctx, "ABCDEFGHJKLMNPQR", "New Member", "new@example.com", "", "hunter22")
		require.Error(t, err)
		assert.Equal(t, "invitation_used", apperr.As(err).Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: 7, Email: "member@example.com", PasswordHash: string(hash), Role: domain.UserRoleBusinessOwner}

	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		svc, userRepo, _, _, _ := newAuthServiceForTest(t)
		userRepo.On("GetByEmail", ctx, "member@example.com").Return(stored, nil)

		user, access, refresh, err := svc.Login(ctx, "member@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int32(7), user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("same error for wrong password and unknown email", func(t *testing.T) {
		svc, userRepo, _, _, _ := newAuthServiceForTest(t)
		userRepo.On("GetByEmail", ctx, "member@example.com").Return(stored, nil)
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, assert.AnError)

		_, _, _, errWrongPass := svc.Login(ctx, "member@example.com", "wrong")
		_, _, _, errUnknown := svc.Login(ctx, "nobody@example.com", "hunter22")

		require.Error(t, errWrongPass)
		require.Error(t, errUnknown)
		assert.Equal(t, apperr.As(errWrongPass).Code, apperr.As(errUnknown).Code)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, _, _ := newAuthServiceForTest(t)

	t.Run("an access token cannot be refreshed", func(t *testing.T) {
		tokens := security.NewTokenManager("test-secret-key", 60, 0)
		access, err := tokens.GenerateAccessToken(7, "member@example.com", domain.UserRoleBusinessOwner)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		require.Error(t, err)
		assert.Equal(t, "wrong_token_type", apperr.As(err).Code)
	})

	t.Run("a refresh token rotates into a new pair", func(t *testing.T) {
		tokens := security.NewTokenManager("test-secret-key", 60, 0)
		refresh, err := tokens.GenerateRefreshToken(7, "member@example.com")
		require.NoError(t, err)
		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Email: "member@example.com"}, nil)

		newAccess, newRefresh, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
	})
}

func TestRequestToJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending membership with the note", func(t *testing.T) {
		svc, _, membershipRepo, _, chamberRepo := newAuthServiceForTest(t)

		chamberRepo.On("GetByID", ctx, int32(1)).Return(&domain.Chamber{ID: 1, AllowMemberSignup: true}, nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(nil, assert.AnError)
		membershipRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.ChamberMembership) bool {
			return m.Status == domain.MembershipStatusPending && m.Note == "local bakery owner"
		})).Return(nil)

		m, err := svc.RequestToJoin(ctx, 1, 7, "local bakery owner")
		require.NoError(t, err)
		assert.Equal(t, domain.MembershipStatusPending, m.Status)
	})

	t.Run("closed chambers reject join requests", func(t *testing.T) {
		svc, _, _, _, chamberRepo := newAuthServiceForTest(t)

		chamberRepo.On("GetByID", ctx, int32(1)).Return(&domain.Chamber{ID: 1, AllowMemberSignup: false}, nil)

		_, err := svc.RequestToJoin(ctx, 1, 7, "")
		require.Error(t, err)
		assert.Equal(t, "signup_closed", apperr.As(err).Code)
	})
}
