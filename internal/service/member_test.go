package service

import (
	"context"
	"errors"
	"testing"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemberServiceForTest(t *testing.T) (*memberService, *MockMembershipRepo, *MockBusinessRepo, *MockUserRepo, *MockChamberRepo, *MockInviteRepo, *MockSubscriptionSvc, *MockEmailSvc) {
	t.Helper()
	membershipRepo := new(MockMembershipRepo)
	businessRepo := new(MockBusinessRepo)
	userRepo := new(MockUserRepo)
	chamberRepo := new(MockChamberRepo)
	inviteRepo := new(MockInviteRepo)
	subSvc := new(MockSubscriptionSvc)
	emailSvc := new(MockEmailSvc)
	svc := NewMemberService(membershipRepo, businessRepo, userRepo, chamberRepo, inviteRepo, subSvc, emailSvc).(*memberService)
	return svc, membershipRepo, businessRepo, userRepo, chamberRepo, inviteRepo, subSvc, emailSvc
}

func TestApproveMember(t *testing.T) {
	ctx := context.Background()

	pendingMembership := func() *domain.ChamberMembership {
		return &domain.ChamberMembership{
			ID:        10,
			ChamberID: 1,
			UserID:    7,
			Role:      domain.MembershipRoleMember,
			Status:    domain.MembershipStatusPending,
		}
	}

	t.Run("activates membership and verifies business", func(t *testing.T) {
		svc, membershipRepo, businessRepo, userRepo, chamberRepo, _, subSvc, emailSvc := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedMemberLimit", ctx, int32(1)).Return(false)
		membershipRepo.On("GetByID", ctx, int32(10)).Return(pendingMembership(), nil)
		membershipRepo.On("Update", ctx, mock.MatchedBy(func(m *domain.ChamberMembership) bool {
			return m.ID == 10 && m.Status == domain.MembershipStatusActive
		})).Return(nil)
		businessRepo.On("GetByOwner", ctx, int32(1), int32(7)).Return(&domain.Business{ID: 30, ChamberID: 1, OwnerUserID: 7}, nil)
		businessRepo.On("UpdateVerification", ctx, int32(30), domain.VerificationStatusVerified).Return(nil)
		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Email: "owner@example.com"}, nil)
		chamberRepo.On("GetByID", ctx, int32(1)).Return(&domain.Chamber{ID: 1, Name: "Springfield Chamber"}, nil)
		emailSvc.On("SendMembershipDecision", ctx, "owner@example.com", "Springfield Chamber", true).Return(nil)

		approved, err := svc.ApproveMember(ctx, 5, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.MembershipStatusActive, approved.Status)
		membershipRepo.AssertExpectations(t)
		businessRepo.AssertExpectations(t)
	})

	t.Run("still succeeds when business verification fails", func(t *testing.T) {
		svc, membershipRepo, businessRepo, userRepo, chamberRepo, _, subSvc, emailSvc := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedMemberLimit", ctx, int32(1)).Return(false)
		membershipRepo.On("GetByID", ctx, int32(10)).Return(pendingMembership(), nil)
		membershipRepo.On("Update", ctx, mock.Anything).Return(nil)
		businessRepo.On("GetByOwner", ctx, int32(1), int32(7)).Return(&domain.Business{ID: 30, ChamberID: 1, OwnerUserID: 7}, nil)
		businessRepo.On("UpdateVerification", ctx, int32(30), domain.VerificationStatusVerified).
			Return(errors.New("connection reset"))
		userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Email: "owner@example.com"}, nil)
		chamberRepo.On("GetByID", ctx, int32(1)).Return(&domain.Chamber{ID: 1, Name: "Springfield Chamber"}, nil)
		emailSvc.On("SendMembershipDecision", ctx, "owner@example.com", "Springfield Chamber", true).Return(nil)

		approved, err := svc.ApproveMember(ctx, 5, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.MembershipStatusActive, approved.Status)
	})

	t.Run("rejects when the member limit is reached", func(t *testing.T) {
		svc, _, _, _, _, _, subSvc, _ := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedMemberLimit", ctx, int32(1)).Return(true)

		_, err := svc.ApproveMember(ctx, 5, 1, 10)
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "member_limit_reached", appErr.Code)
	})
}

func TestApproveMemberGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects membership from another chamber", func(t *testing.T) {
		svc, membershipRepo, _, _, _, _, subSvc, _ := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedMemberLimit", ctx, int32(1)).Return(false)
		membershipRepo.On("GetByID", ctx, int32(10)).Return(&domain.ChamberMembership{
			ID: 10, ChamberID: 2, Status: domain.MembershipStatusPending,
		}, nil)

		_, err := svc.ApproveMember(ctx, 5, 1, 10)
		require.Error(t, err)
		assert.Equal(t, "wrong_chamber", apperr.As(err).Code)
	})

	t.Run("rejects already active membership", func(t *testing.T) {
		svc, membershipRepo, _, _, _, _, subSvc, _ := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedMemberLimit", ctx, int32(1)).Return(false)
		membershipRepo.On("GetByID", ctx, int32(10)).Return(&domain.ChamberMembership{
			ID: 10, ChamberID: 1, Status: domain.MembershipStatusActive,
		}, nil)

		_, err := svc.ApproveMember(ctx, 5, 1, 10)
		require.Error(t, err)
		assert.Equal(t, "not_pending", apperr.As(err).Code)
	})

	t.Run("requires member management permission", func(t *testing.T) {
		svc, _, _, _, _, _, subSvc, _ := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(&access.PermissionSet{}, nil)

		_, err := svc.ApproveMember(ctx, 5, 1, 10)
		require.Error(t, err)
		assert.Equal(t, "forbidden", apperr.As(err).Code)
	})
}

func TestInviteMember(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a coded invitation and emails it", func(t *testing.T) {
		svc, _, _, _, chamberRepo, inviteRepo, subSvc, emailSvc := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedMemberLimit", ctx, int32(1)).Return(false)
		inviteRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.ChamberInvitation) bool {
			_, parseErr := uuid.Parse(inv.Code)
			return inv.ChamberID == 1 && inv.Email == "new@example.com" && parseErr == nil
		})).Return(nil)
		chamberRepo.On("GetByID", ctx, int32(1)).Return(&domain.Chamber{ID: 1, Name: "Springfield Chamber"}, nil)
		emailSvc.On("SendInvitation", ctx, "new@example.com", "Springfield Chamber", mock.AnythingOfType("string")).Return(nil)

		inv, err := svc.InviteMember(ctx, 5, 1, "new@example.com", domain.MembershipRoleMember)
		require.NoError(t, err)
		assert.NotEmpty(t, inv.Code)
		assert.False(t, inv.ExpiresAt.IsZero())
	})

	t.Run("invitation survives a failed email send", func(t *testing.T) {
		svc, _, _, _, chamberRepo, inviteRepo, subSvc, emailSvc := newMemberServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(5), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedMemberLimit", ctx, int32(1)).Return(false)
		inviteRepo.On("Create", ctx, mock.Anything).Return(nil)
		chamberRepo.On("GetByID", ctx, int32(1)).Return(&domain.Chamber{ID: 1, Name: "Springfield Chamber"}, nil)
		emailSvc.On("SendInvitation", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("sendgrid down"))

		inv, err := svc.InviteMember(ctx, 5, 1, "new@example.com", domain.MembershipRoleMember)
		require.NoError(t, err)
		assert.NotEmpty(t, inv.Code)
	})
}

func TestResolvePrimaryMembershipSkipsInactive(t *testing.T) {
	ctx := context.Background()
	svc, membershipRepo, _, _, _, _, _, _ := newMemberServiceForTest(t)

	membershipRepo.On("ListByUser", ctx, int32(7)).Return([]domain.ChamberMembership{
		{ID: 1, ChamberID: 1, Role: domain.MembershipRoleAdmin, Status: domain.MembershipStatusInactive},
		{ID: 2, ChamberID: 2, Role: domain.MembershipRoleMember, Status: domain.MembershipStatusActive},
	}, nil)

	primary, err := svc.ResolvePrimaryMembership(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, int32(2), primary.ID)
}
