package service

import (
	"context"
	"testing"
	"time"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEventServiceForTest(t *testing.T) (*eventService, *MockEventRepo, *MockMembershipRepo, *MockSubscriptionSvc) {
	t.Helper()
	eventRepo := new(MockEventRepo)
	membershipRepo := new(MockMembershipRepo)
	subSvc := new(MockSubscriptionSvc)
	svc := NewEventService(eventRepo, membershipRepo, subSvc).(*eventService)
	return svc, eventRepo, membershipRepo, subSvc
}

func draftEvent() *domain.Event {
	return &domain.Event{
		ChamberID: 1,
		Title:     "Monthly Mixer",
		StartsAt:  time.Now().Add(72 * time.Hour),
		EndsAt:    time.Now().Add(75 * time.Hour),
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft when allowed", func(t *testing.T) {
		svc, eventRepo, _, subSvc := newEventServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(7), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedEventLimit", ctx, int32(1), mock.AnythingOfType("time.Time")).Return(false)
		eventRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.CreatedByUserID == 7 && e.Status == domain.EventStatusDraft
		})).Return(nil)

		require.NoError(t, svc.CreateEvent(ctx, 7, draftEvent()))
	})

	t.Run("blocks at the monthly event limit", func(t *testing.T) {
		svc, _, _, subSvc := newEventServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(7), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedEventLimit", ctx, int32(1), mock.AnythingOfType("time.Time")).Return(true)

		err := svc.CreateEvent(ctx, 7, draftEvent())
		require.Error(t, err)
		assert.Equal(t, "event_limit_reached", apperr.As(err).Code)
	})

	t.Run("requires the event permission", func(t *testing.T) {
		svc, _, _, subSvc := newEventServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(7), int32(1)).Return(&access.PermissionSet{}, nil)

		err := svc.CreateEvent(ctx, 7, draftEvent())
		require.Error(t, err)
		assert.Equal(t, "forbidden", apperr.As(err).Code)
	})

	t.Run("rejects an event that ends before it starts", func(t *testing.T) {
		svc, _, _, subSvc := newEventServiceForTest(t)

		subSvc.On("GetPermissions", ctx, int32(7), int32(1)).Return(adminPerms(), nil)
		subSvc.On("HasReachedEventLimit", ctx, int32(1), mock.AnythingOfType("time.Time")).Return(false)

		bad := draftEvent()
		bad.EndsAt = bad.StartsAt.Add(-time.Hour)
		err := svc.CreateEvent(ctx, 7, bad)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestRegisterForEvent(t *testing.T) {
	ctx := context.Background()

	published := func(capacity int32) *domain.Event {
		return &domain.Event{
			ID:        3,
			ChamberID: 1,
			Status:    domain.EventStatusPublished,
			StartsAt:  time.Now().Add(24 * time.Hour),
			EndsAt:    time.Now().Add(27 * time.Hour),
			Capacity:  capacity,
		}
	}
	activeMember := &domain.ChamberMembership{
		ChamberID: 1, UserID: 7, Status: domain.MembershipStatusActive,
	}

	t.Run("registers an active member", func(t *testing.T) {
		svc, eventRepo, membershipRepo, _ := newEventServiceForTest(t)

		eventRepo.On("GetByID", ctx, int32(3)).Return(published(10), nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(activeMember, nil)
		eventRepo.On("CountRegistrations", ctx, int32(3)).Return(int32(9), nil)
		eventRepo.On("Register", ctx, mock.Anything).Return(nil)

		reg, err := svc.RegisterForEvent(ctx, 7, 3)
		require.NoError(t, err)
		assert.Equal(t, int32(3), reg.EventID)
	})

	t.Run("rejects when the event is full", func(t *testing.T) {
		svc, eventRepo, membershipRepo, _ := newEventServiceForTest(t)

		eventRepo.On("GetByID", ctx, int32(3)).Return(published(10), nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(activeMember, nil)
		eventRepo.On("CountRegistrations", ctx, int32(3)).Return(int32(10), nil)

		_, err := svc.RegisterForEvent(ctx, 7, 3)
		require.Error(t, err)
		assert.Equal(t, "event_full", apperr.As(err).Code)
	})

	t.Run("zero capacity means unlimited seats", func(t *testing.T) {
		svc, eventRepo, membershipRepo, _ := newEventServiceForTest(t)

		eventRepo.On("GetByID", ctx, int32(3)).Return(published(0), nil)
		membershipRepo.On("GetByUserAndChamber", ctx, int32(7), int32(1)).Return(activeMember, nil)
		eventRepo.On("Register", ctx, mock.Anything).Return(nil)

		_, err := svc.RegisterForEvent(ctx, 7, 3)
		require.NoError(t, err)
		eventRepo.AssertNotCalled(t, "CountRegistrations", ctx, int32(3))
	})

	t.Run("drafts are not open for registration", func(t *testing.T) {
		svc, eventRepo, _, _ := newEventServiceForTest(t)

		draft := published(10)
		draft.Status = domain.EventStatusDraft
		eventRepo.On("GetByID", ctx, int32(3)).Return(draft, nil)

		_, err := svc.RegisterForEvent(ctx, 7, 3)
		require.Error(t, err)
		assert.Equal(t, "not_published", apperr.As(err).Code)
	})
}
