package service

import (
	"context"
	"time"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type eventService struct {
	eventRepo      repository.EventRepository
	membershipRepo repository.MembershipRepository
	subSvc         SubscriptionService
}

func NewEventService(
	eventRepo repository.EventRepository,
	membershipRepo repository.MembershipRepository,
	subSvc SubscriptionService,
) EventService {
	return &eventService{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
		subSvc:         subSvc,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, userID int32, event *domain.Event) error {
	const op = "event.create"

	perms, err := s.subSvc.GetPermissions(ctx, userID, event.ChamberID)
	if err != nil {
		return err
	}
	if !perms.CanCreateEvents {
		return apperr.Domain(op, "forbidden", "creating events requires a staff role and an active subscription").
			WithChamber(event.ChamberID).WithUser(userID)
	}
	if s.subSvc.HasReachedEventLimit(ctx, event.ChamberID, time.Now()) {
		return apperr.Domain(op, "event_limit_reached", "the chamber plan's monthly event limit has been reached").
			WithChamber(event.ChamberID)
	}

	if !event.EndsAt.After(event.StartsAt) {
		return apperr.Validation(op, "ends_at", "event must end after it starts")
	}
	if event.Capacity < 0 {
		return apperr.Validation(op, "capacity", "capacity cannot be negative")
	}

	event.CreatedByUserID = userID
	if event.Status == "" {
		event.Status = domain.EventStatusDraft
	}
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEvent(ctx context.Context, id int32) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.eventRepo.CountRegistrations(ctx, id)
	if err == nil {
		event.RegisteredCount = count
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, chamberID int32, from time.Time) ([]domain.Event, error) {
	return s.eventRepo.ListByChamber(ctx, chamberID, from)
}

func (s *eventService) UpdateEvent(ctx context.Context, userID int32, event *domain.Event) error {
	const op = "event.update"

	current, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		return err
	}

	perms, err := s.subSvc.GetPermissions(ctx, userID, current.ChamberID)
	if err != nil {
		return err
	}
	if !perms.CanCreateEvents && current.CreatedByUserID != userID {
		return apperr.Domain(op, "forbidden", "only staff or the event creator can update an event").
			WithChamber(current.ChamberID).WithUser(userID)
	}

	event.ChamberID = current.ChamberID
	event.CreatedByUserID = current.CreatedByUserID
	return s.eventRepo.Update(ctx, event)
}

func (s *eventService) RegisterForEvent(ctx context.Context, userID, eventID int32) (*domain.EventRegistration, error) {
	const op = "event.register"

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventStatusPublished {
		return nil, apperr.Domain(op, "not_published", "registration is only open for published events").
			WithChamber(event.ChamberID)
	}
	if event.StartsAt.Before(time.Now()) {
		return nil, apperr.Domain(op, "event_started", "registration closed, the event has already started").
			WithChamber(event.ChamberID)
	}

	membership, err := s.membershipRepo.GetByUserAndChamber(ctx, userID, event.ChamberID)
	if err != nil {
		return nil, err
	}
	if membership.Status != domain.MembershipStatusActive {
		return nil, apperr.Domain(op, "membership_inactive", "only active members can register").
			WithChamber(event.ChamberID).WithUser(userID)
	}

	if event.Capacity > 0 {
		count, err := s.eventRepo.CountRegistrations(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= event.Capacity {
			return nil, apperr.Domain(op, "event_full", "the event has reached its capacity").
				WithChamber(event.ChamberID)
		}
	}

	reg := &domain.EventRegistration{
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now(),
	}
	if err := s.eventRepo.Register(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}
