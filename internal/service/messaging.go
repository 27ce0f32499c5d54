package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

const maxMessageLength = 4000

type messagingService struct {
	messageRepo    repository.MessageRepository
	membershipRepo repository.MembershipRepository
}

func NewMessagingService(messageRepo repository.MessageRepository, membershipRepo repository.MembershipRepository) MessagingService {
	return &messagingService{
		messageRepo:    messageRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *messagingService) RequestConnection(ctx context.Context, chamberID, requesterID, recipientID int32) (*domain.Connection, error) {
	const op = "messaging.request_connection"

	if requesterID == recipientID {
		return nil, apperr.Validation(op, "recipient_id", "cannot connect with yourself")
	}
	if err := s.requireActiveMember(ctx, op, requesterID, chamberID); err != nil {
		return nil, err
	}
	if err := s.requireActiveMember(ctx, op, recipientID, chamberID); err != nil {
		return nil, err
	}

	if existing, err := s.messageRepo.GetConnection(ctx, chamberID, requesterID, recipientID); err == nil && existing != nil {
		if existing.Status == domain.ConnectionStatusDeclined {
			// A declined connection can be re-requested.
			existing.Status = domain.ConnectionStatusPending
			existing.RequesterID = requesterID
			existing.RecipientID = recipientID
			if err := s.messageRepo.UpdateConnection(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		return nil, apperr.Domain(op, "connection_exists", "a connection between these members already exists").
			WithChamber(chamberID).WithUser(requesterID)
	}

	conn := &domain.Connection{
		ChamberID:   chamberID,
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      domain.ConnectionStatusPending,
	}
	if err := s.messageRepo.CreateConnection(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *messagingService) RespondToConnection(ctx context.Context, userID, connectionID int32, accept bool) (*domain.Connection, error) {
	const op = "messaging.respond_connection"

	conn, err := s.messageRepo.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.RecipientID != userID {
		return nil, apperr.Domain(op, "forbidden", "only the invited member can respond").
			WithChamber(conn.ChamberID).WithUser(userID)
	}
	if conn.Status != domain.ConnectionStatusPending {
		return nil, apperr.Domain(op, "not_pending", "the connection request has already been answered").
			WithChamber(conn.ChamberID)
	}

	if accept {
		conn.Status = domain.ConnectionStatusAccepted
	} else {
		conn.Status = domain.ConnectionStatusDeclined
	}
	if err := s.messageRepo.UpdateConnection(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// SendMessage delivers a direct message. Messaging requires an accepted
// connection between the two members.
func (s *messagingService) SendMessage(ctx context.Context, chamberID, senderID, recipientID int32, body string) (*domain.Message, error) {
	const op = "messaging.send"

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation(op, "body", "message body cannot be empty")
	}
	if len(body) > maxMessageLength {
		return nil, apperr.Validation(op, "body", "message body is too long")
	}

	conn, err := s.messageRepo.GetConnection(ctx, chamberID, senderID, recipientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Domain(op, "not_connected", "members must be connected before messaging").
				WithChamber(chamberID).WithUser(senderID)
		}
		return nil, err
	}
	if conn.Status != domain.ConnectionStatusAccepted {
		return nil, apperr.Domain(op, "not_connected", "members must be connected before messaging").
			WithChamber(chamberID).WithUser(senderID)
	}

	msg := &domain.Message{
		ChamberID:   chamberID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		SentAt:      time.Now().UTC(),
	}
	if err := s.messageRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messagingService) GetConversation(ctx context.Context, chamberID, userID, otherUserID int32, limit int32) ([]domain.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.messageRepo.ListConversation(ctx, chamberID, userID, otherUserID, limit)
}

func (s *messagingService) requireActiveMember(ctx context.Context, op string, userID, chamberID int32) error {
	membership, err := s.membershipRepo.GetByUserAndChamber(ctx, userID, chamberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Domain(op, "not_a_member", "both members must belong to the chamber").
				WithChamber(chamberID).WithUser(userID)
		}
		return err
	}
	if membership.Status != domain.MembershipStatusActive {
		return apperr.Domain(op, "membership_inactive", "both members must be active in the chamber").
			WithChamber(chamberID).WithUser(userID)
	}
	return nil
}
