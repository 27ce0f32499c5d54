package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateConnection(ctx context.Context, c *domain.Connection) error {
	query := `INSERT INTO connections (chamber_id, requester_id, recipient_id, status, created_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	c.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		c.ChamberID, c.RequesterID, c.RecipientID, c.Status, c.CreatedAt,
	).Scan(&c.ID)
}

// GetConnection looks the link up in either direction.
func (r *messageRepository) GetConnection(ctx context.Context, chamberID, requesterID, recipientID int32) (*domain.Connection, error) {
	c := &domain.Connection{}
	query := `SELECT id, chamber_id, requester_id, recipient_id, status, created_at
	          FROM connections
	          WHERE chamber_id = $1
	            AND ((requester_id = $2 AND recipient_id = $3) OR (requester_id = $3 AND recipient_id = $2))`
	err := r.db.QueryRowContext(ctx, query, chamberID, requesterID, recipientID).Scan(
		&c.ID, &c.ChamberID, &c.RequesterID, &c.RecipientID, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *messageRepository) GetConnectionByID(ctx context.Context, id int32) (*domain.Connection, error) {
	c := &domain.Connection{}
	query := `SELECT id, chamber_id, requester_id, recipient_id, status, created_at
	          FROM connections WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ChamberID, &c.RequesterID, &c.RecipientID, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *messageRepository) UpdateConnection(ctx context.Context, c *domain.Connection) error {
	query := `UPDATE connections SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, c.Status, c.ID)
	return err
}

func (r *messageRepository) CreateMessage(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (chamber_id, sender_id, recipient_id, body, sent_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	m.SentAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		m.ChamberID, m.SenderID, m.RecipientID, m.Body, m.SentAt,
	).Scan(&m.ID)
}

func (r *messageRepository) ListConversation(ctx context.Context, chamberID, userA, userB int32, limit int32) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, chamber_id, sender_id, recipient_id, body, sent_at, read_at
	          FROM messages
	          WHERE chamber_id = $1
	            AND ((sender_id = $2 AND recipient_id = $3) OR (sender_id = $3 AND recipient_id = $2))
	          ORDER BY sent_at DESC
	          LIMIT $4`
	rows, err := r.db.QueryContext(ctx, query, chamberID, userA, userB, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ChamberID, &m.SenderID, &m.RecipientID, &m.Body, &m.SentAt, &m.ReadAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
