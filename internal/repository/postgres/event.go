package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, chamber_id, created_by_user_id, title, description, location,
	starts_at, ends_at, capacity, status, created_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (chamber_id, created_by_user_id, title, description, location,
	            starts_at, ends_at, capacity, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	e.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		e.ChamberID, e.CreatedByUserID, e.Title, e.Description, e.Location,
		e.StartsAt, e.EndsAt, e.Capacity, e.Status, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e := &domain.Event{}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.ChamberID, &e.CreatedByUserID,
		&e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.Capacity, &e.Status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByChamber(ctx context.Context, chamberID int32, from time.Time) ([]domain.Event, error) {
	query := `SELECT e.id, e.chamber_id, e.created_by_user_id, e.title, e.description, e.location,
	            e.starts_at, e.ends_at, e.capacity, e.status, e.created_at,
	            COUNT(r.id) AS registered_count
	          FROM events e
	          LEFT JOIN event_registrations r ON r.event_id = e.id
	          WHERE e.chamber_id = $1 AND e.starts_at >= $2
	          GROUP BY e.id
	          ORDER BY e.starts_at`
	rows, err := r.db.QueryContext(ctx, query, chamberID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.ChamberID, &e.CreatedByUserID, &e.Title, &e.Description,
			&e.Location, &e.StartsAt, &e.EndsAt, &e.Capacity, &e.Status, &e.CreatedAt,
			&e.RegisteredCount); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET title = $1, description = $2, location = $3, starts_at = $4,
	            ends_at = $5, capacity = $6, status = $7 WHERE id = $8`
	_, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt, e.Capacity, e.Status, e.ID)
	return err
}

func (r *eventRepository) CountCreatedBetween(ctx context.Context, chamberID int32, from, to time.Time) (int32, error) {
	query := `SELECT COUNT(*) FROM events WHERE chamber_id = $1 AND created_at >= $2 AND created_at < $3`
	var count int32
	err := r.db.QueryRowContext(ctx, query, chamberID, from, to).Scan(&count)
	return count, err
}

func (r *eventRepository) Register(ctx context.Context, reg *domain.EventRegistration) error {
	query := `INSERT INTO event_registrations (event_id, user_id, registered_at)
	          VALUES ($1, $2, $3) RETURNING id`
	reg.RegisteredAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.RegisteredAt).Scan(&reg.ID)
}

func (r *eventRepository) CountRegistrations(ctx context.Context, eventID int32) (int32, error) {
	query := `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`
	var count int32
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count)
	return count, err
}
