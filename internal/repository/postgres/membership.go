package postgres

import (
	"context"
	"database/sql"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

const membershipColumns = `id, chamber_id, user_id, role, status, joined_at, note`

func (r *membershipRepository) Create(ctx context.Context, m *domain.ChamberMembership) error {
	query := `INSERT INTO chamber_memberships (chamber_id, user_id, role, status, joined_at, note)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		m.ChamberID, m.UserID, m.Role, m.Status, m.JoinedAt, m.Note,
	).Scan(&m.ID)
}

func (r *membershipRepository) scanMembership(row *sql.Row) (*domain.ChamberMembership, error) {
	m := &domain.ChamberMembership{}
	err := row.Scan(&m.ID, &m.ChamberID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt, &m.Note)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) GetByID(ctx context.Context, id int32) (*domain.ChamberMembership, error) {
	query := `SELECT ` + membershipColumns + ` FROM chamber_memberships WHERE id = $1`
	return r.scanMembership(r.db.QueryRowContext(ctx, query, id))
}

func (r *membershipRepository) GetByUserAndChamber(ctx context.Context, userID, chamberID int32) (*domain.ChamberMembership, error) {
	query := `SELECT ` + membershipColumns + ` FROM chamber_memberships WHERE user_id = $1 AND chamber_id = $2`
	return r.scanMembership(r.db.QueryRowContext(ctx, query, userID, chamberID))
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID int32) ([]domain.ChamberMembership, error) {
	query := `SELECT ` + membershipColumns + ` FROM chamber_memberships WHERE user_id = $1 ORDER BY joined_at`
	return r.list(ctx, query, userID)
}

func (r *membershipRepository) ListByChamber(ctx context.Context, chamberID int32, status domain.MembershipStatus) ([]domain.ChamberMembership, error) {
	if status == "" {
		query := `SELECT ` + membershipColumns + ` FROM chamber_memberships WHERE chamber_id = $1 ORDER BY joined_at`
		return r.list(ctx, query, chamberID)
	}
	query := `SELECT ` + membershipColumns + ` FROM chamber_memberships WHERE chamber_id = $1 AND status = $2 ORDER BY joined_at`
	return r.list(ctx, query, chamberID, status)
}

func (r *membershipRepository) list(ctx context.Context, query string, args ...any) ([]domain.ChamberMembership, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.ChamberMembership
	for rows.Next() {
		var m domain.ChamberMembership
		if err := rows.Scan(&m.ID, &m.ChamberID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt, &m.Note); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *membershipRepository) Update(ctx context.Context, m *domain.ChamberMembership) error {
	query := `UPDATE chamber_memberships SET role = $1, status = $2, note = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, m.Role, m.Status, m.Note, m.ID)
	return err
}

func (r *membershipRepository) CountActive(ctx context.Context, chamberID int32) (int32, error) {
	query := `SELECT COUNT(*) FROM chamber_memberships WHERE chamber_id = $1 AND status = 'active'`
	var count int32
	err := r.db.QueryRowContext(ctx, query, chamberID).Scan(&count)
	return count, err
}
