package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.ChamberInvitation) error {
	query := `INSERT INTO chamber_invitations (code, chamber_id, email, role, created_by_user_id, expires_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	inv.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		inv.Code, inv.ChamberID, inv.Email, inv.Role, inv.CreatedByUserID, inv.ExpiresAt, inv.CreatedAt,
	).Scan(&inv.ID)
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.ChamberInvitation, error) {
	inv := &domain.ChamberInvitation{}
	query := `SELECT id, code, chamber_id, email, role, created_by_user_id, expires_at, used_at, used_by_user_id, created_at
	          FROM chamber_invitations WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&inv.ID, &inv.Code, &inv.ChamberID, &inv.Email,
		&inv.Role, &inv.CreatedByUserID, &inv.ExpiresAt, &inv.UsedAt, &inv.UsedByUserID, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) Update(ctx context.Context, inv *domain.ChamberInvitation) error {
	query := `UPDATE chamber_invitations SET used_at = $1, used_by_user_id = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, inv.UsedAt, inv.UsedByUserID, inv.ID)
	return err
}

// DeleteExpired removes unused invitations past their expiry.
func (r *invitationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM chamber_invitations WHERE used_at IS NULL AND expires_at < $1`
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
