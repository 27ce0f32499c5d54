package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type businessRepository struct {
	db *sql.DB
}

func NewBusinessRepository(db *sql.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

const businessColumns = `id, chamber_id, owner_user_id, name, description, category, address, city,
	contact_email, contact_phone, website_url, logo_url, membership_status, verification_status,
	created_at, updated_at`

func (r *businessRepository) Create(ctx context.Context, b *domain.Business) error {
	query := `INSERT INTO businesses (chamber_id, owner_user_id, name, description, category, address, city,
	            contact_email, contact_phone, website_url, logo_url, membership_status, verification_status,
	            created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14) RETURNING id`
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query,
		b.ChamberID, b.OwnerUserID, b.Name, b.Description, b.Category, b.Address, b.City,
		b.ContactEmail, b.ContactPhone, b.WebsiteURL, b.LogoURL, b.MembershipStatus, b.VerificationStatus,
		now,
	).Scan(&b.ID)
}

func (r *businessRepository) scanBusiness(row *sql.Row) (*domain.Business, error) {
	b := &domain.Business{}
	err := row.Scan(&b.ID, &b.ChamberID, &b.OwnerUserID, &b.Name, &b.Description, &b.Category,
		&b.Address, &b.City, &b.ContactEmail, &b.ContactPhone, &b.WebsiteURL, &b.LogoURL,
		&b.MembershipStatus, &b.VerificationStatus, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *businessRepository) GetByID(ctx context.Context, id int32) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	return r.scanBusiness(r.db.QueryRowContext(ctx, query, id))
}

func (r *businessRepository) GetByOwner(ctx context.Context, chamberID, ownerUserID int32) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE chamber_id = $1 AND owner_user_id = $2`
	return r.scanBusiness(r.db.QueryRowContext(ctx, query, chamberID, ownerUserID))
}

func (r *businessRepository) ListByChamber(ctx context.Context, chamberID int32) ([]domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE chamber_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, chamberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var businesses []domain.Business
	for rows.Next() {
		var b domain.Business
		if err := rows.Scan(&b.ID, &b.ChamberID, &b.OwnerUserID, &b.Name, &b.Description, &b.Category,
			&b.Address, &b.City, &b.ContactEmail, &b.ContactPhone, &b.WebsiteURL, &b.LogoURL,
			&b.MembershipStatus, &b.VerificationStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

func (r *businessRepository) Update(ctx context.Context, b *domain.Business) error {
	query := `UPDATE businesses SET name = $1, description = $2, category = $3, address = $4, city = $5,
	            contact_email = $6, contact_phone = $7, website_url = $8, logo_url = $9,
	            membership_status = $10, updated_at = $11
	          WHERE id = $12`
	b.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		b.Name, b.Description, b.Category, b.Address, b.City,
		b.ContactEmail, b.ContactPhone, b.WebsiteURL, b.LogoURL,
		b.MembershipStatus, b.UpdatedAt, b.ID)
	return err
}

func (r *businessRepository) UpdateVerification(ctx context.Context, id int32, status domain.VerificationStatus) error {
	query := `UPDATE businesses SET verification_status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	return err
}
