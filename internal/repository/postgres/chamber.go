package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type chamberRepository struct {
	db *sql.DB
}

func NewChamberRepository(db *sql.DB) repository.ChamberRepository {
	return &chamberRepository{db: db}
}

const chamberColumns = `id, name, slug, description, address, city, state, contact_email, contact_phone,
	website_url, logo_url, facebook_url, linkedin_url, instagram_url,
	show_member_count, allow_member_signup, created_at, updated_at`

func (r *chamberRepository) Create(ctx context.Context, c *domain.Chamber) error {
	query := `INSERT INTO chambers (name, slug, description, address, city, state, contact_email, contact_phone,
	            website_url, logo_url, facebook_url, linkedin_url, instagram_url,
	            show_member_count, allow_member_signup, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16) RETURNING id`
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query,
		c.Name, c.Slug, c.Description, c.Address, c.City, c.State, c.ContactEmail, c.ContactPhone,
		c.WebsiteURL, c.LogoURL, c.FacebookURL, c.LinkedinURL, c.InstagramURL,
		c.ShowMemberCount, c.AllowMemberSignup, now,
	).Scan(&c.ID)
}

func (r *chamberRepository) scanChamber(row *sql.Row) (*domain.Chamber, error) {
	c := &domain.Chamber{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Address, &c.City, &c.State,
		&c.ContactEmail, &c.ContactPhone, &c.WebsiteURL, &c.LogoURL,
		&c.FacebookURL, &c.LinkedinURL, &c.InstagramURL,
		&c.ShowMemberCount, &c.AllowMemberSignup, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *chamberRepository) GetByID(ctx context.Context, id int32) (*domain.Chamber, error) {
	query := `SELECT ` + chamberColumns + ` FROM chambers WHERE id = $1`
	return r.scanChamber(r.db.QueryRowContext(ctx, query, id))
}

func (r *chamberRepository) GetBySlug(ctx context.Context, slug string) (*domain.Chamber, error) {
	query := `SELECT ` + chamberColumns + ` FROM chambers WHERE slug = $1`
	return r.scanChamber(r.db.QueryRowContext(ctx, query, slug))
}

func (r *chamberRepository) List(ctx context.Context) ([]domain.Chamber, error) {
	query := `SELECT c.id, c.name, c.slug, c.description, c.address, c.city, c.state,
	            c.contact_email, c.contact_phone, c.website_url, c.logo_url,
	            c.facebook_url, c.linkedin_url, c.instagram_url,
	            c.show_member_count, c.allow_member_signup, c.created_at, c.updated_at,
	            COUNT(m.id) FILTER (WHERE m.status = 'active') AS member_count
	          FROM chambers c
	          LEFT JOIN chamber_memberships m ON m.chamber_id = c.id
	          GROUP BY c.id
	          ORDER BY c.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chambers []domain.Chamber
	for rows.Next() {
		var c domain.Chamber
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Address, &c.City, &c.State,
			&c.ContactEmail, &c.ContactPhone, &c.WebsiteURL, &c.LogoURL,
			&c.FacebookURL, &c.LinkedinURL, &c.InstagramURL,
			&c.ShowMemberCount, &c.AllowMemberSignup, &c.CreatedAt, &c.UpdatedAt,
			&c.MemberCount); err != nil {
			return nil, err
		}
		chambers = append(chambers, c)
	}
	return chambers, rows.Err()
}

func (r *chamberRepository) Update(ctx context.Context, c *domain.Chamber) error {
	query := `UPDATE chambers SET name = $1, description = $2, address = $3, city = $4, state = $5,
	            contact_email = $6, contact_phone = $7, website_url = $8, logo_url = $9,
	            facebook_url = $10, linkedin_url = $11, instagram_url = $12,
	            show_member_count = $13, allow_member_signup = $14, updated_at = $15
	          WHERE id = $16`
	c.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		c.Name, c.Description, c.Address, c.City, c.State,
		c.ContactEmail, c.ContactPhone, c.WebsiteURL, c.LogoURL,
		c.FacebookURL, c.LinkedinURL, c.InstagramURL,
		c.ShowMemberCount, c.AllowMemberSignup, c.UpdatedAt, c.ID)
	return err
}
