package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"

	"github.com/lib/pq"
)

type partnershipRepository struct {
	db *sql.DB
}

func NewPartnershipRepository(db *sql.DB) repository.PartnershipRepository {
	return &partnershipRepository{db: db}
}

func (r *partnershipRepository) UpsertProfile(ctx context.Context, p *domain.DiscoveryProfile) error {
	query := `INSERT INTO chamber_discovery_profiles
	            (chamber_id, geographic_scope, member_count, primary_industries, partnership_goals, visible, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (chamber_id) DO UPDATE SET
	            geographic_scope = EXCLUDED.geographic_scope,
	            member_count = EXCLUDED.member_count,
	            primary_industries = EXCLUDED.primary_industries,
	            partnership_goals = EXCLUDED.partnership_goals,
	            visible = EXCLUDED.visible,
	            updated_at = EXCLUDED.updated_at
	          RETURNING id`
	p.UpdatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		p.ChamberID, p.GeographicScope, p.MemberCount,
		pq.Array(p.PrimaryIndustries), pq.Array(p.PartnershipGoals), p.Visible, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *partnershipRepository) GetProfileByChamber(ctx context.Context, chamberID int32) (*domain.DiscoveryProfile, error) {
	p := &domain.DiscoveryProfile{}
	query := `SELECT id, chamber_id, geographic_scope, member_count, primary_industries, partnership_goals, visible, updated_at
	          FROM chamber_discovery_profiles WHERE chamber_id = $1`
	err := r.db.QueryRowContext(ctx, query, chamberID).Scan(&p.ID, &p.ChamberID, &p.GeographicScope,
		&p.MemberCount, pq.Array(&p.PrimaryIndustries), pq.Array(&p.PartnershipGoals), &p.Visible, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partnershipRepository) ListVisibleProfiles(ctx context.Context, excludeChamberID int32) ([]domain.DiscoveryProfile, error) {
	query := `SELECT id, chamber_id, geographic_scope, member_count, primary_industries, partnership_goals, visible, updated_at
	          FROM chamber_discovery_profiles
	          WHERE visible = TRUE AND chamber_id <> $1
	          ORDER BY chamber_id`
	rows, err := r.db.QueryContext(ctx, query, excludeChamberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.DiscoveryProfile
	for rows.Next() {
		var p domain.DiscoveryProfile
		if err := rows.Scan(&p.ID, &p.ChamberID, &p.GeographicScope, &p.MemberCount,
			pq.Array(&p.PrimaryIndustries), pq.Array(&p.PartnershipGoals), &p.Visible, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *partnershipRepository) CreatePartnership(ctx context.Context, p *domain.ChamberPartnership) error {
	query := `INSERT INTO chamber_partnerships
	            (requesting_chamber_id, partner_chamber_id, status, message, compatibility_score, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	p.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		p.RequestingChamber, p.PartnerChamber, p.Status, p.Message, p.CompatibilityScore, p.CreatedAt,
	).Scan(&p.ID)
}

func (r *partnershipRepository) GetPartnership(ctx context.Context, id int32) (*domain.ChamberPartnership, error) {
	p := &domain.ChamberPartnership{}
	query := `SELECT id, requesting_chamber_id, partner_chamber_id, status, message, compatibility_score, created_at, responded_at
	          FROM chamber_partnerships WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.RequestingChamber, &p.PartnerChamber,
		&p.Status, &p.Message, &p.CompatibilityScore, &p.CreatedAt, &p.RespondedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partnershipRepository) UpdatePartnership(ctx context.Context, p *domain.ChamberPartnership) error {
	query := `UPDATE chamber_partnerships SET status = $1, responded_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, p.Status, p.RespondedAt, p.ID)
	return err
}

func (r *partnershipRepository) ListPartnershipsByChamber(ctx context.Context, chamberID int32) ([]domain.ChamberPartnership, error) {
	query := `SELECT id, requesting_chamber_id, partner_chamber_id, status, message, compatibility_score, created_at, responded_at
	          FROM chamber_partnerships
	          WHERE requesting_chamber_id = $1 OR partner_chamber_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, chamberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partnerships []domain.ChamberPartnership
	for rows.Next() {
		var p domain.ChamberPartnership
		if err := rows.Scan(&p.ID, &p.RequestingChamber, &p.PartnerChamber, &p.Status,
			&p.Message, &p.CompatibilityScore, &p.CreatedAt, &p.RespondedAt); err != nil {
			return nil, err
		}
		partnerships = append(partnerships, p)
	}
	return partnerships, rows.Err()
}
