package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type qrRepository struct {
	db *sql.DB
}

func NewQRRepository(db *sql.DB) repository.QRRepository {
	return &qrRepository{db: db}
}

func (r *qrRepository) RecordScan(ctx context.Context, scan *domain.QRScan) error {
	query := `INSERT INTO qr_scans (business_id, chamber_id, device_type, source, city_name, region, country, scanned_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if scan.ScannedAt.IsZero() {
		scan.ScannedAt = time.Now().UTC()
	}
	return r.db.QueryRowContext(ctx, query,
		scan.BusinessID, scan.ChamberID, scan.DeviceType, scan.Source,
		scan.CityName, scan.Region, scan.Country, scan.ScannedAt,
	).Scan(&scan.ID)
}

func (r *qrRepository) ListScans(ctx context.Context, chamberID int32, from, to time.Time) ([]domain.QRScan, error) {
	query := `SELECT id, business_id, chamber_id, device_type, source, city_name, region, country, scanned_at
	          FROM qr_scans
	          WHERE chamber_id = $1 AND scanned_at >= $2 AND scanned_at < $3
	          ORDER BY scanned_at`
	rows, err := r.db.QueryContext(ctx, query, chamberID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []domain.QRScan
	for rows.Next() {
		var s domain.QRScan
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.ChamberID, &s.DeviceType, &s.Source,
			&s.CityName, &s.Region, &s.Country, &s.ScannedAt); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

func (r *qrRepository) ListDailySummaries(ctx context.Context, chamberID int32, from, to string) ([]domain.QRDailySummary, error) {
	query := `SELECT id, business_id, chamber_id, date, total_scans, unique_scans,
	            mobile_scans, desktop_scans, tablet_scans,
	            event_scans, direct_scans, business_card_scans,
	            connections_made, messages_sent
	          FROM qr_analytics_summary
	          WHERE chamber_id = $1 AND date >= $2 AND date <= $3
	          ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, chamberID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.QRDailySummary
	for rows.Next() {
		var s domain.QRDailySummary
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.ChamberID, &s.Date, &s.TotalScans, &s.UniqueScans,
			&s.MobileScans, &s.DesktopScans, &s.TabletScans,
			&s.EventScans, &s.DirectScans, &s.BusinessCardScans,
			&s.ConnectionsMade, &s.MessagesSent); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// RollupDay folds one day of raw scans into qr_analytics_summary, one row
// per business. Re-running for the same day is a no-op upsert.
// Scan rows carry no visitor key, so unique_scans approximates visitors by
// distinct (location, device) tuples.
func (r *qrRepository) RollupDay(ctx context.Context, day string) (int64, error) {
	query := `
		INSERT INTO qr_analytics_summary
			(business_id, chamber_id, date, total_scans, unique_scans,
			 mobile_scans, desktop_scans, tablet_scans,
			 event_scans, direct_scans, business_card_scans,
			 connections_made, messages_sent)
		SELECT business_id, chamber_id, $1,
			COUNT(*),
			COUNT(DISTINCT (country, region, city_name, device_type)),
			COUNT(*) FILTER (WHERE device_type = 'mobile'),
			COUNT(*) FILTER (WHERE device_type = 'desktop'),
			COUNT(*) FILTER (WHERE device_type = 'tablet'),
			COUNT(*) FILTER (WHERE source = 'event'),
			COUNT(*) FILTER (WHERE source = 'direct'),
			COUNT(*) FILTER (WHERE source = 'business_card'),
			0, 0
		FROM qr_scans
		WHERE scanned_at >= $1::date AND scanned_at < $1::date + INTERVAL '1 day'
		GROUP BY business_id, chamber_id
		ON CONFLICT (business_id, date) DO UPDATE SET
			total_scans = EXCLUDED.total_scans,
			unique_scans = EXCLUDED.unique_scans,
			mobile_scans = EXCLUDED.mobile_scans,
			desktop_scans = EXCLUDED.desktop_scans,
			tablet_scans = EXCLUDED.tablet_scans,
			event_scans = EXCLUDED.event_scans,
			direct_scans = EXCLUDED.direct_scans,
			business_card_scans = EXCLUDED.business_card_scans
	`
	result, err := r.db.ExecContext(ctx, query, day)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *qrRepository) RecordProfileView(ctx context.Context, view *domain.ProfileView) error {
	query := `INSERT INTO profile_views (business_id, viewer_id, source, viewed_at)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now().UTC()
	}
	return r.db.QueryRowContext(ctx, query,
		view.BusinessID, view.ViewerID, view.Source, view.ViewedAt,
	).Scan(&view.ID)
}
