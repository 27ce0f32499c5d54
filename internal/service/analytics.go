package service

import (
	"context"
	"time"

	"chamber-connect-backend/internal/analytics"
	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/metrics"
	"chamber-connect-backend/internal/qr"
	"chamber-connect-backend/internal/repository"
)

const isoDate = "2006-01-02"

type analyticsService struct {
	qrRepo       repository.QRRepository
	businessRepo repository.BusinessRepository
	chamberRepo  repository.ChamberRepository
	subSvc       SubscriptionService
	generator    *qr.Generator
}

func NewAnalyticsService(
	qrRepo repository.QRRepository,
	businessRepo repository.BusinessRepository,
	chamberRepo repository.ChamberRepository,
	subSvc SubscriptionService,
	generator *qr.Generator,
) AnalyticsService {
	return &analyticsService{
		qrRepo:       qrRepo,
		businessRepo: businessRepo,
		chamberRepo:  chamberRepo,
		subSvc:       subSvc,
		generator:    generator,
	}
}

// RecordScan appends a scan event. Scans are unauthenticated writes coming
// from the public tracking URL, so only the referenced business is checked.
func (s *analyticsService) RecordScan(ctx context.Context, scan *domain.QRScan) error {
	const op = "analytics.record_scan"

	business, err := s.businessRepo.GetByID(ctx, scan.BusinessID)
	if err != nil {
		return err
	}
	scan.ChamberID = business.ChamberID
	if scan.ScannedAt.IsZero() {
		scan.ScannedAt = time.Now().UTC()
	}
	switch scan.Source {
	case domain.ScanSourceEvent, domain.ScanSourceDirect, domain.ScanSourceBusinessCard, domain.ScanSourceWebsite:
	default:
		return apperr.Validation(op, "source", "unknown scan source")
	}

	if err := s.qrRepo.RecordScan(ctx, scan); err != nil {
		return err
	}
	metrics.QRScansRecorded.WithLabelValues(string(scan.Source)).Inc()
	return nil
}

func (s *analyticsService) RecordProfileView(ctx context.Context, view *domain.ProfileView) error {
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now().UTC()
	}
	return s.qrRepo.RecordProfileView(ctx, view)
}

// GetSummary reduces the requested window into the dashboard summary. The
// window is re-fetched and re-aggregated on every call.
func (s *analyticsService) GetSummary(ctx context.Context, userID, chamberID int32, rangeDays int) (*analytics.Summary, error) {
	const op = "analytics.get_summary"

	perms, err := s.subSvc.GetPermissions(ctx, userID, chamberID)
	if err != nil {
		return nil, err
	}
	if !perms.CanViewAnalytics {
		return nil, apperr.Domain(op, "forbidden", "analytics requires a plan with analytics enabled").
			WithChamber(chamberID).WithUser(userID)
	}

	switch rangeDays {
	case 7, 30, 90:
	default:
		return nil, apperr.Validation(op, "range_days", "range must be 7, 30 or 90 days")
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -rangeDays)

	summaries, err := s.qrRepo.ListDailySummaries(ctx, chamberID, from.Format(isoDate), now.Format(isoDate))
	if err != nil {
		return nil, err
	}
	scans, err := s.qrRepo.ListScans(ctx, chamberID, from, now)
	if err != nil {
		return nil, err
	}

	summary := analytics.Aggregate(summaries, scans)
	return &summary, nil
}

// BusinessQRCode returns the tracking URL for a business profile and the
// image URL rendering it as a QR code.
func (s *analyticsService) BusinessQRCode(ctx context.Context, businessID int32, source domain.ScanSource, size int) (string, string, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return "", "", err
	}
	chamber, err := s.chamberRepo.GetByID(ctx, business.ChamberID)
	if err != nil {
		return "", "", err
	}

	trackingURL := s.generator.TrackingURL(chamber.Slug, businessID, source)
	imageURL := s.generator.ImageURL(trackingURL, size)
	return trackingURL, imageURL, nil
}
