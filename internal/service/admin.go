package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/apperr"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
	"chamber-connect-backend/internal/utils"

	"golang.org/x/sync/errgroup"
)

type adminService struct {
	membershipRepo repository.MembershipRepository
	businessRepo   repository.BusinessRepository
	eventRepo      repository.EventRepository
	qrRepo         repository.QRRepository
	subRepo        repository.SubscriptionRepository
	subSvc         SubscriptionService
}

func NewAdminService(
	membershipRepo repository.MembershipRepository,
	businessRepo repository.BusinessRepository,
	eventRepo repository.EventRepository,
	qrRepo repository.QRRepository,
	subRepo repository.SubscriptionRepository,
	subSvc SubscriptionService,
) AdminService {
	return &adminService{
		membershipRepo: membershipRepo,
		businessRepo:   businessRepo,
		eventRepo:      eventRepo,
		qrRepo:         qrRepo,
		subRepo:        subRepo,
		subSvc:         subSvc,
	}
}

// GetDashboard assembles the admin dashboard. All sections are fetched
// concurrently; the first failing section aborts the assembly.
func (s *adminService) GetDashboard(ctx context.Context, userID, chamberID int32) (*DashboardStats, error) {
	const op = "admin.dashboard"

	perms, err := s.subSvc.GetPermissions(ctx, userID, chamberID)
	if err != nil {
		return nil, err
	}
	if !perms.CanManageChamber {
		return nil, apperr.Domain(op, "forbidden", "the dashboard is only visible to chamber admins").
			WithChamber(chamberID).WithUser(userID)
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &DashboardStats{ChamberID: chamberID}
	var (
		businesses []domain.Business
		summaries  []domain.QRDailySummary
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.membershipRepo.CountActive(gctx, chamberID)
		if err != nil {
			return err
		}
		stats.MemberCount = count
		return nil
	})
	g.Go(func() error {
		pending, err := s.membershipRepo.ListByChamber(gctx, chamberID, domain.MembershipStatusPending)
		if err != nil {
			return err
		}
		stats.PendingMembers = pending
		return nil
	})
	g.Go(func() error {
		all, err := s.businessRepo.ListByChamber(gctx, chamberID)
		if err != nil {
			return err
		}
		businesses = all
		return nil
	})
	g.Go(func() error {
		events, err := s.eventRepo.ListByChamber(gctx, chamberID, now)
		if err != nil {
			return err
		}
		stats.UpcomingEvents = events
		return nil
	})
	g.Go(func() error {
		count, err := s.eventRepo.CountCreatedBetween(gctx, chamberID, monthStart, monthStart.AddDate(0, 1, 0))
		if err != nil {
			return err
		}
		stats.EventsThisMonth = count
		return nil
	})
	g.Go(func() error {
		rows, err := s.qrRepo.ListDailySummaries(gctx, chamberID, monthStart.Format(isoDate), now.Format(isoDate))
		if err != nil {
			return err
		}
		summaries = rows
		return nil
	})
	g.Go(func() error {
		sub, err := s.subRepo.GetByChamber(gctx, chamberID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		stats.Subscription = sub
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var verified int32
	for _, b := range businesses {
		switch b.VerificationStatus {
		case domain.VerificationStatusVerified:
			verified++
		case domain.VerificationStatusPending:
			stats.UnverifiedBusiness = append(stats.UnverifiedBusiness, b)
		}
	}
	for _, row := range summaries {
		stats.ScansThisMonth += row.TotalScans
	}

	stats.HealthScore = utils.HealthScore(utils.HealthInputs{
		MemberCount:        stats.MemberCount + int32(len(stats.PendingMembers)),
		ActiveMembers:      stats.MemberCount,
		VerifiedBusinesses: verified,
		TotalBusinesses:    int32(len(businesses)),
		EventsThisMonth:    stats.EventsThisMonth,
		ScansThisMonth:     stats.ScansThisMonth,
	})
	stats.TrialDaysRemaining = access.TrialDaysRemaining(stats.Subscription, now)

	return stats, nil
}
