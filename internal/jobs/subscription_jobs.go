package jobs

import (
	"context"
	"time"

	"chamber-connect-backend/internal/access"
	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/logger"
)

const trialReminderWindowDays = 3

// ExpireTrials moves trialing subscriptions whose trial window has ended
// into past_due so their chambers drop back to baseline access.
func (jr *JobRunner) ExpireTrials() {
	jr.runWithRecovery("ExpireTrials", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		trials, err := jr.store.SubscriptionRepository.ListTrialsEndingBefore(ctx, now)
		if err != nil {
			logger.Error("Failed to list ended trials", "error", err)
			return
		}

		count := 0
		for _, sub := range trials {
			if err := jr.store.SubscriptionRepository.UpdateStatus(ctx, sub.ID, domain.SubscriptionStatusPastDue); err != nil {
				logger.Error("Failed to expire trial", "subscription_id", sub.ID, "chamber_id", sub.ChamberID, "error", err)
				continue
			}
			logger.Debug("Expired trial", "subscription_id", sub.ID, "chamber_id", sub.ChamberID)
			count++
		}

		logger.Info("Expired ended trials", "count", count)
	})
}

// SendTrialReminders emails chamber admins whose trial ends within the
// reminder window.
func (jr *JobRunner) SendTrialReminders() {
	jr.runWithRecovery("SendTrialReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()
		cutoff := now.AddDate(0, 0, trialReminderWindowDays)

		trials, err := jr.store.SubscriptionRepository.ListTrialsEndingBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list ending trials", "error", err)
			return
		}

		sent := 0
		for _, sub := range trials {
			// Ended trials are ExpireTrials' problem.
			daysLeft := access.TrialDaysRemaining(&sub, now)
			if daysLeft == 0 {
				continue
			}

			chamber, err := jr.store.ChamberRepository.GetByID(ctx, sub.ChamberID)
			if err != nil {
				logger.Error("Failed to load chamber for trial reminder", "chamber_id", sub.ChamberID, "error", err)
				continue
			}

			admins, err := jr.chamberAdminEmails(ctx, sub.ChamberID)
			if err != nil {
				logger.Error("Failed to resolve chamber admins", "chamber_id", sub.ChamberID, "error", err)
				continue
			}

			for _, email := range admins {
				if err := jr.services.Email.SendTrialEndingReminder(ctx, email, chamber.Name, daysLeft); err != nil {
					logger.Error("Failed to send trial reminder", "chamber_id", sub.ChamberID, "error", err)
					continue
				}
				sent++
			}
		}

		logger.Info("Sent trial reminders", "count", sent)
	})
}

// chamberAdminEmails returns the email addresses of a chamber's active admins.
func (jr *JobRunner) chamberAdminEmails(ctx context.Context, chamberID int32) ([]string, error) {
	members, err := jr.store.MembershipRepository.ListByChamber(ctx, chamberID, domain.MembershipStatusActive)
	if err != nil {
		return nil, err
	}

	var emails []string
	for _, m := range members {
		if m.Role != domain.MembershipRoleAdmin {
			continue
		}
		user, err := jr.store.UserRepository.GetByID(ctx, m.UserID)
		if err != nil {
			logger.Error("Failed to load admin user", "user_id", m.UserID, "error", err)
			continue
		}
		emails = append(emails, user.Email)
	}
	return emails, nil
}
