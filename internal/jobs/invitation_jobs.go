package jobs

import (
	"context"
	"time"

	"chamber-connect-backend/internal/logger"
)

// CleanupExpiredInvitations deletes unused invitations past their expiry.
func (jr *JobRunner) CleanupExpiredInvitations() {
	jr.runWithRecovery("CleanupExpiredInvitations", func() {
		ctx := context.Background()

		deleted, err := jr.store.InvitationRepository.DeleteExpired(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to delete expired invitations", "error", err)
			return
		}

		logger.Info("Deleted expired invitations", "count", deleted)
	})
}
