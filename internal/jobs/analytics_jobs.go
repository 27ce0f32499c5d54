package jobs

import (
	"context"
	"time"

	"chamber-connect-backend/internal/logger"
)

// RollupQRAnalytics folds yesterday's raw QR scans into the per-day
// summary table. Re-running for the same day replaces the existing rows.
func (jr *JobRunner) RollupQRAnalytics() {
	jr.runWithRecovery("RollupQRAnalytics", func() {
		ctx := context.Background()

		day := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

		rows, err := jr.store.QRRepository.RollupDay(ctx, day)
		if err != nil {
			logger.Error("Failed to roll up QR scans", "day", day, "error", err)
			return
		}

		logger.Info("Rolled up QR scans", "day", day, "summary_rows", rows)
	})
}
