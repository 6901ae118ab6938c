package workers

import (
	"time"

	"go.uber.org/zap"

	"github.com/cla-designs/clabot/internal/ledger"
	"github.com/cla-designs/clabot/internal/logger"
)

const WorkerInterval = time.Hour

// InitRetention starts the background worker that prunes expired history
// records. Totals are never touched, only the audit trail is trimmed.
func InitRetention(led *ledger.Ledger, retentionDays int) {
	go startWorker(led, retentionDays)

	logger.Log.Info("History retention worker started", zap.Int("retentionDays", retentionDays))
}

func startWorker(led *ledger.Ledger, retentionDays int) {
	ticker := time.NewTicker(WorkerInterval)
	for range ticker.C {
		pruneHistory(led, retentionDays)
	}
}

func pruneHistory(led *ledger.Ledger, retentionDays int) {
	removed := led.CleanupHistory(retentionDays)
	if removed == 0 {
		return
	}

	logger.Log.Info("Pruned expired history records",
		zap.Int("removed", removed),
		zap.Int("retentionDays", retentionDays),
	)
}
