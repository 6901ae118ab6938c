package ledger

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/models"
)

const (
	// BanThreshold is the point total at which enforcement kicks in.
	BanThreshold = 16
	// AtRiskThreshold is the default cutoff for the at-risk report.
	AtRiskThreshold = 12

	highRiskThreshold = 14
)

const resetReason = "Points reset by moderator"

// Ledger tracks infraction points per principal together with an append-only
// audit history. All state is in memory and lost on restart; the current
// total is authoritative and the history is an audit trail with its own
// retention policy.
type Ledger struct {
	mu      sync.Mutex
	points  map[string]int
	history map[string][]models.HistoryRecord

	now func() time.Time
}

func New() *Ledger {
	return &Ledger{
		points:  make(map[string]int),
		history: make(map[string][]models.HistoryRecord),
		now:     time.Now,
	}
}

// AddPoints applies a signed delta to a principal's total, clamped at zero,
// and appends a history record. It returns the new total; crossing the ban
// threshold is the caller's concern.
func (l *Ledger) AddPoints(principal string, delta int, reason, actor string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.points[principal]
	newTotal := current + delta
	if newTotal < 0 {
		newTotal = 0
	}
	l.points[principal] = newTotal

	l.history[principal] = append(l.history[principal], models.HistoryRecord{
		Timestamp: l.now(),
		Delta:     delta,
		Reason:    reason,
		ActorID:   actor,
		OldTotal:  current,
		NewTotal:  newTotal,
	})

	logger.Log.Info("Points updated",
		zap.String("principal", principal),
		zap.Int("delta", delta),
		zap.Int("old_total", current),
		zap.Int("new_total", newTotal),
		zap.String("reason", reason),
		zap.String("actor", actor),
	)

	return newTotal
}

// GetPoints returns the current total, zero for an unknown principal.
func (l *Ledger) GetPoints(principal string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.points[principal]
}

// GetHistory returns a copy of the principal's history in insertion order.
func (l *Ledger) GetHistory(principal string) []models.HistoryRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.history[principal]
	out := make([]models.HistoryRecord, len(records))
	copy(out, records)
	return out
}

// ResetPoints zeroes a principal's total. It is a no-op returning false when
// the total is already zero; otherwise it appends a single record for the
// full negative delta and returns true.
func (l *Ledger) ResetPoints(principal, actor string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.points[principal]
	if current == 0 {
		return false
	}

	l.points[principal] = 0
	l.history[principal] = append(l.history[principal], models.HistoryRecord{
		Timestamp: l.now(),
		Delta:     -current,
		Reason:    resetReason,
		ActorID:   actor,
		OldTotal:  current,
		NewTotal:  0,
	})

	logger.Log.Info("Points reset",
		zap.String("principal", principal),
		zap.Int("old_total", current),
		zap.String("actor", actor),
	)

	return true
}

// AtRisk lists principals at or above threshold, sorted descending by points.
func (l *Ledger) AtRisk(threshold int) []models.AtRiskEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []models.AtRiskEntry
	for principal, points := range l.points {
		if points >= threshold {
			entries = append(entries, models.AtRiskEntry{
				PrincipalID: principal,
				Points:      points,
				RiskLevel:   riskLabel(points),
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].PrincipalID < entries[j].PrincipalID
	})

	return entries
}

// Stats returns aggregate figures over all tracked principals.
func (l *Ledger) Stats() models.LedgerStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := models.LedgerStats{TotalTracked: len(l.points)}

	for _, points := range l.points {
		if points > 0 {
			stats.WithPoints++
		}
		stats.TotalPoints += points
		if points > stats.MaxPoints {
			stats.MaxPoints = points
		}
		if points >= AtRiskThreshold {
			stats.AtRiskCount++
		}
	}

	if stats.WithPoints > 0 {
		stats.AveragePoints = float64(stats.TotalPoints) / float64(stats.WithPoints)
	}

	return stats
}

// CleanupHistory prunes history records older than daysToKeep across all
// principals and returns the number removed. Current totals are untouched;
// history retention is independent of the live value.
func (l *Ledger) CleanupHistory(daysToKeep int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().AddDate(0, 0, -daysToKeep)
	removed := 0

	for principal, records := range l.history {
		kept := records[:0]
		for _, record := range records {
			if record.Timestamp.After(cutoff) {
				kept = append(kept, record)
			}
		}
		removed += len(records) - len(kept)
		l.history[principal] = kept
	}

	if removed > 0 {
		logger.Log.Info("Cleaned up point history", zap.Int("removed", removed))
	}

	return removed
}

func riskLabel(points int) string {
	switch {
	case points >= BanThreshold:
		return models.RiskCritical
	case points >= highRiskThreshold:
		return models.RiskHigh
	default:
		return models.RiskMedium
	}
}
