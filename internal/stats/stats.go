// Package stats derives summary statistics from catalog and progress.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/vocabtui/internal/model"
	"github.com/verte-zerg/vocabtui/internal/review"
)

// Aggregate computes whole-catalog counts. It always runs over the
// full catalog, never the filtered view, and is zero-safe for an
// empty catalog.
func Aggregate(entries []model.Entry, progress map[string]model.ProgressState, now time.Time) model.Summary {
	summary := model.Summary{Total: len(entries)}
	for _, entry := range entries {
		state := progress[entry.Value]
		if state.Known {
			summary.Known++
		}
		if state.SeenCount > 0 {
			summary.Studied++
		}
		if review.Due(state, now) {
			summary.Due++
		}
	}
	summary.PctKnown = pct(summary.Known, summary.Total)
	summary.PctStudied = pct(summary.Studied, summary.Total)
	return summary
}

func pct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
