// Package selection filters and sorts the catalog into the active study set.
package selection

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/verte-zerg/vocabtui/internal/model"
	"github.com/verte-zerg/vocabtui/internal/review"
)

// Select joins catalog entries with their progress, applies the
// filters, and sorts by the given key. The sort is stable: equal keys
// keep catalog order, so repeated calls on unchanged input yield
// identical output.
func Select(entries []model.Entry, progress map[string]model.ProgressState, filters model.Filters, key model.SortKey, lang string, now time.Time) []model.EntryWithProgress {
	active := make([]model.EntryWithProgress, 0, len(entries))
	query := strings.ToLower(filters.Query)
	for _, entry := range entries {
		item := model.EntryWithProgress{Entry: entry, Progress: progress[entry.Value]}
		if !matches(item, filters, query, now) {
			continue
		}
		active = append(active, item)
	}
	sortActive(active, key, lang)
	return active
}

func matches(item model.EntryWithProgress, filters model.Filters, query string, now time.Time) bool {
	if query != "" &&
		!strings.Contains(strings.ToLower(item.Value), query) &&
		!strings.Contains(strings.ToLower(item.Translation), query) {
		return false
	}
	if filters.Tag != "" && filters.Tag != "all" && !hasTag(item.WordRecord, filters.Tag) {
		return false
	}
	if filters.FavoriteOnly && !item.Progress.Favorite {
		return false
	}
	if filters.DueOnly && !review.Due(item.Progress, now) {
		return false
	}
	return true
}

func hasTag(rec model.WordRecord, tag string) bool {
	for _, t := range rec.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

func sortActive(active []model.EntryWithProgress, key model.SortKey, lang string) {
	switch key {
	case model.SortBNC:
		sort.SliceStable(active, func(i, j int) bool {
			return rankOrInf(active[i].BNC) < rankOrInf(active[j].BNC)
		})
	case model.SortFrq:
		sort.SliceStable(active, func(i, j int) bool {
			return rankOrInf(active[i].Frq) < rankOrInf(active[j].Frq)
		})
	case model.SortCollins:
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].Collins > active[j].Collins
		})
	case model.SortMastery:
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].Progress.Streak > active[j].Progress.Streak
		})
	default:
		col := collate.New(language.Make(lang), collate.Loose)
		sort.SliceStable(active, func(i, j int) bool {
			return col.CompareString(active[i].Value, active[j].Value) < 0
		})
	}
}

// Missing frequency ranks sort after every real rank.
func rankOrInf(rank int) int {
	if rank <= 0 {
		return math.MaxInt
	}
	return rank
}
