// Package session holds the active study state for one catalog.
package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/verte-zerg/vocabtui/internal/catalog"
	"github.com/verte-zerg/vocabtui/internal/model"
	"github.com/verte-zerg/vocabtui/internal/review"
	"github.com/verte-zerg/vocabtui/internal/selection"
	"github.com/verte-zerg/vocabtui/internal/stats"
	"github.com/verte-zerg/vocabtui/internal/store"
)

// Session is the explicit context passed through the study flows:
// the active catalog, its progress mapping, and the current filters.
// All mutations go through it, sequentially, on one goroutine. The
// in-memory progress map is the session's source of truth; the store
// persists each mutation as it happens.
type Session struct {
	CatalogName string
	Lang        string
	Entries     []model.Entry
	Filters     model.Filters
	Sort        model.SortKey

	storeName string
	store     *store.Store
	progress  map[string]model.ProgressState
	now       func() time.Time
	logf      func(format string, args ...any)
}

// New loads the progress mapping for the catalog and returns a ready
// session. A missing or unreadable mapping degrades to empty state.
func New(ctx context.Context, st *store.Store, doc catalog.Document, entries []model.Entry) *Session {
	name := store.Name(doc.Name)
	return &Session{
		CatalogName: doc.Name,
		Lang:        doc.Lang,
		Entries:     entries,
		Sort:        model.SortAlpha,
		storeName:   name,
		store:       st,
		progress:    st.Load(ctx, name),
		now:         time.Now,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format, args...)
		},
	}
}

// SetLogger replaces the logger used for swallowed persistence errors.
func (s *Session) SetLogger(logf func(format string, args ...any)) {
	s.logf = logf
}

// SetClock overrides the time source, for tests.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// Progress returns the state for a word key, defaulting when absent.
// Duplicate catalog entries with the same value share one record.
func (s *Session) Progress(word string) model.ProgressState {
	return s.progress[word]
}

// ProgressMap returns a copy of the full mapping, for export.
func (s *Session) ProgressMap() map[string]model.ProgressState {
	out := make(map[string]model.ProgressState, len(s.progress))
	for word, state := range s.progress {
		out[word] = state
	}
	return out
}

// ActiveSet recomputes the filtered, sorted study view. It is a pure
// projection of catalog plus progress; callers re-invoke it after any
// mutation instead of holding on to a previous result.
func (s *Session) ActiveSet() []model.EntryWithProgress {
	return selection.Select(s.Entries, s.progress, s.Filters, s.Sort, s.Lang, s.now())
}

// QuizSet returns the active set, falling back to the whole catalog
// when the filters match nothing, so the quiz never dead-ends while
// the catalog has words.
func (s *Session) QuizSet() []model.EntryWithProgress {
	active := s.ActiveSet()
	if len(active) > 0 {
		return active
	}
	return selection.Select(s.Entries, s.progress, model.Filters{}, s.Sort, s.Lang, s.now())
}

// Grade applies a review outcome to a word and persists the result.
func (s *Session) Grade(ctx context.Context, word string, outcome review.Outcome) model.ProgressState {
	now := s.now()
	next := review.Apply(s.progress[word], outcome, now)
	s.progress[word] = next
	if err := s.store.Save(ctx, s.storeName, word, next); err != nil {
		// In-memory state stays authoritative for this session.
		s.logf("failed to save progress for %s: %v\n", word, err)
	}
	return next
}

// ToggleKnown flips the known flag and persists it.
func (s *Session) ToggleKnown(ctx context.Context, word string) model.ProgressState {
	return s.toggle(ctx, word, func(state model.ProgressState) model.ProgressState {
		state.Known = !state.Known
		return state
	})
}

// ToggleFavorite flips the favorite flag and persists it.
func (s *Session) ToggleFavorite(ctx context.Context, word string) model.ProgressState {
	return s.toggle(ctx, word, func(state model.ProgressState) model.ProgressState {
		state.Favorite = !state.Favorite
		return state
	})
}

func (s *Session) toggle(ctx context.Context, word string, transition func(model.ProgressState) model.ProgressState) model.ProgressState {
	next := transition(s.progress[word])
	s.progress[word] = next
	if err := s.store.Save(ctx, s.storeName, word, next); err != nil {
		s.logf("failed to save progress for %s: %v\n", word, err)
	}
	return next
}

// ReplaceProgress swaps in an imported mapping and persists it.
func (s *Session) ReplaceProgress(ctx context.Context, mapping map[string]model.ProgressState) error {
	if err := s.store.ReplaceAll(ctx, s.storeName, mapping); err != nil {
		return err
	}
	s.progress = make(map[string]model.ProgressState, len(mapping))
	for word, state := range mapping {
		s.progress[word] = state
	}
	return nil
}

// Summary aggregates statistics over the whole catalog.
func (s *Session) Summary() model.Summary {
	return stats.Aggregate(s.Entries, s.progress, s.now())
}
