package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/vocabtui/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st := Open(filepath.Join(dir, "vocabtui.db"))
	if st.Degraded() {
		t.Fatalf("expected a working store")
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	st.SetLogger(func(format string, args ...any) {
		t.Logf(format, args...)
	})
	return st
}

func TestName(t *testing.T) {
	if got := Name("Animals"); got != "word-progress-Animals" {
		t.Fatalf("unexpected store name %q", got)
	}
	if got := Name(""); got != "word-progress-Default" {
		t.Fatalf("unexpected default store name %q", got)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	st := openTestStore(t)
	mapping := st.Load(context.Background(), Name("Animals"))
	if len(mapping) != 0 {
		t.Fatalf("expected empty mapping, got %v", mapping)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	name := Name("Animals")
	reviewed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	due := reviewed.Add(10 * time.Minute)
	state := model.ProgressState{
		Known:        true,
		Favorite:     true,
		SeenCount:    4,
		CorrectCount: 3,
		Streak:       2,
		LastReviewed: &reviewed,
		NextDue:      &due,
	}
	if err := st.Save(ctx, name, "cat", state); err != nil {
		t.Fatalf("save: %v", err)
	}
	mapping := st.Load(ctx, name)
	got, ok := mapping["cat"]
	if !ok {
		t.Fatalf("expected cat in mapping")
	}
	if got.SeenCount != 4 || got.CorrectCount != 3 || got.Streak != 2 || !got.Known || !got.Favorite {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.LastReviewed == nil || !got.LastReviewed.Equal(reviewed) {
		t.Fatalf("lastReviewed mismatch: %v", got.LastReviewed)
	}
	if got.NextDue == nil || !got.NextDue.Equal(due) {
		t.Fatalf("nextDue mismatch: %v", got.NextDue)
	}
}

func TestGetMissingReturnsDefault(t *testing.T) {
	st := openTestStore(t)
	state, err := st.Get(context.Background(), Name("Animals"), "ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state != (model.ProgressState{}) {
		t.Fatalf("expected default state, got %+v", state)
	}
}

func TestApplyPersistsTransition(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	name := Name("Animals")
	next := st.Apply(ctx, name, "dog", func(cur model.ProgressState) model.ProgressState {
		cur.SeenCount++
		cur.Streak++
		return cur
	})
	if next.SeenCount != 1 || next.Streak != 1 {
		t.Fatalf("unexpected applied state: %+v", next)
	}
	stored, err := st.Get(ctx, name, "dog")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.SeenCount != 1 || stored.Streak != 1 {
		t.Fatalf("apply did not persist: %+v", stored)
	}
}

func TestStoresAreIsolatedByName(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Save(ctx, Name("A"), "cat", model.ProgressState{SeenCount: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if mapping := st.Load(ctx, Name("B")); len(mapping) != 0 {
		t.Fatalf("expected store B empty, got %v", mapping)
	}
}

func TestOpenDegradesOnMalformedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabtui.db")
	if err := os.WriteFile(path, []byte("this is not a database"), 0o644); err != nil {
		t.Fatalf("write garbage db: %v", err)
	}
	st := Open(path)
	t.Cleanup(func() {
		_ = st.Close()
	})
	var logged []string
	st.SetLogger(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})
	if !st.Degraded() {
		t.Fatalf("expected a degraded store for a malformed db file")
	}

	ctx := context.Background()
	name := Name("Animals")
	if mapping := st.Load(ctx, name); len(mapping) != 0 {
		t.Fatalf("expected empty mapping, got %v", mapping)
	}
	state, err := st.Get(ctx, name, "cat")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state != (model.ProgressState{}) {
		t.Fatalf("expected default state, got %+v", state)
	}
	next := st.Apply(ctx, name, "cat", func(cur model.ProgressState) model.ProgressState {
		cur.SeenCount++
		return cur
	})
	if next.SeenCount != 1 {
		t.Fatalf("expected in-memory transition, got %+v", next)
	}
	if len(logged) == 0 {
		t.Fatalf("expected the dropped save to be logged")
	}
	if err := st.ReplaceAll(ctx, name, map[string]model.ProgressState{"cat": {}}); err == nil {
		t.Fatalf("expected replace to report the unavailable database")
	}
}

func TestReplaceAll(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	name := Name("Animals")
	if err := st.Save(ctx, name, "old", model.ProgressState{SeenCount: 9}); err != nil {
		t.Fatalf("save: %v", err)
	}
	mapping := map[string]model.ProgressState{
		"cat": {SeenCount: 1},
		"dog": {Known: true},
	}
	if err := st.ReplaceAll(ctx, name, mapping); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got := st.Load(ctx, name)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries after replace, got %v", got)
	}
	if _, ok := got["old"]; ok {
		t.Fatalf("expected old entry removed")
	}
	if !got["dog"].Known {
		t.Fatalf("expected dog known after replace")
	}
}
