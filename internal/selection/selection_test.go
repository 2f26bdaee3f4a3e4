package selection

import (
	"testing"
	"time"

	"github.com/verte-zerg/vocabtui/internal/catalog"
	"github.com/verte-zerg/vocabtui/internal/model"
)

func entries(t *testing.T, records ...model.WordRecord) []model.Entry {
	t.Helper()
	out, err := catalog.Normalize(records)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return out
}

func values(active []model.EntryWithProgress) []string {
	out := make([]string, len(active))
	for i, item := range active {
		out[i] = item.Value
	}
	return out
}

func TestAlphabeticSortIsStable(t *testing.T) {
	list := entries(t,
		model.WordRecord{Value: "b"},
		model.WordRecord{Value: "a"},
		model.WordRecord{Value: "a"},
	)
	now := time.Unix(0, 0)
	first := Select(list, nil, model.Filters{}, model.SortAlpha, "en", now)
	second := Select(list, nil, model.Filters{}, model.SortAlpha, "en", now)
	want := []string{"a", "a", "b"}
	for i, v := range values(first) {
		if v != want[i] {
			t.Fatalf("unexpected order %v", values(first))
		}
	}
	// The two "a" entries keep their original relative order.
	if first[0].ID != list[1].ID || first[1].ID != list[2].ID {
		t.Fatalf("stable sort violated: %v %v", first[0].ID, first[1].ID)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("select is not idempotent at %d", i)
		}
	}
}

func TestQueryMatchesValueOrTranslation(t *testing.T) {
	list := entries(t,
		model.WordRecord{Value: "Apple", Translation: "pomme"},
		model.WordRecord{Value: "pear", Translation: "poire"},
		model.WordRecord{Value: "grape", Translation: "RAISIN"},
	)
	now := time.Unix(0, 0)
	got := Select(list, nil, model.Filters{Query: "APP"}, model.SortAlpha, "en", now)
	if len(got) != 1 || got[0].Value != "Apple" {
		t.Fatalf("query on value failed: %v", values(got))
	}
	got = Select(list, nil, model.Filters{Query: "raisin"}, model.SortAlpha, "en", now)
	if len(got) != 1 || got[0].Value != "grape" {
		t.Fatalf("query on translation failed: %v", values(got))
	}
}

func TestTagFilterUsesWhitespaceTokens(t *testing.T) {
	list := entries(t,
		model.WordRecord{Value: "cat", Tag: "cet4 zk gk"},
		model.WordRecord{Value: "dog", Tag: "cet6"},
		model.WordRecord{Value: "eel"},
	)
	now := time.Unix(0, 0)
	got := Select(list, nil, model.Filters{Tag: "zk"}, model.SortAlpha, "en", now)
	if len(got) != 1 || got[0].Value != "cat" {
		t.Fatalf("tag filter failed: %v", values(got))
	}
	// "all" is a no-op.
	got = Select(list, nil, model.Filters{Tag: "all"}, model.SortAlpha, "en", now)
	if len(got) != 3 {
		t.Fatalf("tag=all must keep everything, got %v", values(got))
	}
}

func TestFavoriteAndDueFiltersCombineWithAnd(t *testing.T) {
	list := entries(t,
		model.WordRecord{Value: "cat"},
		model.WordRecord{Value: "dog"},
		model.WordRecord{Value: "eel"},
	)
	now := time.Unix(10000, 0)
	future := now.Add(time.Hour)
	progress := map[string]model.ProgressState{
		"cat": {Favorite: true},
		"dog": {Favorite: true, NextDue: &future},
		"eel": {},
	}
	got := Select(list, progress, model.Filters{FavoriteOnly: true, DueOnly: true}, model.SortAlpha, "en", now)
	if len(got) != 1 || got[0].Value != "cat" {
		t.Fatalf("combined filters failed: %v", values(got))
	}
}

func TestFrequencySortsMissingLast(t *testing.T) {
	list := entries(t,
		model.WordRecord{Value: "rare", BNC: 9000},
		model.WordRecord{Value: "none"},
		model.WordRecord{Value: "common", BNC: 10},
	)
	now := time.Unix(0, 0)
	got := values(Select(list, nil, model.Filters{}, model.SortBNC, "en", now))
	want := []string{"common", "rare", "none"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bnc sort: got %v want %v", got, want)
		}
	}
}

func TestCollinsSortsDescendingMissingLast(t *testing.T) {
	list := entries(t,
		model.WordRecord{Value: "none"},
		model.WordRecord{Value: "five", Collins: 5},
		model.WordRecord{Value: "two", Collins: 2},
	)
	now := time.Unix(0, 0)
	got := values(Select(list, nil, model.Filters{}, model.SortCollins, "en", now))
	want := []string{"five", "two", "none"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("collins sort: got %v want %v", got, want)
		}
	}
}

func TestMasterySortsByStreakDescending(t *testing.T) {
	list := entries(t,
		model.WordRecord{Value: "low"},
		model.WordRecord{Value: "high"},
		model.WordRecord{Value: "mid"},
	)
	progress := map[string]model.ProgressState{
		"high": {Streak: 7},
		"mid":  {Streak: 3},
	}
	now := time.Unix(0, 0)
	got := values(Select(list, progress, model.Filters{}, model.SortMastery, "en", now))
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mastery sort: got %v want %v", got, want)
		}
	}
}
