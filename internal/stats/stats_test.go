package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/vocabtui/internal/catalog"
	"github.com/verte-zerg/vocabtui/internal/model"
)

func TestAggregateEmptyCatalog(t *testing.T) {
	summary := Aggregate(nil, nil, time.Unix(0, 0))
	if summary.Total != 0 || summary.PctKnown != 0 || summary.PctStudied != 0 {
		t.Fatalf("empty catalog must produce zero summary, got %+v", summary)
	}
}

func TestAggregateCounts(t *testing.T) {
	entries, err := catalog.Normalize([]model.WordRecord{
		{Value: "a"}, {Value: "b"}, {Value: "c"}, {Value: "d"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	now := time.Unix(10000, 0)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	progress := map[string]model.ProgressState{
		"a": {Known: true, SeenCount: 3, NextDue: &future},
		"b": {SeenCount: 1, NextDue: &past},
		"c": {SeenCount: 2, NextDue: &future},
	}
	summary := Aggregate(entries, progress, now)
	if summary.Total != 4 || summary.Known != 1 || summary.Studied != 3 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	// "d" has no progress and is due by default; "b" is past due.
	if summary.Due != 2 {
		t.Fatalf("expected 2 due, got %d", summary.Due)
	}
	if summary.PctKnown != 25 || summary.PctStudied != 75 {
		t.Fatalf("unexpected percentages: %+v", summary)
	}
}

func TestAggregateRoundsPercentages(t *testing.T) {
	entries, err := catalog.Normalize([]model.WordRecord{
		{Value: "a"}, {Value: "b"}, {Value: "c"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	progress := map[string]model.ProgressState{"a": {Known: true}}
	summary := Aggregate(entries, progress, time.Unix(0, 0))
	// 1/3 rounds to 33.
	if summary.PctKnown != 33 {
		t.Fatalf("expected 33%%, got %d", summary.PctKnown)
	}
}

func TestRenderWordTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderWordTable(&buf, nil, time.Unix(0, 0), 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No words match") {
		t.Fatalf("expected explicit empty state, got %q", buf.String())
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	summary := model.Summary{Total: 10, Known: 2, Studied: 5, Due: 3, PctKnown: 20, PctStudied: 50}
	if err := RenderSummary(&buf, "Animals", summary); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Animals", "Words: 10", "Studied: 5 (50%)", "Known: 2 (20%)", "Due now: 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}
