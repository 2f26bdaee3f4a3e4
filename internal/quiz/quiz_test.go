package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/verte-zerg/vocabtui/internal/model"
)

func activeSet(n int) []model.EntryWithProgress {
	out := make([]model.EntryWithProgress, n)
	for i := range out {
		value := fmt.Sprintf("word%02d", i)
		out[i] = model.EntryWithProgress{
			Entry: model.Entry{
				ID:         fmt.Sprintf("%s#%d", value, i),
				WordRecord: model.WordRecord{Value: value},
			},
		}
	}
	return out
}

func TestGenerateFourOptionsFromTen(t *testing.T) {
	gen := NewWithRand(rand.New(rand.NewSource(1)))
	for round := 0; round < 50; round++ {
		q, ok := gen.Generate(activeSet(10))
		if !ok {
			t.Fatalf("expected a question")
		}
		if len(q.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(q.Options))
		}
		seen := map[string]struct{}{}
		for _, opt := range q.Options {
			if _, dup := seen[opt.Value]; dup {
				t.Fatalf("duplicate option value %q", opt.Value)
			}
			seen[opt.Value] = struct{}{}
		}
		if q.Target < 0 || q.Target >= len(q.Options) {
			t.Fatalf("target index %d out of range", q.Target)
		}
	}
}

func TestGenerateExactlyOneCorrectOption(t *testing.T) {
	gen := NewWithRand(rand.New(rand.NewSource(2)))
	q, ok := gen.Generate(activeSet(10))
	if !ok {
		t.Fatalf("expected a question")
	}
	correct := 0
	for i, opt := range q.Options {
		if opt.Value == q.Options[q.Target].Value {
			correct++
			if i != q.Target {
				t.Fatalf("correct value at non-target index %d", i)
			}
		}
	}
	if correct != 1 {
		t.Fatalf("expected exactly one correct option, got %d", correct)
	}
}

func TestGenerateSmallSet(t *testing.T) {
	gen := NewWithRand(rand.New(rand.NewSource(3)))
	q, ok := gen.Generate(activeSet(2))
	if !ok {
		t.Fatalf("expected a question")
	}
	if len(q.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(q.Options))
	}
}

func TestGenerateEmptySet(t *testing.T) {
	gen := NewWithRand(rand.New(rand.NewSource(4)))
	if _, ok := gen.Generate(nil); ok {
		t.Fatalf("expected no question for an empty set")
	}
}

func TestAnswerChecksByValue(t *testing.T) {
	gen := NewWithRand(rand.New(rand.NewSource(5)))
	q, _ := gen.Generate(activeSet(4))
	correct, ok := q.Answer(q.Target)
	if !ok || !correct {
		t.Fatalf("answering the target must be correct")
	}
}

func TestFirstAnswerWins(t *testing.T) {
	gen := NewWithRand(rand.New(rand.NewSource(6)))
	q, _ := gen.Generate(activeSet(4))
	wrong := (q.Target + 1) % len(q.Options)
	if correct, ok := q.Answer(wrong); !ok || correct {
		t.Fatalf("expected a registered incorrect answer")
	}
	if _, ok := q.Answer(q.Target); ok {
		t.Fatalf("second answer must be ignored")
	}
	if q.Chosen() != wrong {
		t.Fatalf("chosen index must stay %d, got %d", wrong, q.Chosen())
	}
}

func TestAnswerOutOfRange(t *testing.T) {
	gen := NewWithRand(rand.New(rand.NewSource(7)))
	q, _ := gen.Generate(activeSet(4))
	if _, ok := q.Answer(len(q.Options)); ok {
		t.Fatalf("out-of-range answer must be rejected")
	}
	if q.Answered() {
		t.Fatalf("rejected answer must not mark the question answered")
	}
}
