// Package quiz builds multiple-choice questions from the active set.
package quiz

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/vocabtui/internal/model"
)

const maxOptions = 4

// Generator produces randomized multiple-choice questions.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Generator using the provided source, which
// makes question generation deterministic in tests.
func NewWithRand(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Question is one multiple-choice round. The first registered answer
// wins; later choices are ignored.
type Question struct {
	Options []model.EntryWithProgress
	Target  int

	answered bool
	chosen   int
}

// Generate picks a random target and up to three distractors from the
// active set. It returns false for an empty set: the caller renders an
// empty state instead of a question.
func (g *Generator) Generate(active []model.EntryWithProgress) (*Question, bool) {
	n := len(active)
	if n == 0 {
		return nil, false
	}
	target := active[g.rnd.Intn(n)]

	options := []model.EntryWithProgress{target}
	used := map[string]struct{}{target.Value: {}}
	for _, idx := range g.rnd.Perm(n) {
		if len(options) == min(maxOptions, n) {
			break
		}
		candidate := active[idx]
		// Distractors must be distinct from the target and from each
		// other by value, since answers are checked by value.
		if _, ok := used[candidate.Value]; ok {
			continue
		}
		used[candidate.Value] = struct{}{}
		options = append(options, candidate)
	}

	q := &Question{Options: options, Target: 0}
	g.rnd.Shuffle(len(q.Options), func(i, j int) {
		q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
		switch q.Target {
		case i:
			q.Target = j
		case j:
			q.Target = i
		}
	})
	return q, true
}

// Answer registers a choice and reports whether it is correct.
// It returns ok=false when the index is out of range or the question
// has already been answered.
func (q *Question) Answer(idx int) (correct, ok bool) {
	if q.answered || idx < 0 || idx >= len(q.Options) {
		return false, false
	}
	q.answered = true
	q.chosen = idx
	return q.Options[idx].Value == q.Options[q.Target].Value, true
}

// Answered reports whether a choice has been registered.
func (q *Question) Answered() bool {
	return q.answered
}

// Chosen returns the registered choice, or -1 before any answer.
func (q *Question) Chosen() int {
	if !q.answered {
		return -1
	}
	return q.chosen
}
