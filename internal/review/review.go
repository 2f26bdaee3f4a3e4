// Package review computes progress transitions for study outcomes.
package review

import (
	"time"

	"github.com/verte-zerg/vocabtui/internal/model"
)

// Outcome is a flashcard grade. Quiz answers collapse to Good/Again.
type Outcome int

const (
	Again Outcome = iota
	Good
	Easy
)

// Fixed review offsets per outcome. The scheme is deliberately a flat
// Leitner-style ladder, not an adaptive-interval algorithm.
const (
	againDelay = 10 * time.Second
	goodDelay  = 10 * time.Minute
	easyDelay  = 60 * time.Minute
)

// String returns the grade name shown in the UI.
func (o Outcome) String() string {
	switch o {
	case Again:
		return "again"
	case Good:
		return "good"
	case Easy:
		return "easy"
	default:
		return "unknown"
	}
}

// Grade maps a binary quiz result onto a flashcard outcome.
func Grade(correct bool) Outcome {
	if correct {
		return Good
	}
	return Again
}

// Apply returns the next progress state for an outcome at time now.
// Known/Favorite are user-toggled flags and are never touched here.
func Apply(state model.ProgressState, outcome Outcome, now time.Time) model.ProgressState {
	state.SeenCount++
	switch outcome {
	case Again:
		state.Streak = 0
	default:
		state.CorrectCount++
		state.Streak++
	}
	due := now.Add(delayFor(outcome))
	state.LastReviewed = &now
	state.NextDue = &due
	return state
}

// Due reports whether a word is due for review at time now. A word
// with no scheduled review is always due.
func Due(state model.ProgressState, now time.Time) bool {
	return state.NextDue == nil || !state.NextDue.After(now)
}

func delayFor(outcome Outcome) time.Duration {
	switch outcome {
	case Again:
		return againDelay
	case Easy:
		return easyDelay
	default:
		return goodDelay
	}
}
