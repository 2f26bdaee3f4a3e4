// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// WordRecord is one imported dictionary entry. Only Value is required;
// everything else is optional metadata carried through from the source
// document.
type WordRecord struct {
	Value       string `json:"value"`
	PhoneticUS  string `json:"usPhone,omitempty"`
	PhoneticUK  string `json:"ukPhone,omitempty"`
	Translation string `json:"translation,omitempty"`
	Definition  string `json:"definition,omitempty"`
	POS         string `json:"pos,omitempty"`
	Collins     int    `json:"collins,omitempty"`
	Oxford      bool   `json:"oxford,omitempty"`
	Tag         string `json:"tag,omitempty"`
	BNC         int    `json:"bnc,omitempty"`
	Frq         int    `json:"frq,omitempty"`
}

// Tags splits the whitespace-delimited tag string into tokens.
func (w WordRecord) Tags() []string {
	return strings.Fields(w.Tag)
}

// Entry is a WordRecord plus a catalog-unique id. Ids are derived from
// value and position, so reloading the same document yields the same
// ids even when the document contains duplicate values.
type Entry struct {
	ID string
	WordRecord
}

// ProgressState is the persistent learning state for one word key.
// The zero value is the default state: never seen, not known, due now.
type ProgressState struct {
	Known        bool       `json:"known,omitempty"`
	Favorite     bool       `json:"favorite,omitempty"`
	SeenCount    int        `json:"seenCount,omitempty"`
	CorrectCount int        `json:"correctCount,omitempty"`
	Streak       int        `json:"streak,omitempty"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
	NextDue      *time.Time `json:"nextDue,omitempty"`
}

// EntryWithProgress joins a catalog entry with its progress record.
// The join is transient and recomputed whenever either side changes.
type EntryWithProgress struct {
	Entry
	Progress ProgressState
}

// SortKey selects the comparator used to order the active set.
type SortKey string

const (
	SortAlpha   SortKey = "alpha"
	SortBNC     SortKey = "bnc"
	SortFrq     SortKey = "frq"
	SortCollins SortKey = "collins"
	SortMastery SortKey = "mastery"
)

// SortKeys lists the accepted sort key names in cycle order.
var SortKeys = []SortKey{SortAlpha, SortBNC, SortFrq, SortCollins, SortMastery}

// ParseSortKey validates a sort key name. Empty means alphabetic.
func ParseSortKey(s string) (SortKey, bool) {
	if s == "" {
		return SortAlpha, true
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return SortAlpha, false
}

// Filters narrow the catalog to the active study set. All set filters
// are combined with AND; zero values are no-ops.
type Filters struct {
	Query        string
	Tag          string
	FavoriteOnly bool
	DueOnly      bool
}

// Summary holds whole-catalog statistics.
type Summary struct {
	Total      int
	Known      int
	Studied    int
	Due        int
	PctKnown   int
	PctStudied int
}
