package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
)

// DayStats is one learner's counters for one calendar day. Counters
// only ever go up.
type DayStats struct {
	Attempted int
	Correct   int
}

// WrongStore is the wrong-answer set, keyed by learner. Plain set
// semantics: adding an existing id is a no-op, removing an absent id
// is a no-op.
type WrongStore interface {
	WrongSet(learnerID string) (map[string]bool, error)
	AddWrong(learnerID, wordID string) error
	RemoveWrong(learnerID, wordID string) error
}

// SeenStore records which word ids were queued for a learner on a
// given day. Append-only per day; days are removed only by retention
// pruning.
type SeenStore interface {
	SeenOn(learnerID, day string) ([]string, error)
	SeenByDay(learnerID string, days []string) (map[string][]string, error)
	AppendSeen(learnerID, day string, ids []string) error
	PruneSeen(beforeDay string) error
}

// StatsStore tracks daily attempt counters per learner. A day with no
// row reads as zero stats.
type StatsStore interface {
	StatsOn(learnerID, day string) (DayStats, error)
	StatsByDay(learnerID string, days []string) (map[string]DayStats, error)
	AddAttempt(learnerID, day string, correct bool) error
}

// NewWordStore holds the externally toggled "new words" marker set.
// The drill core only reads it.
type NewWordStore interface {
	NewSet(learnerID string) (map[string]bool, error)
	ReplaceNewSet(learnerID string, ids []string) error
}

// OverrideStore holds per-item category overrides, shared across
// learners.
type OverrideStore interface {
	CategoryOverrides() (map[string]string, error)
	SetCategoryOverride(wordID, category string) error
}

// HistoryStore is everything the session service needs from
// persistence.
type HistoryStore interface {
	WrongStore
	SeenStore
	StatsStore
	NewWordStore
	OverrideStore
}
