package drill

import "strings"

type AdvanceMode string

const (
	// AdvanceAuto tells the caller to move to the next item after a
	// short, caller-owned delay.
	AdvanceAuto AdvanceMode = "auto"
	// AdvanceHold keeps the current item displayed for a retry; only
	// an explicit advance moves on.
	AdvanceHold AdvanceMode = "hold"
)

// Verdict is the outcome of scoring one submitted answer.
type Verdict struct {
	Correct bool
	Advance AdvanceMode
}

// Score compares a submitted answer to the item's foreign text.
// Both sides are trimmed and case-folded; equality is exact after
// normalization, with no partial credit. An incorrect answer is a
// result, not an error.
func Score(expected, submitted string) Verdict {
	if normalizeAnswer(submitted) == normalizeAnswer(expected) {
		return Verdict{Correct: true, Advance: AdvanceAuto}
	}
	return Verdict{Correct: false, Advance: AdvanceHold}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
