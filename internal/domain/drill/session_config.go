package drill

import "fmt"

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeCategory Scope = "category"
	ScopeNew      Scope = "new"
	ScopeWrong    Scope = "wrong"
)

type AnswerMode string

const (
	ModeChoice AnswerMode = "choice"
	ModeTyped  AnswerMode = "typed"
)

// SessionConfig holds the settings for one drill session. Constructed
// once at session start, immutable thereafter.
type SessionConfig struct {
	LearnerID      string
	Scope          Scope
	Category       string // required when Scope is ScopeCategory
	RequestedCount int
	AvoidDays      int
	AnswerMode     AnswerMode
}

// Validate rejects configs that cannot start a session. These are
// fatal at session start, never recovered mid-session.
func (c SessionConfig) Validate() error {
	if c.LearnerID == "" {
		return fmt.Errorf("%w: learner id is required", ErrBadConfig)
	}
	switch c.Scope {
	case ScopeAll, ScopeNew, ScopeWrong:
	case ScopeCategory:
		if c.Category == "" {
			return fmt.Errorf("%w: category scope requires a category", ErrBadConfig)
		}
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrBadConfig, c.Scope)
	}
	if c.RequestedCount <= 0 {
		return fmt.Errorf("%w: requested count must be positive, got %d", ErrBadConfig, c.RequestedCount)
	}
	if c.AvoidDays < 0 {
		return fmt.Errorf("%w: avoid days must not be negative, got %d", ErrBadConfig, c.AvoidDays)
	}
	switch c.AnswerMode {
	case ModeChoice, ModeTyped:
	default:
		return fmt.Errorf("%w: unknown answer mode %q", ErrBadConfig, c.AnswerMode)
	}
	return nil
}
