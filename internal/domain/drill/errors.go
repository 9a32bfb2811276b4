package drill

import "errors"

// Sentinel errors for the drill package. Check with errors.Is.
var (
	ErrBadConfig   = errors.New("drill: invalid session config")
	ErrSessionDone = errors.New("drill: session already complete")
)
