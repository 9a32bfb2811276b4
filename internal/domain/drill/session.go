package drill

import (
	"math/rand"
	"time"

	"github.com/vocadrill/backend/internal/domain/wordbank"
)

// Summary holds a session's final counts.
type Summary struct {
	Attempted int
	Correct   int
	Wrong     int
}

// Session is the state of one drill run: the sampled queue, the
// cursor, and the per-session counters. All state lives on the value;
// nothing is ambient, so several learners' sessions can coexist.
//
// The queue is consumed strictly in order. Submit scores the current
// item without moving the cursor — the caller advances, automatically
// after a correct answer or explicitly after a hold. Retries before an
// advance are scored as new attempts.
type Session struct {
	cfg   SessionConfig
	pool  []wordbank.WordItem
	queue []wordbank.WordItem
	idx   int

	attempted int
	correct   int
	wrong     int
}

// NewSession validates the config, builds the candidate pool, and
// samples the queue. A nil rng gets a time-seeded source; tests inject
// a seeded one for determinism.
func NewSession(bank *wordbank.WordBank, hist History, cfg SessionConfig, rng *rand.Rand) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pool := BuildPool(bank, hist, cfg)
	queue := BuildQueue(pool, cfg.RequestedCount, rng)

	return &Session{cfg: cfg, pool: pool, queue: queue}, nil
}

// Config returns the session's immutable configuration.
func (s *Session) Config() SessionConfig {
	return s.cfg
}

// Pool returns the candidate pool the queue was sampled from. The
// distractor picker prefers it over the full bank.
func (s *Session) Pool() []wordbank.WordItem {
	return s.pool
}

// QueuedIDs lists every id in the queue, in order. The caller records
// these as seen today at construction time, before any item is shown.
func (s *Session) QueuedIDs() []string {
	ids := make([]string, len(s.queue))
	for i, w := range s.queue {
		ids[i] = w.ID
	}
	return ids
}

// Current returns the item at the cursor, or false when the session
// is empty or complete.
func (s *Session) Current() (wordbank.WordItem, bool) {
	if s.Done() {
		return wordbank.WordItem{}, false
	}
	return s.queue[s.idx], true
}

// Submit scores an answer against the current item and updates the
// session counters. It does not move the cursor.
func (s *Session) Submit(answer string) (Verdict, error) {
	cur, ok := s.Current()
	if !ok {
		return Verdict{}, ErrSessionDone
	}

	v := Score(cur.Foreign, answer)
	s.attempted++
	if v.Correct {
		s.correct++
	} else {
		s.wrong++
	}
	return v, nil
}

// Advance moves the cursor to the next item. It reports false once the
// queue is exhausted, at which point the session is complete.
func (s *Session) Advance() bool {
	if s.Done() {
		return false
	}
	s.idx++
	return !s.Done()
}

// Position reports the 1-based cursor position and the queue length.
func (s *Session) Position() (int, int) {
	pos := s.idx + 1
	if pos > len(s.queue) {
		pos = len(s.queue)
	}
	return pos, len(s.queue)
}

// Empty reports the "no items available" terminal state: nothing
// survived pool filtering.
func (s *Session) Empty() bool {
	return len(s.queue) == 0
}

func (s *Session) Done() bool {
	return s.idx >= len(s.queue)
}

func (s *Session) Summary() Summary {
	return Summary{Attempted: s.attempted, Correct: s.correct, Wrong: s.wrong}
}
