// internal/service/session.go
package service

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vocadrill/backend/internal/domain/drill"
	"github.com/vocadrill/backend/internal/domain/wordbank"
	"github.com/vocadrill/backend/internal/store"
)

var ErrSessionNotFound = errors.New("service: session not found")

// Learner is one entry of the configured roster.
type Learner struct {
	ID   string
	Name string
}

// SessionService owns the active drill sessions and mediates between
// the pure drill core and the persisted learner history. Sessions are
// held in memory behind a handle; history mutations go straight to the
// store, so an abandoned session keeps its seen marks but loses
// nothing else.
type SessionService struct {
	bank     *wordbank.WordBank
	store    store.HistoryStore
	logger   *slog.Logger
	learners []Learner

	retentionDays int

	mu       sync.Mutex
	sessions map[string]*activeSession

	// Overridable for deterministic tests.
	now    func() time.Time
	newRNG func() *rand.Rand
}

type activeSession struct {
	learnerID string
	sess      *drill.Session
	rng       *rand.Rand
}

// NewSessionService creates a SessionService. retentionDays caps how
// long seen-log days are kept; zero disables pruning.
func NewSessionService(bank *wordbank.WordBank, s store.HistoryStore, learners []Learner, retentionDays int, logger *slog.Logger) *SessionService {
	return &SessionService{
		bank:          bank,
		store:         s,
		logger:        logger,
		learners:      learners,
		retentionDays: retentionDays,
		sessions:      make(map[string]*activeSession),
		now:           time.Now,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Learners returns the configured roster.
func (svc *SessionService) Learners() []Learner {
	return svc.learners
}

// Bank reports the loaded word bank's aggregate shape.
func (svc *SessionService) Bank() (validItems, droppedRecords int, categories []string) {
	overrides, err := svc.store.CategoryOverrides()
	if err != nil {
		svc.logger.Warn("category override read failed, using none", "error", err)
		overrides = nil
	}
	return svc.bank.Len(), svc.bank.Dropped(), svc.bank.Categories(overrides)
}

// StartResult reports the outcome of starting a session. Empty is the
// "no items available" terminal state, not an error.
type StartResult struct {
	SessionID   string
	LearnerID   string
	QueueLength int
	Empty       bool
	EmptyReason string
}

// Start validates the config, snapshots the learner's history, builds
// the session, and records every queued id as seen today. Seen marks
// are written at queue construction and never retracted, even if the
// session is abandoned before an item is shown.
func (svc *SessionService) Start(cfg drill.SessionConfig) (StartResult, error) {
	rng := svc.newRNG()
	today := svc.now()

	hist := svc.loadHistory(cfg, today)

	sess, err := drill.NewSession(svc.bank, hist, cfg, rng)
	if err != nil {
		return StartResult{}, err
	}

	res := StartResult{
		SessionID:   uuid.NewString(),
		LearnerID:   cfg.LearnerID,
		QueueLength: len(sess.QueuedIDs()),
	}

	if sess.Empty() {
		res.Empty = true
		res.EmptyReason = "no items match the selected scope and avoidance window"
	} else {
		day := drill.DayKey(today)
		if err := svc.store.AppendSeen(cfg.LearnerID, day, sess.QueuedIDs()); err != nil {
			svc.logger.Error("failed to record seen items", "learner", cfg.LearnerID, "error", err)
		}
		svc.pruneSeen(today)
	}

	svc.mu.Lock()
	svc.sessions[res.SessionID] = &activeSession{
		learnerID: cfg.LearnerID,
		sess:      sess,
		rng:       rng,
	}
	svc.mu.Unlock()

	svc.logger.Info("session started",
		"session_id", res.SessionID,
		"learner", cfg.LearnerID,
		"scope", cfg.Scope,
		"queue_length", res.QueueLength,
	)
	return res, nil
}

// ItemView is what the shell needs to render one queued item.
type ItemView struct {
	Item     wordbank.WordItem
	Choices  []string // populated in choice mode; shuffled, includes the answer
	Position int
	Total    int
}

// Current returns the item at the session cursor, or ok=false when the
// session is empty or complete.
func (svc *SessionService) Current(sessionID string) (ItemView, bool, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	as, ok := svc.sessions[sessionID]
	if !ok {
		return ItemView{}, false, ErrSessionNotFound
	}

	cur, ok := as.sess.Current()
	if !ok {
		return ItemView{}, false, nil
	}

	view := ItemView{Item: cur}
	view.Position, view.Total = as.sess.Position()

	if as.sess.Config().AnswerMode == drill.ModeChoice {
		distractors := drill.PickDistractors(cur, as.sess.Pool(), svc.bank, drill.DefaultDistractorCount, as.rng)
		choices := append([]string{cur.Foreign}, distractors...)
		as.rng.Shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})
		view.Choices = choices
	}

	return view, true, nil
}

// AnswerResult is the scoring outcome plus the session's running
// summary.
type AnswerResult struct {
	Correct bool
	Advance drill.AdvanceMode
	Summary drill.Summary
}

// Submit scores an answer against the current item and applies the
// history mutations: attempts always count (retries included), a miss
// joins the wrong set, a correct answer leaves it.
func (svc *SessionService) Submit(sessionID, answer string) (AnswerResult, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	as, ok := svc.sessions[sessionID]
	if !ok {
		return AnswerResult{}, ErrSessionNotFound
	}

	cur, ok := as.sess.Current()
	if !ok {
		return AnswerResult{}, drill.ErrSessionDone
	}

	verdict, err := as.sess.Submit(answer)
	if err != nil {
		return AnswerResult{}, err
	}

	day := drill.DayKey(svc.now())
	if err := svc.store.AddAttempt(as.learnerID, day, verdict.Correct); err != nil {
		svc.logger.Error("failed to record attempt", "learner", as.learnerID, "error", err)
	}

	if verdict.Correct {
		err = svc.store.RemoveWrong(as.learnerID, cur.ID)
	} else {
		err = svc.store.AddWrong(as.learnerID, cur.ID)
	}
	if err != nil {
		svc.logger.Error("failed to update wrong set", "learner", as.learnerID, "word", cur.ID, "error", err)
	}

	return AnswerResult{
		Correct: verdict.Correct,
		Advance: verdict.Advance,
		Summary: as.sess.Summary(),
	}, nil
}

// Advance moves the session to the next item, reporting whether one
// remains. The shell calls this automatically after a correct answer
// and on explicit learner action after a hold.
func (svc *SessionService) Advance(sessionID string) (bool, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	as, ok := svc.sessions[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}
	return as.sess.Advance(), nil
}

// Status describes a session for the shell.
type Status struct {
	LearnerID string
	Position  int
	Total     int
	Done      bool
	Empty     bool
	Summary   drill.Summary
}

func (svc *SessionService) Status(sessionID string) (Status, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	as, ok := svc.sessions[sessionID]
	if !ok {
		return Status{}, ErrSessionNotFound
	}

	st := Status{
		LearnerID: as.learnerID,
		Done:      as.sess.Done(),
		Empty:     as.sess.Empty(),
		Summary:   as.sess.Summary(),
	}
	st.Position, st.Total = as.sess.Position()
	return st, nil
}

// loadHistory snapshots one learner's persisted state. Reads that fail
// degrade to empty history so a session stays startable even with a
// corrupted store partition.
func (svc *SessionService) loadHistory(cfg drill.SessionConfig, today time.Time) drill.History {
	hist := drill.History{Today: today}

	var err error
	if hist.Wrong, err = svc.store.WrongSet(cfg.LearnerID); err != nil {
		svc.logger.Warn("wrong-set read failed, using empty", "learner", cfg.LearnerID, "error", err)
		hist.Wrong = nil
	}
	if hist.New, err = svc.store.NewSet(cfg.LearnerID); err != nil {
		svc.logger.Warn("new-set read failed, using empty", "learner", cfg.LearnerID, "error", err)
		hist.New = nil
	}
	if hist.Overrides, err = svc.store.CategoryOverrides(); err != nil {
		svc.logger.Warn("category override read failed, using none", "error", err)
		hist.Overrides = nil
	}

	if cfg.AvoidDays > 0 {
		days := make([]string, 0, cfg.AvoidDays)
		for i := 1; i <= cfg.AvoidDays; i++ {
			days = append(days, drill.DayKey(today.AddDate(0, 0, -i)))
		}
		if hist.Seen, err = svc.store.SeenByDay(cfg.LearnerID, days); err != nil {
			svc.logger.Warn("seen-log read failed, using empty", "learner", cfg.LearnerID, "error", err)
			hist.Seen = nil
		}
	}

	return hist
}

func (svc *SessionService) pruneSeen(today time.Time) {
	if svc.retentionDays <= 0 {
		return
	}
	cutoff := drill.DayKey(today.AddDate(0, 0, -svc.retentionDays))
	if err := svc.store.PruneSeen(cutoff); err != nil {
		svc.logger.Warn("seen-log prune failed", "cutoff", cutoff, "error", err)
	}
}
