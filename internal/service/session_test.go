package service

import (
	"errors"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocadrill/backend/internal/domain/drill"
	"github.com/vocadrill/backend/internal/domain/wordbank"
	"github.com/vocadrill/backend/internal/store"
)

var testNow = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func testBank() *wordbank.WordBank {
	return wordbank.Normalize([]wordbank.WordItem{
		{ID: "a1", Native: "蘋果", Foreign: "apple", Category: "fruit"},
		{ID: "a2", Native: "香蕉", Foreign: "banana", Category: "fruit"},
		{ID: "a3", Native: "橘子", Foreign: "orange", Category: "fruit"},
		{ID: "a4", Native: "葡萄", Foreign: "grape", Category: "fruit"},
		{ID: "a5", Native: "狗", Foreign: "dog", Category: "animal"},
		{ID: "a6", Native: "貓", Foreign: "cat", Category: "animal"},
	})
}

func testRoster() []Learner {
	return []Learner{{ID: "xigua", Name: "西瓜"}, {ID: "youzi", Name: "柚子"}}
}

func newTestService(t *testing.T, hs store.HistoryStore) *SessionService {
	t.Helper()
	if hs == nil {
		s, err := store.NewSQLite(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		hs = s
	}

	svc := NewSessionService(testBank(), hs, testRoster(), 30, slog.New(slog.DiscardHandler))
	svc.now = func() time.Time { return testNow }
	svc.newRNG = func() *rand.Rand { return rand.New(rand.NewSource(1)) }
	return svc
}

func baseCfg() drill.SessionConfig {
	return drill.SessionConfig{
		LearnerID:      "xigua",
		Scope:          drill.ScopeAll,
		RequestedCount: 4,
		AvoidDays:      0,
		AnswerMode:     drill.ModeTyped,
	}
}

func TestStart_MarksQueuedItemsSeenToday(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	svc := newTestService(t, s)

	res, err := svc.Start(baseCfg())
	require.NoError(t, err)
	assert.False(t, res.Empty)
	assert.Equal(t, 4, res.QueueLength)
	assert.NotEmpty(t, res.SessionID)

	seen, err := s.SeenOn("xigua", "2026-08-31")
	require.NoError(t, err)
	assert.Len(t, seen, 4)
}

func TestStart_EmptyPoolIsTerminalNotError(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	svc := newTestService(t, s)

	cfg := baseCfg()
	cfg.Scope = drill.ScopeWrong // empty wrong set

	res, err := svc.Start(cfg)
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.NotEmpty(t, res.EmptyReason)

	// Nothing was queued, so nothing is marked seen.
	seen, err := s.SeenOn("xigua", "2026-08-31")
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestStart_RejectsBadConfig(t *testing.T) {
	svc := newTestService(t, nil)

	cfg := baseCfg()
	cfg.RequestedCount = 0

	_, err := svc.Start(cfg)
	assert.ErrorIs(t, err, drill.ErrBadConfig)
}

func TestSubmit_CorrectAnswerClearsWrongSetAndCounts(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.AddWrong("xigua", "a1"))

	svc := newTestService(t, s)

	cfg := baseCfg()
	cfg.Scope = drill.ScopeWrong
	cfg.RequestedCount = 1

	res, err := svc.Start(cfg)
	require.NoError(t, err)
	require.False(t, res.Empty)

	view, ok, err := svc.Current(res.SessionID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a1", view.Item.ID)

	ans, err := svc.Submit(res.SessionID, "  Apple  ")
	require.NoError(t, err)
	assert.True(t, ans.Correct)
	assert.Equal(t, drill.AdvanceAuto, ans.Advance)

	wrong, err := s.WrongSet("xigua")
	require.NoError(t, err)
	assert.Empty(t, wrong)

	st, err := s.StatsOn("xigua", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, store.DayStats{Attempted: 1, Correct: 1}, st)
}

func TestSubmit_RetriesEachCountAsAttempts(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	svc := newTestService(t, s)

	res, err := svc.Start(baseCfg())
	require.NoError(t, err)

	view, _, err := svc.Current(res.SessionID)
	require.NoError(t, err)

	ans, err := svc.Submit(res.SessionID, "nope")
	require.NoError(t, err)
	assert.False(t, ans.Correct)
	assert.Equal(t, drill.AdvanceHold, ans.Advance)

	// Retry, still wrong. Both attempts must be recorded.
	_, err = svc.Submit(res.SessionID, "still nope")
	require.NoError(t, err)

	st, err := s.StatsOn("xigua", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, store.DayStats{Attempted: 2, Correct: 0}, st)

	wrong, err := s.WrongSet("xigua")
	require.NoError(t, err)
	assert.True(t, wrong[view.Item.ID])
}

func TestSession_RunToCompletion(t *testing.T) {
	svc := newTestService(t, nil)

	res, err := svc.Start(baseCfg())
	require.NoError(t, err)

	for {
		view, ok, err := svc.Current(res.SessionID)
		require.NoError(t, err)
		if !ok {
			break
		}
		ans, err := svc.Submit(res.SessionID, view.Item.Foreign)
		require.NoError(t, err)
		require.True(t, ans.Correct)

		_, err = svc.Advance(res.SessionID)
		require.NoError(t, err)
	}

	st, err := svc.Status(res.SessionID)
	require.NoError(t, err)
	assert.True(t, st.Done)
	assert.Equal(t, drill.Summary{Attempted: 4, Correct: 4, Wrong: 0}, st.Summary)
}

func TestCurrent_ChoiceModeIncludesAnswer(t *testing.T) {
	svc := newTestService(t, nil)

	cfg := baseCfg()
	cfg.AnswerMode = drill.ModeChoice

	res, err := svc.Start(cfg)
	require.NoError(t, err)

	view, ok, err := svc.Current(res.SessionID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Len(t, view.Choices, 4)
	assert.Contains(t, view.Choices, view.Item.Foreign)

	distinct := make(map[string]bool)
	for _, c := range view.Choices {
		distinct[c] = true
	}
	assert.Len(t, distinct, 4)
}

func TestUnknownSessionID(t *testing.T) {
	svc := newTestService(t, nil)

	_, _, err := svc.Current("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Submit("missing", "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Advance("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Status("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStart_RetentionPrunesOldSeenDays(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.AppendSeen("xigua", "2026-06-01", []string{"a1"}))

	svc := newTestService(t, s)

	_, err = svc.Start(baseCfg())
	require.NoError(t, err)

	old, err := s.SeenOn("xigua", "2026-06-01")
	require.NoError(t, err)
	assert.Empty(t, old)
}

// failingStore wraps the sqlite store and breaks every read the
// history snapshot depends on.
type failingStore struct {
	*store.SQLiteStore
}

var errBroken = errors.New("disk on fire")

func (f *failingStore) WrongSet(string) (map[string]bool, error) { return nil, errBroken }
func (f *failingStore) NewSet(string) (map[string]bool, error)   { return nil, errBroken }
func (f *failingStore) SeenByDay(string, []string) (map[string][]string, error) {
	return nil, errBroken
}
func (f *failingStore) CategoryOverrides() (map[string]string, error) { return nil, errBroken }

func TestStart_FailedHistoryReadsDegradeToEmpty(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	svc := newTestService(t, &failingStore{s})

	cfg := baseCfg()
	cfg.AvoidDays = 3

	// Corrupted reads must not prevent a session from starting.
	res, err := svc.Start(cfg)
	require.NoError(t, err)
	assert.False(t, res.Empty)
	assert.Equal(t, 4, res.QueueLength)
}

func TestProgressReport(t *testing.T) {
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.AddWrong("xigua", "a1"))
	require.NoError(t, s.AddWrong("xigua", "a2"))
	require.NoError(t, s.AppendSeen("xigua", "2026-08-31", []string{"a1", "a2", "a3"}))
	require.NoError(t, s.AddAttempt("xigua", "2026-08-31", true))
	require.NoError(t, s.AddAttempt("xigua", "2026-08-30", true))
	require.NoError(t, s.AddAttempt("xigua", "2026-08-30", false))
	// Outside the 7-day window.
	require.NoError(t, s.AddAttempt("xigua", "2026-08-01", false))

	svc := newTestService(t, s)

	rep := svc.ProgressReport()
	assert.Equal(t, 6, rep.BankSize)
	require.Len(t, rep.Learners, 2)

	// Roster order preserved.
	xigua := rep.Learners[0]
	assert.Equal(t, "xigua", xigua.LearnerID)
	assert.Equal(t, 2, xigua.WrongCount)
	assert.Equal(t, 3, xigua.SeenToday)
	assert.Equal(t, 3, xigua.Attempted)
	assert.Equal(t, 2, xigua.Correct)
	assert.Equal(t, 67, xigua.Accuracy)

	youzi := rep.Learners[1]
	assert.Equal(t, "youzi", youzi.LearnerID)
	assert.Zero(t, youzi.Attempted)
	assert.Zero(t, youzi.Accuracy)
}
