package service

import (
	"time"

	"github.com/samber/lo"

	"github.com/vocadrill/backend/internal/domain/drill"
	"github.com/vocadrill/backend/internal/worker"
)

const reportWindowDays = 7

// LearnerReport is one learner's line in the progress report.
type LearnerReport struct {
	LearnerID  string
	Name       string
	WrongCount int // current wrong-set size
	SeenToday  int // items queued for this learner today
	Attempted  int // trailing-window attempts
	Correct    int
	Accuracy   int // percent over the window; 0 when nothing attempted
}

// Report aggregates the progress report across the whole roster.
type Report struct {
	GeneratedAt time.Time
	BankSize    int
	WindowDays  int
	Learners    []LearnerReport
}

// ProgressReport computes per-learner stats concurrently: each
// learner's partition is independent, so the lines fan out over a
// small worker pool and are reassembled in roster order.
func (svc *SessionService) ProgressReport() Report {
	now := svc.now()

	pool := worker.NewPool[LearnerReport](3, len(svc.learners))
	for _, l := range svc.learners {
		learner := l
		pool.Submit(learner.ID, func() LearnerReport {
			return svc.learnerReport(learner, now)
		})
	}
	pool.Close()

	byID := make(map[string]LearnerReport, len(svc.learners))
	for range svc.learners {
		res := <-pool.Results()
		byID[res.Key] = res.Value
	}

	return Report{
		GeneratedAt: now,
		BankSize:    svc.bank.Len(),
		WindowDays:  reportWindowDays,
		Learners: lo.Map(svc.learners, func(l Learner, _ int) LearnerReport {
			return byID[l.ID]
		}),
	}
}

func (svc *SessionService) learnerReport(l Learner, now time.Time) LearnerReport {
	rep := LearnerReport{LearnerID: l.ID, Name: l.Name}

	wrong, err := svc.store.WrongSet(l.ID)
	if err != nil {
		svc.logger.Warn("report: wrong-set read failed", "learner", l.ID, "error", err)
	}
	rep.WrongCount = len(wrong)

	seenToday, err := svc.store.SeenOn(l.ID, drill.DayKey(now))
	if err != nil {
		svc.logger.Warn("report: seen-log read failed", "learner", l.ID, "error", err)
	}
	rep.SeenToday = len(seenToday)

	days := make([]string, 0, reportWindowDays)
	for i := 0; i < reportWindowDays; i++ {
		days = append(days, drill.DayKey(now.AddDate(0, 0, -i)))
	}
	stats, err := svc.store.StatsByDay(l.ID, days)
	if err != nil {
		svc.logger.Warn("report: stats read failed", "learner", l.ID, "error", err)
	}
	for _, st := range stats {
		rep.Attempted += st.Attempted
		rep.Correct += st.Correct
	}
	if rep.Attempted > 0 {
		rep.Accuracy = (rep.Correct*100 + rep.Attempted/2) / rep.Attempted
	}

	return rep
}
