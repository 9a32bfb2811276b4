package drill

import "time"

// History is a read-only snapshot of one learner's persisted state,
// taken at session start. A failed history read maps to the zero
// History: no wrong items, no seen days, no overrides.
type History struct {
	Wrong     map[string]bool     // word ids answered wrong and not since corrected
	New       map[string]bool     // externally toggled "new words" marker set
	Seen      map[string][]string // day key → word ids queued that day
	Overrides map[string]string   // word id → category override
	Today     time.Time           // learner-local "now"
}

// DayKey formats a time as the calendar-date key used by SeenLog and
// DailyStats.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// avoidSet is the union of seen ids over the previous `days` calendar
// days (yesterday back through today-days). Zero days means no
// avoidance.
func (h History) avoidSet(days int) map[string]bool {
	avoid := make(map[string]bool)
	for i := 1; i <= days; i++ {
		day := DayKey(h.Today.AddDate(0, 0, -i))
		for _, id := range h.Seen[day] {
			avoid[id] = true
		}
	}
	return avoid
}
