package drill

import (
	"github.com/samber/lo"

	"github.com/vocadrill/backend/internal/domain/wordbank"
)

// poolFloor is the smallest avoided pool we accept before relaxing the
// avoidance window. A session is never starved purely by avoidance:
// when fewer than min(requestedCount, poolFloor) items survive, the
// scope-filtered pool is used as-is.
const poolFloor = 6

// BuildPool filters the bank down to the session's candidate pool:
// scope filter first, then the avoidance window, then the relaxation
// fallback. Avoidance applies uniformly to every scope, including
// "wrong"; the fallback is what rescues small pools. An empty
// scope-filtered pool stays empty and the session surfaces the empty
// terminal state.
func BuildPool(bank *wordbank.WordBank, hist History, cfg SessionConfig) []wordbank.WordItem {
	scoped := scopeFilter(bank.Items(), hist, cfg)
	if cfg.AvoidDays == 0 {
		return scoped
	}

	avoid := hist.avoidSet(cfg.AvoidDays)
	avoided := lo.Filter(scoped, func(w wordbank.WordItem, _ int) bool {
		return !avoid[w.ID]
	})

	if len(avoided) < min(cfg.RequestedCount, poolFloor) {
		return scoped
	}
	return avoided
}

func scopeFilter(items []wordbank.WordItem, hist History, cfg SessionConfig) []wordbank.WordItem {
	switch cfg.Scope {
	case ScopeCategory:
		return lo.Filter(items, func(w wordbank.WordItem, _ int) bool {
			c := wordbank.EffectiveCategory(w, hist.Overrides)
			return c != wordbank.Uncategorized && c == cfg.Category
		})
	case ScopeNew:
		return lo.Filter(items, func(w wordbank.WordItem, _ int) bool {
			return hist.New[w.ID]
		})
	case ScopeWrong:
		return lo.Filter(items, func(w wordbank.WordItem, _ int) bool {
			return hist.Wrong[w.ID]
		})
	default: // ScopeAll
		return items
	}
}
