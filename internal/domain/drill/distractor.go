package drill

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/vocadrill/backend/internal/domain/wordbank"
)

// DefaultDistractorCount is the multiple-choice wrong-option count.
const DefaultDistractorCount = 3

// PickDistractors samples `count` plausible wrong options for a
// multiple-choice rendering of `correct`, returning their foreign
// text. It prefers the session pool; when the pool cannot supply
// enough eligible alternatives it falls back to the full bank. The
// result is shorter than `count` only when the bank itself cannot
// supply enough distinct alternatives.
func PickDistractors(correct wordbank.WordItem, pool []wordbank.WordItem, bank *wordbank.WordBank, count int, rng *rand.Rand) []string {
	candidates := eligible(correct, pool)
	if len(candidates) < count {
		candidates = eligible(correct, bank.Items())
	}

	shuffled := sampleItems(candidates, len(candidates), rng)

	// Keep at most one item per normalized foreign text so the choice
	// set never shows the same answer twice.
	seen := map[string]bool{normalizeAnswer(correct.Foreign): true}
	out := make([]string, 0, count)
	for _, w := range shuffled {
		key := normalizeAnswer(w.Foreign)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w.Foreign)
		if len(out) == count {
			break
		}
	}
	return out
}

func eligible(correct wordbank.WordItem, items []wordbank.WordItem) []wordbank.WordItem {
	return lo.Filter(items, func(w wordbank.WordItem, _ int) bool {
		return w.ID != correct.ID && normalizeAnswer(w.Foreign) != normalizeAnswer(correct.Foreign)
	})
}
