package drill

import (
	"math/rand"

	"github.com/vocadrill/backend/internal/domain/wordbank"
)

// BuildQueue samples the session queue: an unbiased permutation of a
// copy of the pool, truncated to min(n, len(pool)). The pool is not
// mutated, and every returned id is distinct because the pool is
// deduplicated and truncation is without replacement.
func BuildQueue(pool []wordbank.WordItem, n int, rng *rand.Rand) []wordbank.WordItem {
	return sampleItems(pool, n, rng)
}

// sampleItems shuffles a copy of items and keeps the first n.
func sampleItems(items []wordbank.WordItem, n int, rng *rand.Rand) []wordbank.WordItem {
	out := make([]wordbank.WordItem, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
