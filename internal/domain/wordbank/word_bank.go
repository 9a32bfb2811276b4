package wordbank

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Uncategorized is the effective category of items with no usable
// category. Items in it are excluded from category-scoped pools.
const Uncategorized = "uncategorized"

// WordItem is a single vocabulary entry. Items are immutable once the
// bank is built.
type WordItem struct {
	ID       string `json:"id"`
	Native   string `json:"zh"`
	Foreign  string `json:"en"`
	ImageRef string `json:"img,omitempty"`
	Category string `json:"cat,omitempty"`
}

// WordBank is a validated, deduplicated catalog of vocabulary items.
// It owns its items for the session lifetime.
type WordBank struct {
	items   []WordItem
	byID    map[string]WordItem
	dropped int
}

// Normalize builds a WordBank from raw records: fields are trimmed,
// records missing id/native/foreign are dropped, and duplicate ids
// collapse to the first occurrence.
func Normalize(raw []WordItem) *WordBank {
	items := make([]WordItem, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	dropped := 0

	for _, w := range raw {
		w.ID = strings.TrimSpace(w.ID)
		w.Native = strings.TrimSpace(w.Native)
		w.Foreign = strings.TrimSpace(w.Foreign)
		w.ImageRef = strings.TrimSpace(w.ImageRef)
		w.Category = strings.TrimSpace(w.Category)

		if w.ID == "" || w.Native == "" || w.Foreign == "" {
			dropped++
			continue
		}
		if seen[w.ID] {
			dropped++
			continue
		}
		seen[w.ID] = true
		items = append(items, w)
	}

	return &WordBank{
		items: items,
		byID: lo.Associate(items, func(w WordItem) (string, WordItem) {
			return w.ID, w
		}),
		dropped: dropped,
	}
}

// Load decodes a JSON array of word records and normalizes it.
func Load(r io.Reader) (*WordBank, error) {
	var raw []WordItem
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("wordbank: decode: %w", err)
	}
	return Normalize(raw), nil
}

// Items returns the bank's items. Callers must not mutate the slice.
func (b *WordBank) Items() []WordItem {
	return b.items
}

func (b *WordBank) Len() int {
	return len(b.items)
}

// Dropped reports how many raw records were discarded during
// normalization.
func (b *WordBank) Dropped() int {
	return b.dropped
}

// ByID looks up an item by id.
func (b *WordBank) ByID(id string) (WordItem, bool) {
	w, ok := b.byID[id]
	return w, ok
}

// Categories returns the sorted distinct effective categories present
// in the bank, excluding Uncategorized.
func (b *WordBank) Categories(overrides map[string]string) []string {
	set := make(map[string]bool)
	for _, w := range b.items {
		c := EffectiveCategory(w, overrides)
		if c != Uncategorized {
			set[c] = true
		}
	}
	cats := lo.Keys(set)
	sort.Strings(cats)
	return cats
}

// EffectiveCategory resolves an item's category: the override map is
// checked before the item's own field, and an empty result normalizes
// to Uncategorized. Evaluated at pool-build time, never cached.
func EffectiveCategory(w WordItem, overrides map[string]string) string {
	if c := strings.TrimSpace(overrides[w.ID]); c != "" {
		return c
	}
	if c := w.Category; c != "" {
		return c
	}
	return Uncategorized
}
