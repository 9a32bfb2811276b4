package wordbank_test

import (
	"strings"
	"testing"

	"github.com/vocadrill/backend/internal/domain/wordbank"
)

func TestNormalize_DropsMalformedRecords(t *testing.T) {
	bank := wordbank.Normalize([]wordbank.WordItem{
		{ID: "a1", Native: "蘋果", Foreign: "apple"},
		{ID: "", Native: "香蕉", Foreign: "banana"},
		{ID: "a3", Native: "", Foreign: "orange"},
		{ID: "a4", Native: "葡萄", Foreign: ""},
	})

	if bank.Len() != 1 {
		t.Fatalf("expected 1 valid item, got %d", bank.Len())
	}
	if bank.Dropped() != 3 {
		t.Errorf("expected 3 dropped records, got %d", bank.Dropped())
	}
}

func TestNormalize_CollapsesDuplicateIDs(t *testing.T) {
	bank := wordbank.Normalize([]wordbank.WordItem{
		{ID: "a1", Native: "蘋果", Foreign: "apple"},
		{ID: "a1", Native: "蘋果二", Foreign: "apple again"},
		{ID: "a2", Native: "香蕉", Foreign: "banana"},
	})

	if bank.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", bank.Len())
	}

	// First occurrence wins.
	w, ok := bank.ByID("a1")
	if !ok {
		t.Fatal("expected a1 in bank")
	}
	if w.Foreign != "apple" {
		t.Errorf("expected first occurrence kept, got %q", w.Foreign)
	}
}

func TestNormalize_TrimsFields(t *testing.T) {
	bank := wordbank.Normalize([]wordbank.WordItem{
		{ID: " a1 ", Native: " 蘋果 ", Foreign: " apple ", Category: " fruit "},
	})

	w, ok := bank.ByID("a1")
	if !ok {
		t.Fatal("expected trimmed id to be found")
	}
	if w.Foreign != "apple" || w.Native != "蘋果" || w.Category != "fruit" {
		t.Errorf("expected trimmed fields, got %+v", w)
	}
}

func TestLoad_FromJSON(t *testing.T) {
	data := `[
		{"id":"a1","zh":"蘋果","en":"apple","cat":"fruit"},
		{"id":"a2","zh":"香蕉","en":"banana"},
		{"id":"","zh":"壞","en":"bad"}
	]`

	bank, err := wordbank.Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bank.Len() != 2 {
		t.Errorf("expected 2 valid items, got %d", bank.Len())
	}
}

func TestLoad_BadJSON(t *testing.T) {
	_, err := wordbank.Load(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestEffectiveCategory(t *testing.T) {
	item := wordbank.WordItem{ID: "a1", Native: "蘋果", Foreign: "apple", Category: "fruit"}

	tests := []struct {
		name      string
		overrides map[string]string
		want      string
	}{
		{"no override", nil, "fruit"},
		{"override wins", map[string]string{"a1": "snack"}, "snack"},
		{"blank override ignored", map[string]string{"a1": "  "}, "fruit"},
		{"other item override ignored", map[string]string{"a2": "snack"}, "fruit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordbank.EffectiveCategory(item, tt.overrides)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	bare := wordbank.WordItem{ID: "a2", Native: "香蕉", Foreign: "banana"}
	if got := wordbank.EffectiveCategory(bare, nil); got != wordbank.Uncategorized {
		t.Errorf("expected %q for missing category, got %q", wordbank.Uncategorized, got)
	}
}

func TestCategories_SortedAndDistinct(t *testing.T) {
	bank := wordbank.Normalize([]wordbank.WordItem{
		{ID: "a1", Native: "蘋果", Foreign: "apple", Category: "fruit"},
		{ID: "a2", Native: "香蕉", Foreign: "banana", Category: "fruit"},
		{ID: "a3", Native: "狗", Foreign: "dog", Category: "animal"},
		{ID: "a4", Native: "貓", Foreign: "cat"},
	})

	cats := bank.Categories(map[string]string{"a4": "animal"})
	if len(cats) != 2 || cats[0] != "animal" || cats[1] != "fruit" {
		t.Errorf("expected [animal fruit], got %v", cats)
	}
}
