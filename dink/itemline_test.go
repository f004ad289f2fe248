package dink

import "testing"

func TestParseItemLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		quantity int
		item     string
		raw      string
		value    float64
	}{
		{
			name:     "linked item with value",
			line:     "1 x [Dragonstone](https://oldschool.runescape.wiki/w/Dragonstone) (11,571)",
			quantity: 1,
			item:     "Dragonstone",
			raw:      "11,571",
			value:    11571,
		},
		{
			name:     "parenthetical in item name",
			line:     "1 x [Black mask (10)](https://oldschool.runescape.wiki/w/Black_mask) (781K)",
			quantity: 1,
			item:     "Black mask (10)",
			raw:      "781K",
			value:    781_000,
		},
		{
			name:     "linked item without trailing value",
			line:     "1 x [Clue scroll (elite)](https://oldschool.runescape.wiki/w/Clue_scroll_(elite))",
			quantity: 1,
			item:     "Clue scroll (elite)",
			raw:      ValueUnknown,
			value:    0,
		},
		{
			name:     "plain item with value",
			line:     "150 x Cannonball (27,750)",
			quantity: 150,
			item:     "Cannonball",
			raw:      "27,750",
			value:    27750,
		},
		{
			name:     "plain item with url value",
			line:     "3 x Shark (https://oldschool.runescape.wiki/w/Shark)",
			quantity: 3,
			item:     "Shark",
			raw:      ValueUnknown,
			value:    0,
		},
		{
			name:     "zero quantity clamps to one",
			line:     "0 x Coins (1,000)",
			quantity: 1,
			item:     "Coins",
			raw:      "1,000",
			value:    1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseItemLine(tt.line, nil)
			if got == nil {
				t.Fatalf("ParseItemLine(%q) = nil, want item", tt.line)
			}
			if got.Quantity != tt.quantity {
				t.Errorf("quantity = %d, want %d", got.Quantity, tt.quantity)
			}
			if got.Name != tt.item {
				t.Errorf("name = %q, want %q", got.Name, tt.item)
			}
			if got.RawValue != tt.raw {
				t.Errorf("raw value = %q, want %q", got.RawValue, tt.raw)
			}
			if got.NumericValue != tt.value {
				t.Errorf("numeric value = %v, want %v", got.NumericValue, tt.value)
			}
		})
	}
}

func TestParseItemLine_NonItemLines(t *testing.T) {
	lines := []string{
		"",
		"Total value: 2.95M",
		"Source: Zulrah",
		"has looted:",
		"just some text without a drop",
	}
	for _, line := range lines {
		if got := ParseItemLine(line, nil); got != nil {
			t.Errorf("ParseItemLine(%q) = %+v, want nil", line, got)
		}
	}
}

func TestParseItemLine_EmbeddedInSentence(t *testing.T) {
	// Matching is a search, not an anchored match: prefixes and suffixes are fine.
	got := ParseItemLine("Loot: 2 x [Rune platebody](https://wiki/Rune_platebody) (77K) from a chest", nil)
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.Quantity != 2 || got.Name != "Rune platebody" || got.NumericValue != 77_000 {
		t.Errorf("got %+v", got)
	}
}
