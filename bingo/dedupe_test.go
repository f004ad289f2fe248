package bingo

import (
	"testing"
	"time"
)

func TestIsDuplicate(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []HistoryEntry{
		{Player: "Thurgo", Item: "Magic fang", Timestamp: base},
		{Player: "Zed", Item: "Magic fang", Timestamp: base},
	}

	tests := []struct {
		name   string
		player string
		item   string
		ts     time.Time
		want   bool
	}{
		{"same drop 3s later", "Thurgo", "Magic fang", base.Add(3 * time.Second), true},
		{"same drop 3s earlier", "Thurgo", "Magic fang", base.Add(-3 * time.Second), true},
		{"exactly at the window edge", "Thurgo", "Magic fang", base.Add(DefaultDedupeWindow), true},
		{"outside the window", "Thurgo", "Magic fang", base.Add(10 * time.Second), false},
		{"different item", "Thurgo", "Tanzanite fang", base, false},
		{"different player", "Mordaut", "Magic fang", base, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDuplicate(entries, tt.player, tt.item, tt.ts, DefaultDedupeWindow)
			if got != tt.want {
				t.Errorf("IsDuplicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDuplicate_EmptyHistory(t *testing.T) {
	if IsDuplicate(nil, "Thurgo", "Magic fang", time.Now(), DefaultDedupeWindow) {
		t.Error("empty history reported a duplicate")
	}
}

func TestIsDuplicate_ItemNameIsExact(t *testing.T) {
	base := time.Now()
	entries := []HistoryEntry{{Player: "Thurgo", Item: "Magic fang", Timestamp: base}}

	// Unlike tile matching, history dedup compares item names exactly.
	if IsDuplicate(entries, "Thurgo", "magic fang", base, DefaultDedupeWindow) {
		t.Error("case-differing item treated as duplicate")
	}
}

func TestParseDedupePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want DedupePolicy
	}{
		{"window", DedupeByWindow},
		{"tagged", RecordBothTagged},
		{"TAGGED", RecordBothTagged},
		{"  tagged  ", RecordBothTagged},
		{"", DedupeByWindow},
		{"nonsense", DedupeByWindow},
	}
	for _, tt := range tests {
		if got := ParseDedupePolicy(tt.in); got != tt.want {
			t.Errorf("ParseDedupePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
