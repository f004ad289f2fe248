// bingo/dedupe.go
package bingo

import (
	"strings"
	"time"
)

// DedupePolicy decides what happens when the same player/item pair arrives
// twice in quick succession (typically a Loot Drop and a Collection Log
// announcement of the same physical drop).
type DedupePolicy string

const (
	// DedupeByWindow skips recording a drop when an identical one exists
	// within the time window.
	DedupeByWindow DedupePolicy = "window"
	// RecordBothTagged records every drop and relies on the drop_type tag to
	// tell the announcements apart.
	RecordBothTagged DedupePolicy = "tagged"
)

// ParseDedupePolicy maps a config string onto a policy, defaulting to the
// time-window behavior.
func ParseDedupePolicy(s string) DedupePolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RecordBothTagged):
		return RecordBothTagged
	default:
		return DedupeByWindow
	}
}

// DefaultDedupeWindow is how far apart two announcements of the same drop
// can be and still count as one event.
const DefaultDedupeWindow = 5 * time.Second

// HistoryEntry is the slice of a recorded drop the duplicate check needs.
type HistoryEntry struct {
	Player    string
	Item      string
	Timestamp time.Time
}

// IsDuplicate reports whether entries already holds a drop with the same
// player and item (exact match) within window seconds of ts, inclusive on
// either side.
func IsDuplicate(entries []HistoryEntry, player, item string, ts time.Time, window time.Duration) bool {
	for _, e := range entries {
		if e.Player != player || e.Item != item {
			continue
		}
		delta := e.Timestamp.Sub(ts)
		if delta < 0 {
			delta = -delta
		}
		if delta <= window {
			return true
		}
	}
	return false
}
