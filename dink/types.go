// dink/types.go
package dink

// Dink announces in-game events by executing a Discord webhook. These types
// mirror the slice of the webhook payload we consume.

// WebhookPayload is the inbound body of a Discord webhook execution.
type WebhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is one Discord embed inside a webhook message.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedField is a named field in a Discord embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// WarnFunc receives non-fatal parse diagnostics. A nil WarnFunc silences them.
type WarnFunc func(format string, args ...any)

// Drop types carried on extracted items. The same physical drop can be
// announced under both, which is what the history deduplication exists for.
const (
	DropTypeLoot          = "loot"
	DropTypeCollectionLog = "collection_log"
)

// Sentinel raw values for items whose notification carried no price.
const (
	ValueUnknown       = "Unknown"
	ValueCollectionLog = "Collection Log"
)

// ParsedItem is one item parsed out of a notification line.
type ParsedItem struct {
	Quantity     int     `json:"quantity"`
	Name         string  `json:"name"`
	RawValue     string  `json:"value"`
	NumericValue float64 `json:"value_numeric"`
}

// DropExtraction is everything pulled out of a loot / collection-log embed.
type DropExtraction struct {
	Player     string       `json:"player"`
	DropType   string       `json:"drop_type"`
	Items      []ParsedItem `json:"items"`
	Source     string       `json:"source,omitempty"`
	KillCount  *int         `json:"kill_count,omitempty"`
	RawTotal   string       `json:"total_value,omitempty"`
	TotalValue float64      `json:"total_value_numeric,omitempty"`
	Rarity     string       `json:"rarity,omitempty"`
}

// DeathExtraction is everything pulled out of a player-death embed.
type DeathExtraction struct {
	Player string `json:"player"`
	Cause  string `json:"cause"`
}
