// dink/embed.go
package dink

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rePlayerLooted = regexp.MustCompile(`(.+?)\s+has looted:`)
	rePlayerAdded  = regexp.MustCompile(`(.+?)\s+has added`)

	// "<player> has added [Item](url) to their collection" — the collection
	// log body carries exactly one item and no value.
	reCollectionItem = regexp.MustCompile(`(?s)has added\s+(?:\d+\s*x\s*)?\[(.+?)\]`)

	reItemSignature = regexp.MustCompile(`\d\s*x\s`)
	reFirstDigits   = regexp.MustCompile(`\d+`)

	rePlayerDied   = regexp.MustCompile(`(.+?)\s+has died`)
	reDeathCause   = regexp.MustCompile(`to\s+(.+?)(?:\.|$)`)
	reMarkdownLink = regexp.MustCompile(`\[(.+?)\]\(\S*?\)`)
)

// ExtractDrop pulls a structured drop out of a loot or collection-log embed.
// It returns nil when the embed is not a drop notification or names no player;
// it succeeds with an empty item list when a player was found but no items.
func ExtractDrop(e Embed, warn WarnFunc) *DropExtraction {
	var dropType string
	switch {
	case strings.Contains(e.Title, "Loot Drop"):
		dropType = DropTypeLoot
	case strings.Contains(e.Title, "Collection Log"):
		dropType = DropTypeCollectionLog
	default:
		return nil
	}

	out := &DropExtraction{DropType: dropType}

	if m := rePlayerLooted.FindStringSubmatch(e.Description); m != nil {
		out.Player = strings.TrimSpace(m[1])
	} else if m := rePlayerAdded.FindStringSubmatch(e.Description); m != nil {
		out.Player = strings.TrimSpace(m[1])
	}
	if out.Player == "" {
		return nil
	}

	for _, f := range e.Fields {
		name := strings.TrimSpace(f.Name)
		value := strings.TrimSpace(f.Value)

		if hasItemSignature(value) {
			if item := ParseItemLine(value, warn); item != nil {
				out.Items = append(out.Items, *item)
			}
		}

		if strings.HasPrefix(value, "From:") {
			out.Source = strings.TrimSpace(strings.TrimPrefix(value, "From:"))
		} else if strings.Contains(name, "Source") {
			out.Source = strings.TrimSpace(strings.TrimPrefix(value, "Source:"))
		}

		if strings.Contains(name, "Kill Count") || strings.Contains(name, "Completion Count") {
			if digits := reFirstDigits.FindString(value); digits != "" {
				if n, err := strconv.Atoi(digits); err == nil {
					out.KillCount = &n
				}
			}
		}

		if strings.Contains(name, "Total Value") && !strings.HasPrefix(value, "http") {
			out.RawTotal = value
			out.TotalValue = ParseValue(value, warn)
		}

		if strings.Contains(name, "Item Rarity") || strings.Contains(name, "Rank") {
			out.Rarity = value
		}
	}

	// Some notification styles put the items in the body instead of fields.
	if len(out.Items) == 0 && e.Description != "" {
		if strings.Contains(e.Description, "to their collection") {
			if m := reCollectionItem.FindStringSubmatch(e.Description); m != nil {
				out.Items = append(out.Items, ParsedItem{
					Quantity: 1,
					Name:     strings.TrimSpace(m[1]),
					RawValue: ValueCollectionLog,
				})
			}
		}
		if len(out.Items) == 0 {
			for _, line := range strings.Split(e.Description, "\n") {
				if !hasItemSignature(line) {
					continue
				}
				if item := ParseItemLine(line, warn); item != nil {
					out.addOrUpgrade(*item)
				}
			}
		}
	}

	return out
}

// addOrUpgrade appends an item, except when a valueless entry for the same
// item name was already captured and the new line supplies a real value, in
// which case the new line replaces it.
func (d *DropExtraction) addOrUpgrade(item ParsedItem) {
	for i, existing := range d.Items {
		if strings.EqualFold(strings.TrimSpace(existing.Name), strings.TrimSpace(item.Name)) &&
			existing.NumericValue == 0 && item.NumericValue > 0 {
			d.Items[i] = item
			return
		}
	}
	d.Items = append(d.Items, item)
}

// ExtractDeath pulls a player death out of an embed body, or nil when the
// body carries no "<player> has died" sentence.
func ExtractDeath(e Embed) *DeathExtraction {
	m := rePlayerDied.FindStringSubmatch(e.Description)
	if m == nil {
		return nil
	}
	player := strings.TrimSpace(m[1])

	rest := e.Description[strings.Index(e.Description, "has died")+len("has died"):]
	rest = reMarkdownLink.ReplaceAllString(rest, "$1")

	cause := ""
	if cm := reDeathCause.FindStringSubmatch(rest); cm != nil {
		cause = strings.TrimSpace(cm[1])
	}
	if cause == "" || isPlaceholder(cause) {
		cause = "Unknown"
	}

	return &DeathExtraction{Player: player, Cause: cause}
}

// hasItemSignature reports whether text looks like it contains an item line:
// a quantity followed by "x", plus a parenthesis or bracket somewhere.
func hasItemSignature(text string) bool {
	return reItemSignature.MatchString(text) && strings.ContainsAny(text, "([")
}

// isPlaceholder catches Dink template tokens (e.g. "%NPC%") that the client
// failed to substitute before sending.
func isPlaceholder(s string) bool {
	return len(s) > 1 && strings.HasPrefix(s, "%") && strings.HasSuffix(s, "%")
}
