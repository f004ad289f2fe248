// dink/itemline.go
package dink

import (
	"regexp"
	"strconv"
	"strings"
)

// Item line grammars, tried in order. The ordering matters: the looser legacy
// patterns would otherwise capture text meant for the stricter ones.
var (
	// "60 x [Dragonstone](https://wiki/Dragonstone) (668K)" — current Dink
	// format with a wiki link and a trailing value. The URL group is \S+ so a
	// URL containing parentheses (e.g. Black_mask_(10)) cannot swallow the
	// value parenthetical.
	reLinkedItemValue = regexp.MustCompile(`(\d+)\s*x\s*\[(.+?)\]\s*\((\S+)\)\s*\((.+?)\)`)

	// "60 x [Dragonstone](https://wiki/Dragonstone)" — link with no value, or
	// "60 x [Dragonstone] (668K)" — bracketed name with a bare value.
	reBracketItem = regexp.MustCompile(`(\d+)\s*x\s*\[(.+?)\]\s*\((\S+)\)`)

	// "60 x Dragonstone (668K)" — oldest format, plain name.
	rePlainItem = regexp.MustCompile(`(\d+)\s*x\s*(.+?)\s*\((.+?)\)`)
)

// ParseItemLine parses one notification line into an item, or nil when the
// line is not an item line. Matching is a substring search, not whole-line:
// the same parser runs against free-text paragraphs that embed item lines.
func ParseItemLine(line string, warn WarnFunc) *ParsedItem {
	if m := reLinkedItemValue.FindStringSubmatch(line); m != nil {
		return newItem(m[1], m[2], m[4], warn)
	}
	if m := reBracketItem.FindStringSubmatch(line); m != nil {
		return newItem(m[1], m[2], m[3], warn)
	}
	if m := rePlainItem.FindStringSubmatch(line); m != nil {
		return newItem(m[1], m[2], m[3], warn)
	}
	return nil
}

func newItem(qtyText, name, valueText string, warn WarnFunc) *ParsedItem {
	qty, _ := strconv.Atoi(qtyText)
	if qty < 1 {
		qty = 1
	}

	item := &ParsedItem{
		Quantity: qty,
		Name:     strings.TrimSpace(name),
	}

	valueText = strings.TrimSpace(valueText)
	if strings.HasPrefix(valueText, "http") {
		// A wiki URL where the value belongs: legacy feeds did this.
		item.RawValue = ValueUnknown
		item.NumericValue = 0
		return item
	}

	item.RawValue = valueText
	item.NumericValue = ParseValue(valueText, warn)
	return item
}
