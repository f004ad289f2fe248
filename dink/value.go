// dink/value.go
package dink

import (
	"strconv"
	"strings"
)

// artifactStripper removes Discord code-block markers, the LDIF syntax hint
// some clients wrap values in, and embedded newlines.
var artifactStripper = strings.NewReplacer("```", "", "LDIF", "", "ldif", "", "\n", "")

// ParseValue converts value shorthand like "2.95M", "668K" or "1,234 gp" into
// a plain number. It never fails: anything unparsable comes back as 0, with a
// warning routed through warn unless the text is evidently a URL fragment.
func ParseValue(raw string, warn WarnFunc) float64 {
	// Wiki links sometimes land where a value belongs. Never try to parse those.
	if strings.HasPrefix(raw, "http") || strings.HasPrefix(raw, "HTTP") {
		return 0
	}

	s := artifactStripper.Replace(raw)
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "GP", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0
	}

	mult := 1.0
	num := s
	switch {
	case strings.Contains(s, "M"):
		mult = 1_000_000
		num = strings.ReplaceAll(s, "M", "")
	case strings.Contains(s, "K"):
		mult = 1_000
		num = strings.ReplaceAll(s, "K", "")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		if warn != nil && !looksLikeURL(s) {
			warn("could not parse value: %s", raw)
		}
		return 0
	}

	if v < 0 {
		return 0
	}
	return v * mult
}

func looksLikeURL(s string) bool {
	for _, marker := range []string{"HTTP", "HTTPS", "WWW", "://"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
