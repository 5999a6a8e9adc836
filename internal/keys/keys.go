package keys

import (
	"sort"
	"strings"
)

// FighterKey produces a canonical lookup key for a single fighter or enemy
// name. Behavior: trims, lower-cases and replaces spaces with underscores.
// Suitable for stable DB keys and cache lookups.
func FighterKey(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// RosterKey produces a canonical key for a list of names (for example a
// league roster snapshot). Empty entries are skipped; the parts are sorted
// so the key does not depend on caller order.
func RosterKey(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		s := FighterKey(n)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, "_")
}
