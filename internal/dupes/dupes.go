// Package dupes flags likely duplicate records by normalized title alone.
// The heuristic deliberately ignores year, director and season, so two
// different works sharing a title are flagged, as are multiple seasons of
// one show logged separately. That is the documented behavior, not a bug.
package dupes

import (
	"strings"
	"unicode"

	"github.com/baiwei666/CineTrack/internal/model"
)

// NormalizeTitle lowercases the title and strips every rune that is not a
// letter or digit. Letters of any script survive, so CJK ideographs group
// the same way Latin text does.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Flag groups record ids by normalized title and returns the set of ids
// belonging to any group with two or more members.
func Flag(records []model.WatchRecord) map[string]struct{} {
	groups := map[string][]string{}
	for _, r := range records {
		key := NormalizeTitle(r.Title)
		groups[key] = append(groups[key], r.ID)
	}
	flagged := map[string]struct{}{}
	for _, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		for _, id := range ids {
			flagged[id] = struct{}{}
		}
	}
	return flagged
}
