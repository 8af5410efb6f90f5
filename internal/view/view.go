// Package view derives the filtered, sorted record list shown by the UI.
// Apply never mutates the input; it returns a fresh slice on every call.
//
// Records with an unparseable watch date compare as the zero time and so
// collect at the "oldest" end: first under date-ascending order, last under
// date-descending order.
package view

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/baiwei666/CineTrack/internal/dupes"
	"github.com/baiwei666/CineTrack/internal/model"
)

const passAll = "All"

// Apply filters and orders records per f. When f.DuplicatesOnly is set all
// other filters are ignored and the flagged records are returned sorted by
// title ascending with a locale-aware comparison.
func Apply(records []model.WatchRecord, f model.FilterState) []model.WatchRecord {
	if f.DuplicatesOnly {
		return duplicatesView(records)
	}

	search := strings.ToLower(f.Search)
	out := make([]model.WatchRecord, 0, len(records))
	for _, r := range records {
		if !matchesSearch(r, search) {
			continue
		}
		if f.Kind != "" && f.Kind != passAll && r.MediaKind != f.Kind {
			continue
		}
		if f.Tag != "" && f.Tag != passAll && !hasTag(r, f.Tag) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch f.Sort {
		case model.SortDateAsc:
			return parseDate(out[i].WatchDate).Before(parseDate(out[j].WatchDate))
		case model.SortRatingDesc:
			return out[i].PersonalRating > out[j].PersonalRating
		case model.SortRatingAsc:
			return out[i].PersonalRating < out[j].PersonalRating
		default: // date_desc
			return parseDate(out[j].WatchDate).Before(parseDate(out[i].WatchDate))
		}
	})
	return out
}

func duplicatesView(records []model.WatchRecord) []model.WatchRecord {
	flagged := dupes.Flag(records)
	out := make([]model.WatchRecord, 0, len(flagged))
	for _, r := range records {
		if _, ok := flagged[r.ID]; ok {
			out = append(out, r)
		}
	}
	c := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Title, out[j].Title) < 0
	})
	return out
}

// matchesSearch reports whether the query is a substring of the title, any
// tag, any actor, or the director. An empty query matches everything.
func matchesSearch(r model.WatchRecord, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, t := range r.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	for _, a := range r.Actors {
		if strings.Contains(strings.ToLower(a), query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(r.Director), query)
}

func hasTag(r model.WatchRecord, tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
