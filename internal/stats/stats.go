// Package stats computes the dashboard summary as a pure function of the
// record list. Nothing is cached: the collection stays small enough that a
// full recompute per call is cheaper than invalidation bookkeeping.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/baiwei666/CineTrack/internal/model"
)

const trendMonths = 6

// Compute aggregates the full record list into a Stats value. now anchors
// the trend window so tests can pin the clock.
func Compute(records []model.WatchRecord, now time.Time) model.Stats {
	s := model.Stats{
		Total:     len(records),
		AvgRating: "0.0",
		TypeCount: map[string]int{},
		TagCount:  map[string]int{},
		TopTags:   []model.TagFrequency{},
	}

	var ratingSum float64
	var tagOrder []string
	for _, r := range records {
		ratingSum += r.PersonalRating
		s.TypeCount[r.MediaKind]++
		for _, t := range r.Tags {
			if _, seen := s.TagCount[t]; !seen {
				tagOrder = append(tagOrder, t)
			}
			s.TagCount[t]++
		}
		if r.MediaKind == model.KindMovie {
			s.TotalDuration += r.RuntimeMinutes
		} else {
			s.TotalDuration += r.RuntimeMinutes * r.EpisodeCount()
		}
	}
	if s.Total > 0 {
		s.AvgRating = fmt.Sprintf("%.1f", ratingSum/float64(s.Total))
	}

	// Top 5 tags, ties broken by first-encountered order (stable sort over
	// the insertion-ordered key list).
	sort.SliceStable(tagOrder, func(i, j int) bool {
		return s.TagCount[tagOrder[i]] > s.TagCount[tagOrder[j]]
	})
	for i, t := range tagOrder {
		if i == 5 {
			break
		}
		s.TopTags = append(s.TopTags, model.TagFrequency{Tag: t, Count: s.TagCount[t]})
	}

	s.MonthlyTrend = trend(records, now)
	return s
}

// trend buckets records into the six calendar months ending at now's month,
// oldest first. Records whose watch date does not carry a matching YYYY-MM
// prefix (including unparseable dates) land in no bucket.
func trend(records []model.WatchRecord, now time.Time) []model.TrendBucket {
	buckets := make([]model.TrendBucket, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		buckets = append(buckets, model.TrendBucket{Month: m.Format("2006-01")})
	}
	for _, r := range records {
		for i := range buckets {
			if strings.HasPrefix(r.WatchDate, buckets[i].Month) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// FavoriteKind returns the most-watched media kind, or "" for an empty
// list. Used by the mock analysis provider.
func FavoriteKind(records []model.WatchRecord) string {
	counts := map[string]int{}
	var order []string
	for _, r := range records {
		if _, seen := counts[r.MediaKind]; !seen {
			order = append(order, r.MediaKind)
		}
		counts[r.MediaKind]++
	}
	best := ""
	for _, k := range order {
		if best == "" || counts[k] > counts[best] {
			best = k
		}
	}
	return best
}
