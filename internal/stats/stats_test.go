package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiwei666/CineTrack/internal/model"
	"github.com/baiwei666/CineTrack/internal/stats"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestComputeEmpty(t *testing.T) {
	s := stats.Compute(nil, now)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, "0.0", s.AvgRating)
	assert.Empty(t, s.TopTags)
	assert.Equal(t, 0, s.TotalDuration)
	require.Len(t, s.MonthlyTrend, 6)
	for _, b := range s.MonthlyTrend {
		assert.Equal(t, 0, b.Count)
	}
}

func TestComputeTotalsAndAverage(t *testing.T) {
	records := []model.WatchRecord{
		{MediaKind: model.KindMovie, PersonalRating: 8},
		{MediaKind: model.KindSeries, PersonalRating: 9},
		{MediaKind: model.KindMovie, PersonalRating: 7.5},
	}
	s := stats.Compute(records, now)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, "8.2", s.AvgRating)
	assert.Equal(t, map[string]int{model.KindMovie: 2, model.KindSeries: 1}, s.TypeCount)
}

func TestTotalDuration(t *testing.T) {
	movie := model.WatchRecord{MediaKind: model.KindMovie, RuntimeMinutes: 120, Episodes: 10}
	series := model.WatchRecord{MediaKind: model.KindSeries, RuntimeMinutes: 45, Episodes: 10}
	noRuntime := model.WatchRecord{MediaKind: model.KindSeries, Episodes: 3}
	noEpisodes := model.WatchRecord{MediaKind: model.KindAnime, RuntimeMinutes: 24}

	// Episode count never multiplies a movie's runtime.
	s := stats.Compute([]model.WatchRecord{movie}, now)
	assert.Equal(t, 120, s.TotalDuration)

	s = stats.Compute([]model.WatchRecord{series}, now)
	assert.Equal(t, 450, s.TotalDuration)

	// Missing runtime contributes zero; missing episode count defaults to 1.
	s = stats.Compute([]model.WatchRecord{movie, series, noRuntime, noEpisodes}, now)
	assert.Equal(t, 120+450+0+24, s.TotalDuration)
}

func TestTopTagsTieBreak(t *testing.T) {
	records := []model.WatchRecord{
		{Tags: []string{"b", "a"}},
		{Tags: []string{"a"}},
		{Tags: []string{"c"}},
		{Tags: []string{"d"}},
		{Tags: []string{"e"}},
		{Tags: []string{"f"}},
	}
	s := stats.Compute(records, now)
	require.Len(t, s.TopTags, 5)
	assert.Equal(t, model.TagFrequency{Tag: "a", Count: 2}, s.TopTags[0])
	// Ties keep first-encountered order: b before c before d before e.
	assert.Equal(t, "b", s.TopTags[1].Tag)
	assert.Equal(t, "c", s.TopTags[2].Tag)
	assert.Equal(t, "d", s.TopTags[3].Tag)
	assert.Equal(t, "e", s.TopTags[4].Tag)
}

func TestMonthlyTrend(t *testing.T) {
	records := []model.WatchRecord{
		{WatchDate: "2024-03-01"},
		{WatchDate: "2024-03-20"},
		{WatchDate: "2024-01-05"},
		{WatchDate: "2023-10-31"},
		{WatchDate: "2023-01-01"}, // outside the window
		{WatchDate: "not-a-date"}, // lands in no bucket
		{WatchDate: ""},
	}
	s := stats.Compute(records, now)
	require.Len(t, s.MonthlyTrend, 6)
	assert.Equal(t, "2023-10", s.MonthlyTrend[0].Month)
	assert.Equal(t, "2024-03", s.MonthlyTrend[5].Month)

	sum := 0
	for _, b := range s.MonthlyTrend {
		sum += b.Count
	}
	assert.Equal(t, 4, sum)
	assert.Equal(t, 1, s.MonthlyTrend[0].Count)
	assert.Equal(t, 2, s.MonthlyTrend[5].Count)
}

func TestMonthlyTrendYearBoundary(t *testing.T) {
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	s := stats.Compute(nil, jan)
	require.Len(t, s.MonthlyTrend, 6)
	assert.Equal(t, "2023-08", s.MonthlyTrend[0].Month)
	assert.Equal(t, "2024-01", s.MonthlyTrend[5].Month)
}

func TestFavoriteKind(t *testing.T) {
	assert.Equal(t, "", stats.FavoriteKind(nil))
	records := []model.WatchRecord{
		{MediaKind: model.KindSeries},
		{MediaKind: model.KindMovie},
		{MediaKind: model.KindMovie},
	}
	assert.Equal(t, model.KindMovie, stats.FavoriteKind(records))
}
