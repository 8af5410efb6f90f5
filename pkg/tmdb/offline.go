package tmdb

import (
	"strings"

	"github.com/baiwei666/CineTrack/internal/model"
)

// offlineDB backs title search when no API key is configured.
var offlineDB = []model.Candidate{
	{Title: "星际穿越", OriginalTitle: "Interstellar", MediaKind: model.KindMovie, ReleaseYear: 2014, ExternalRating: 9.4},
	{Title: "千与千寻", OriginalTitle: "千と千尋の神隠し", MediaKind: model.KindAnime, ReleaseYear: 2001, ExternalRating: 9.4},
	{Title: "绝命毒师", OriginalTitle: "Breaking Bad", MediaKind: model.KindSeries, ReleaseYear: 2008, ExternalRating: 9.8},
	{Title: "黑客帝国", OriginalTitle: "The Matrix", MediaKind: model.KindMovie, ReleaseYear: 1999, ExternalRating: 9.1},
	{Title: "地球脉动", OriginalTitle: "Planet Earth", MediaKind: model.KindDocumentary, ReleaseYear: 2006, ExternalRating: 9.9},
	{Title: "肖申克的救赎", OriginalTitle: "The Shawshank Redemption", MediaKind: model.KindMovie, ReleaseYear: 1994, ExternalRating: 9.7},
	{Title: "盗梦空间", OriginalTitle: "Inception", MediaKind: model.KindMovie, ReleaseYear: 2010, ExternalRating: 9.3},
	{Title: "进击的巨人", OriginalTitle: "Attack on Titan", MediaKind: model.KindAnime, ReleaseYear: 2013, ExternalRating: 9.6},
}

func searchOffline(query string) []model.Candidate {
	q := strings.ToLower(query)
	var out []model.Candidate
	for _, c := range offlineDB {
		if strings.Contains(c.Title, query) || strings.Contains(strings.ToLower(c.OriginalTitle), q) {
			out = append(out, c)
		}
	}
	return out
}
