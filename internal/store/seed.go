package store

import (
	"github.com/rs/xid"

	"github.com/baiwei666/CineTrack/internal/model"
)

// Seed returns the demo records used when no snapshot exists yet. Ids are
// generated fresh on every call so reseeding never collides with imports.
func Seed() []model.WatchRecord {
	return []model.WatchRecord{
		{
			ID:             xid.New().String(),
			Title:          "星际穿越",
			OriginalTitle:  "Interstellar",
			Director:       "Christopher Nolan",
			MediaKind:      model.KindMovie,
			CoverURL:       "https://image.tmdb.org/t/p/w300/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
			PersonalRating: 10,
			ExternalRating: 9.4,
			WatchDate:      "2023-11-15",
			Tags:           []string{"科幻", "太空", "亲情"},
			Comment:        "震撼人心的视听盛宴，汉斯季默的配乐太神了。",
			Actors:         []string{"马修·麦康纳", "安妮·海瑟薇"},
			ReleaseYear:    2014,
			RuntimeMinutes: 169,
		},
		{
			ID:             xid.New().String(),
			Title:          "绝命毒师",
			OriginalTitle:  "Breaking Bad",
			MediaKind:      model.KindSeries,
			CoverURL:       "https://image.tmdb.org/t/p/w300/ggFHVNu6YYI5L9pCfOacjizRGt.jpg",
			PersonalRating: 9.5,
			ExternalRating: 9.8,
			WatchDate:      "2023-10-01",
			Tags:           []string{"犯罪", "剧情"},
			Comment:        "目前看过最完美的剧集，没有之一。",
			Actors:         []string{"布莱恩·科兰斯顿", "亚伦·保尔"},
			ReleaseYear:    2008,
			Season:         1,
			Episodes:       7,
			RuntimeMinutes: 47,
		},
	}
}
