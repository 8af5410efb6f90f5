package model

// Media kinds a record can be logged as.
const (
	KindMovie       = "Movie"
	KindSeries      = "Series"
	KindAnime       = "Anime"
	KindDocumentary = "Documentary"
)

var AllowedKinds = map[string]struct{}{
	KindMovie:       {},
	KindSeries:      {},
	KindAnime:       {},
	KindDocumentary: {},
}

// Analysis providers.
const (
	ProviderMock     = "Mock"
	ProviderOpenAI   = "OpenAI"
	ProviderGemini   = "Gemini"
	ProviderDeepSeek = "DeepSeek"
)

var AllowedProviders = map[string]struct{}{
	ProviderMock:     {},
	ProviderOpenAI:   {},
	ProviderGemini:   {},
	ProviderDeepSeek: {},
}

// WatchRecord is one logged viewing event. Season and EpisodesWatched are
// only meaningful for non-movie kinds; duration math ignores them for movies.
type WatchRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	OriginalTitle  string   `json:"originalTitle,omitempty"`
	Director       string   `json:"director,omitempty"`
	MediaKind      string   `json:"mediaKind"`
	CoverURL       string   `json:"coverUrl"`
	PersonalRating float64  `json:"personalRating"`
	ExternalRating float64  `json:"externalRating"`
	WatchDate      string   `json:"watchDate"` // YYYY-MM-DD
	Tags           []string `json:"tags"`
	Comment        string   `json:"comment,omitempty"`
	Actors         []string `json:"actors"`
	ReleaseYear    int      `json:"releaseYear"`
	RuntimeMinutes int      `json:"runtimeMinutesPerUnit,omitempty"`
	Season         int      `json:"season,omitempty"`
	Episodes       int      `json:"episodesWatched,omitempty"`
	ExternalID     string   `json:"externalId,omitempty"`
}

// EpisodeCount returns the number of episodes counted toward this record,
// defaulting to 1 when unset.
func (r WatchRecord) EpisodeCount() int {
	if r.Episodes <= 0 {
		return 1
	}
	return r.Episodes
}

// AppSettings is the whole-snapshot configuration document.
type AppSettings struct {
	TMDBAPIKey string `json:"tmdbApiKey"`
	AIProvider string `json:"aiProvider"`
	AIAPIKey   string `json:"aiApiKey"`
	AIModel    string `json:"aiModel"`
}

// Sort keys accepted by the view engine.
const (
	SortDateDesc   = "date_desc"
	SortDateAsc    = "date_asc"
	SortRatingDesc = "rating_desc"
	SortRatingAsc  = "rating_asc"
)

// FilterState selects and orders the record view. Kind and Tag use "All"
// (or empty) as the pass-through value. DuplicatesOnly short-circuits every
// other filter.
type FilterState struct {
	Search         string `json:"search"`
	Kind           string `json:"kind"`
	Tag            string `json:"tag"`
	Sort           string `json:"sort"`
	DuplicatesOnly bool   `json:"duplicatesOnly"`
}

// Stats is the derived dashboard summary, recomputed from scratch on every
// request.
type Stats struct {
	Total         int            `json:"total"`
	AvgRating     string         `json:"avgRating"`
	TypeCount     map[string]int `json:"typeCount"`
	TagCount      map[string]int `json:"tagCount"`
	TopTags       []TagFrequency `json:"topTags"`
	TotalDuration int            `json:"totalDurationMinutes"`
	MonthlyTrend  []TrendBucket  `json:"monthlyTrend"`
}

type TagFrequency struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TrendBucket is one of the six most recent calendar months.
type TrendBucket struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// Candidate is a lightweight external-metadata search result.
type Candidate struct {
	ExternalID     string  `json:"externalId"`
	Title          string  `json:"title"`
	OriginalTitle  string  `json:"originalTitle,omitempty"`
	MediaKind      string  `json:"mediaKind"`
	ReleaseYear    int     `json:"releaseYear"`
	ExternalRating float64 `json:"externalRating"`
	CoverURL       string  `json:"coverUrl"`
	Overview       string  `json:"overview,omitempty"`
}

// Details is the enrichment payload fetched after picking a candidate.
type Details struct {
	Title          string   `json:"title"`
	OriginalTitle  string   `json:"originalTitle,omitempty"`
	Director       string   `json:"director,omitempty"`
	Actors         []string `json:"actors"`
	Tags           []string `json:"tags"`
	RuntimeMinutes int      `json:"runtimeMinutesPerUnit"`
	EpisodeCount   int      `json:"episodeCount,omitempty"`
	Overview       string   `json:"overview,omitempty"`
	PosterURL      string   `json:"posterUrl,omitempty"`
	ReleaseYear    int      `json:"releaseYear"`
	ExternalRating float64  `json:"externalRating"`
}

// SeasonDetails is the per-season refetch payload.
type SeasonDetails struct {
	PosterURL string `json:"posterUrl,omitempty"`
	Overview  string `json:"overview,omitempty"`
	Year      int    `json:"year,omitempty"`
}

// AnalysisResult is the structured taste profile returned by a provider.
type AnalysisResult struct {
	Keywords        []string         `json:"keywords"`
	Analysis        string           `json:"analysis"`
	Recommendations []Recommendation `json:"recommendations"`
}

type Recommendation struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}
