package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/baiwei666/CineTrack/internal/model"
)

const imageBase = "https://image.tmdb.org/t/p/w300"

type Client struct {
	APIKey   string
	BaseURL  string
	Language string
	Client   *http.Client
}

func New(apiKey, language string) *Client {
	return &Client{
		APIKey:   apiKey,
		BaseURL:  "https://api.themoviedb.org/3",
		Language: language,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResp struct {
	Results []searchItem `json:"results"`
}

type searchItem struct {
	ID            int64   `json:"id"`
	MediaType     string  `json:"media_type"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	VoteAverage   float64 `json:"vote_average"`
	PosterPath    string  `json:"poster_path"`
	Overview      string  `json:"overview"`
}

type creditsBlock struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

type movieResp struct {
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Overview      string `json:"overview"`
	PosterPath    string `json:"poster_path"`
	ReleaseDate   string `json:"release_date"`
	Runtime       int    `json:"runtime"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	VoteAverage float64      `json:"vote_average"`
	Credits     creditsBlock `json:"credits"`
}

type tvResp struct {
	Name           string `json:"name"`
	OriginalName   string `json:"original_name"`
	Overview       string `json:"overview"`
	PosterPath     string `json:"poster_path"`
	FirstAirDate   string `json:"first_air_date"`
	EpisodeRunTime []int  `json:"episode_run_time"`
	Episodes       int    `json:"number_of_episodes"`
	Genres         []struct {
		Name string `json:"name"`
	} `json:"genres"`
	VoteAverage float64 `json:"vote_average"`
	CreatedBy   []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	Credits creditsBlock `json:"credits"`
}

type seasonResp struct {
	PosterPath string `json:"poster_path"`
	Overview   string `json:"overview"`
	AirDate    string `json:"air_date"`
}

// SearchTitles queries /search/multi and maps movie and tv hits to
// candidates, first five only. Without an API key the built-in offline
// list is filtered by substring instead; no network call is made.
func (c *Client) SearchTitles(ctx context.Context, query string) ([]model.Candidate, error) {
	if c.APIKey == "" {
		return searchOffline(query), nil
	}
	u, _ := url.Parse(c.BaseURL + "/search/multi")
	q := u.Query()
	q.Set("api_key", c.APIKey)
	if c.Language != "" {
		q.Set("language", c.Language)
	}
	q.Set("query", query)
	u.RawQuery = q.Encode()

	var sr searchResp
	if err := c.getJSON(ctx, u.String(), &sr); err != nil {
		return nil, err
	}
	var out []model.Candidate
	for _, it := range sr.Results {
		if it.MediaType != "movie" && it.MediaType != "tv" {
			continue
		}
		cand := model.Candidate{
			ExternalID:     strconv.FormatInt(it.ID, 10),
			Title:          it.Title,
			OriginalTitle:  it.OriginalTitle,
			MediaKind:      model.KindMovie,
			ReleaseYear:    yearOf(it.ReleaseDate),
			ExternalRating: it.VoteAverage,
			Overview:       it.Overview,
		}
		if it.MediaType == "tv" {
			cand.Title = it.Name
			cand.OriginalTitle = it.OriginalName
			cand.MediaKind = model.KindSeries
			cand.ReleaseYear = yearOf(it.FirstAirDate)
		}
		if it.PosterPath != "" {
			cand.CoverURL = imageBase + it.PosterPath
		}
		out = append(out, cand)
		if len(out) == 5 {
			break
		}
	}
	return out, nil
}

// FetchDetails enriches a picked candidate. kind selects the endpoint
// family: Movie hits /movie/{id}, everything else /tv/{id}.
func (c *Client) FetchDetails(ctx context.Context, externalID, kind string) (model.Details, error) {
	var d model.Details
	if c.APIKey == "" {
		return d, fmt.Errorf("missing TMDB API key")
	}
	if kind == model.KindMovie {
		var mr movieResp
		if err := c.getJSON(ctx, c.detailURL("/movie/"+externalID), &mr); err != nil {
			return d, err
		}
		d = model.Details{
			Title:          mr.Title,
			OriginalTitle:  mr.OriginalTitle,
			Overview:       mr.Overview,
			RuntimeMinutes: mr.Runtime,
			ReleaseYear:    yearOf(mr.ReleaseDate),
			ExternalRating: mr.VoteAverage,
			Director:       directorOf(mr.Credits),
			Actors:         castOf(mr.Credits, 5),
		}
		for _, g := range mr.Genres {
			d.Tags = append(d.Tags, g.Name)
		}
		if mr.PosterPath != "" {
			d.PosterURL = imageBase + mr.PosterPath
		}
		return d, nil
	}

	var tr tvResp
	if err := c.getJSON(ctx, c.detailURL("/tv/"+externalID), &tr); err != nil {
		return d, err
	}
	d = model.Details{
		Title:          tr.Name,
		OriginalTitle:  tr.OriginalName,
		Overview:       tr.Overview,
		EpisodeCount:   tr.Episodes,
		ReleaseYear:    yearOf(tr.FirstAirDate),
		ExternalRating: tr.VoteAverage,
		Director:       directorOf(tr.Credits),
		Actors:         castOf(tr.Credits, 5),
	}
	if len(tr.EpisodeRunTime) > 0 {
		d.RuntimeMinutes = tr.EpisodeRunTime[0]
	}
	if d.Director == "" && len(tr.CreatedBy) > 0 {
		d.Director = tr.CreatedBy[0].Name
	}
	for _, g := range tr.Genres {
		d.Tags = append(d.Tags, g.Name)
	}
	if tr.PosterPath != "" {
		d.PosterURL = imageBase + tr.PosterPath
	}
	return d, nil
}

// FetchSeasonDetails refetches poster, overview and year for one season of
// a tv entry.
func (c *Client) FetchSeasonDetails(ctx context.Context, externalID string, season int) (model.SeasonDetails, error) {
	var sd model.SeasonDetails
	if c.APIKey == "" {
		return sd, fmt.Errorf("missing TMDB API key")
	}
	var sr seasonResp
	u := c.detailURL(fmt.Sprintf("/tv/%s/season/%d", externalID, season))
	if err := c.getJSON(ctx, u, &sr); err != nil {
		return sd, err
	}
	sd.Overview = sr.Overview
	sd.Year = yearOf(sr.AirDate)
	if sr.PosterPath != "" {
		sd.PosterURL = imageBase + sr.PosterPath
	}
	return sd, nil
}

func (c *Client) detailURL(path string) string {
	u, _ := url.Parse(c.BaseURL + path)
	q := u.Query()
	q.Set("api_key", c.APIKey)
	q.Set("append_to_response", "credits")
	if c.Language != "" {
		q.Set("language", c.Language)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

func directorOf(c creditsBlock) string {
	for _, m := range c.Crew {
		if m.Job == "Director" {
			return m.Name
		}
	}
	return ""
}

func castOf(c creditsBlock, limit int) []string {
	var out []string
	for _, m := range c.Cast {
		out = append(out, m.Name)
		if len(out) == limit {
			break
		}
	}
	return out
}
