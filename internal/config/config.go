package config

import (
	"os"
	"strings"

	"github.com/baiwei666/CineTrack/internal/model"
)

// Config holds runtime configuration loaded from env.
type Config struct {
	Port               string
	DataPath           string
	Env                string
	TMDBLanguage       string
	ValkeyAddr         string
	ValkeyPassword     string
	CORSAllowedOrigins []string

	// Seed defaults for the stored settings snapshot; once the user saves
	// settings, the snapshot wins.
	DefaultSettings model.AppSettings
}

func FromEnv() Config {
	c := Config{
		Port:           getEnv("PORT", "8080"),
		DataPath:       getEnv("DATA_PATH", "cinetrack.db"),
		Env:            getEnv("ENV", "development"),
		TMDBLanguage:   getEnv("TMDB_LANGUAGE", "zh-CN"),
		ValkeyAddr:     os.Getenv("VALKEY_ADDR"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		DefaultSettings: model.AppSettings{
			TMDBAPIKey: os.Getenv("TMDB_API_KEY"),
			AIProvider: getEnv("AI_PROVIDER", model.ProviderMock),
			AIAPIKey:   os.Getenv("AI_API_KEY"),
			AIModel:    getEnv("AI_MODEL", "gpt-3.5-turbo"),
		},
	}
	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		for _, p := range strings.Split(s, ",") {
			if v := strings.TrimSpace(p); v != "" {
				c.CORSAllowedOrigins = append(c.CORSAllowedOrigins, v)
			}
		}
	}
	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
