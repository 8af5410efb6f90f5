package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/baiwei666/CineTrack/internal/analysis"
	"github.com/baiwei666/CineTrack/internal/config"
	"github.com/baiwei666/CineTrack/internal/routes"
	"github.com/baiwei666/CineTrack/internal/server"
	"github.com/baiwei666/CineTrack/internal/store"
	"github.com/baiwei666/CineTrack/pkg/cache"
	"github.com/baiwei666/CineTrack/pkg/tmdb"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataPath).Msg("snapshot store open failed")
	}
	defer st.Close()

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	settings := routes.NewSettings(st.LoadSettings(cfg.DefaultSettings))

	// One shared HTTP client behind every lookup, whatever key is current.
	lookupHTTP := &http.Client{Timeout: 15 * time.Second}
	newLookup := func(apiKey string) routes.LookupClient {
		cl := tmdb.New(apiKey, cfg.TMDBLanguage)
		cl.Client = lookupHTTP
		return cl
	}

	api := server.New(routes.Deps{
		Store:     st,
		Cache:     c,
		Analyzer:  analysis.New(),
		Settings:  settings,
		NewLookup: newLookup,
	}, cfg.CORSAllowedOrigins)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}
