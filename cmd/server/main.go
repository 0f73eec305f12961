package main

import (
	"context"
	"log"

	"github.com/exsim/exchange-sim/internal/adapter/cache"
	"github.com/exsim/exchange-sim/internal/adapter/in_memory"
	"github.com/exsim/exchange-sim/internal/adapter/pg"
	httpapi "github.com/exsim/exchange-sim/internal/api/http"
	"github.com/exsim/exchange-sim/internal/api/ws"
	"github.com/exsim/exchange-sim/internal/config"
	"github.com/exsim/exchange-sim/internal/logging"
	"github.com/exsim/exchange-sim/internal/matcher"
	"github.com/exsim/exchange-sim/internal/port"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadFromEnv("")

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	var journal port.Journal
	if cfg.DatabaseURL != "" {
		pgJournal, err := pg.NewPgJournal(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to Postgres: %v", err)
		}
		defer pgJournal.Close(ctx)
		journal = pgJournal
	} else {
		journal = in_memory.NewMemoryJournal()
	}

	var depthCache port.Cache
	if cfg.RedisAddr != "" {
		depthCache = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisTTL)
	} else {
		depthCache = in_memory.NewCache()
	}

	m := matcher.New(sugar, depthCache, journal)
	wsrv := ws.NewServer(m, sugar)
	server := httpapi.NewHTTPServer(m, journal, wsrv)

	sugar.Infof("starting HTTP server on %s", cfg.HTTPAddr)
	if err := server.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
