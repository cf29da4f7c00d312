package main

import (
	"context"
	"flag"
	stdlog "log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/olyamironova/exchange-aggregator/internal/adapter/cache"
	"github.com/olyamironova/exchange-aggregator/internal/adapter/in_memory"
	"github.com/olyamironova/exchange-aggregator/internal/adapter/pg"
	httpapi "github.com/olyamironova/exchange-aggregator/internal/api/http"
	"github.com/olyamironova/exchange-aggregator/internal/config"
	"github.com/olyamironova/exchange-aggregator/internal/core"
	"github.com/olyamironova/exchange-aggregator/internal/domain"
	"github.com/olyamironova/exchange-aggregator/internal/idgen"
	"github.com/olyamironova/exchange-aggregator/internal/log"
	"github.com/olyamironova/exchange-aggregator/internal/port"
	"github.com/olyamironova/exchange-aggregator/internal/provider/fake"
)

func main() {
	cfgPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		stdlog.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var repo port.Repository
	if cfg.Database.InMemory {
		repo = in_memory.NewMemoryRepo()
	} else {
		pgRepo, err := pg.NewPgRepo(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("connect to Postgres", zap.Error(err))
		}
		defer pgRepo.Close(ctx)
		repo = pgRepo
	}

	var bidCache port.Cache
	if cfg.Cache.Enabled {
		bidCache = cache.NewRedisCache(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL)
	} else {
		bidCache = in_memory.NewCache()
	}

	ids := idgen.New()
	agg := core.NewAggregator(bidCache, logger)

	for _, pc := range cfg.Providers {
		p := fake.New(pc.Name, ids, repo, logger, nil)
		for _, d := range pc.Directions {
			p.AddDirection(
				domain.Asset(d.SourceAsset),
				domain.Asset(d.DestAsset),
				decimal.NewFromFloat(d.Rate),
				decimal.NewFromFloat(d.OverallAmount),
			)
		}
		if err := agg.AddProvider(p); err != nil {
			logger.Fatal("register provider", zap.String("provider", pc.Name), zap.Error(err))
		}
	}

	server := httpapi.NewHTTPServer(agg, ids, repo, logger, cfg.Server.RateLimit)
	logger.Info("starting HTTP server", zap.String("addr", cfg.Server.Addr))
	if err := server.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
