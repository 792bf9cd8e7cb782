package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	docs "github.com/0xPexy/sentra-inspect/docs"
	"github.com/0xPexy/sentra-inspect/internal/app"
	cfgpkg "github.com/0xPexy/sentra-inspect/internal/config"
	pipeline "github.com/0xPexy/sentra-inspect/internal/indexer/pipeline"
	indexersvc "github.com/0xPexy/sentra-inspect/internal/indexer/service"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/0xPexy/sentra-inspect/internal/server"
)

// @title Sentra Inspect API
// @version 1.0
// @description Read API over MEV evaluations of Ethereum transactions.
// @BasePath /
func main() {
	cfg := cfgpkg.Load()
	logger := app.MustBuildLogger(cfg.Log)
	defer logger.Sync()
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/"

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg, err := registry.Load(cfg.Registry.File)
	if err != nil {
		logger.Fatal("failed to load registry", zap.Error(err))
	}
	storage, err := app.OpenStorage(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer storage.Close()

	reader := indexersvc.NewReader(storage.Reads, reg)
	eventHub := server.NewEventHub(reader, logger.Named("events"))

	var follower *pipeline.Follower
	if cfg.Indexer.Enabled {
		client, err := pipeline.Dial(ctx, cfg.Chain.RPCURL)
		if err != nil {
			logger.Fatal("failed to connect chain rpc", zap.Error(err))
		}
		defer client.Close()
		priceOracle, err := app.NewOracle(cfg.Oracle, client, reg.WETH)
		if err != nil {
			logger.Fatal("failed to build oracle", zap.Error(err))
		}

		idxCfg := pipeline.Config{
			ChainID:             cfg.Chain.ChainID,
			MaxConcurrency:      cfg.Indexer.MaxConcurrency,
			ChunkSize:           cfg.Indexer.ChunkSize,
			Confirmations:       cfg.Indexer.Confirmations,
			PollInterval:        cfg.Indexer.PollInterval,
			StartBlock:          cfg.Indexer.StartBlock,
			StopOnProviderError: cfg.Indexer.StopOnProviderError,
		}
		inspector := pipeline.NewDefaultInspector(reg, logger.Named("inspect"))
		evaluator := pipeline.NewEvaluator(client, inspector, priceOracle, cfg.Indexer.MaxConcurrency, logger.Named("evaluator"))
		idx := pipeline.New(idxCfg, evaluator, pipeline.NewStoreAdapter(storage.Sink, eventHub), logger.Named("indexer"))
		follower = pipeline.NewFollower(idxCfg, idx, client, storage.Cursors, logger.Named("follower"))
	}

	r := server.NewRouter(reader, eventHub)
	srv := server.NewHTTP(cfg.Server, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		eventHub.Run(gctx)
		return nil
	})
	if follower != nil {
		g.Go(func() error {
			if err := follower.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		stop()
		os.Exit(1)
	}
	logger.Info("server stopped")
}
