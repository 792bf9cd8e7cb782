// Package app builds the collaborators shared by the inspect CLI and the API server.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cfgpkg "github.com/0xPexy/sentra-inspect/internal/config"
	"github.com/0xPexy/sentra-inspect/internal/evaluation"
	pipeline "github.com/0xPexy/sentra-inspect/internal/indexer/pipeline"
	indexersvc "github.com/0xPexy/sentra-inspect/internal/indexer/service"
	"github.com/0xPexy/sentra-inspect/internal/oracle"
	"github.com/0xPexy/sentra-inspect/internal/store"
	"github.com/0xPexy/sentra-inspect/internal/store/postgres"
)

// MustBuildLogger writes to stderr so that command output on stdout stays parseable.
func MustBuildLogger(cfg cfgpkg.LogConfig) *zap.Logger {
	var zapLevel zapcore.Level
	switch cfg.Level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoding := "console"
	if cfg.JSON {
		encoding = "json"
	}
	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}

// Storage is the persistence side of one process: the write sink, the follower
// cursors and the read queries all point at the same database.
type Storage struct {
	Sink    pipeline.Sink
	Cursors pipeline.CursorStore
	Reads   indexersvc.Store
	close   func()
}

func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

func OpenStorage(ctx context.Context, cfg cfgpkg.DatabaseConfig, logger *zap.Logger) (*Storage, error) {
	switch cfg.Driver {
	case cfgpkg.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("storage ready", zap.String("driver", cfg.Driver))
		st := postgres.NewEvaluationStore(pool)
		return &Storage{Sink: st, Cursors: st, Reads: st, close: pool.Close}, nil
	default:
		db, err := store.OpenSQLite(cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		if err := store.AutoMigrate(db); err != nil {
			return nil, err
		}
		logger.Info("storage ready", zap.String("driver", cfg.Driver), zap.String("dsn", cfg.SQLiteDSN))
		repo := store.NewRepository(db)
		return &Storage{
			Sink:    repo,
			Cursors: repo,
			Reads:   repo,
			close: func() {
				if sqlDB, err := db.DB.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	}
}

// NewOracle picks the configured price source. Router quotes are memoized per block in a
// bounded cache.
func NewOracle(cfg cfgpkg.OracleConfig, caller ethereum.ContractCaller, weth common.Address) (evaluation.PriceOracle, error) {
	switch cfg.Kind {
	case cfgpkg.OracleStatic:
		if cfg.PricesFile == "" {
			return oracle.NewStatic(weth, nil), nil
		}
		return oracle.LoadStatic(cfg.PricesFile, weth)
	default:
		if !common.IsHexAddress(cfg.Router) {
			return nil, fmt.Errorf("invalid oracle router %q", cfg.Router)
		}
		return oracle.NewCached(oracle.NewUniswap(caller, common.HexToAddress(cfg.Router), weth), cfg.CacheSize), nil
	}
}
