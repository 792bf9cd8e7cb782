package pipeline

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/0xPexy/sentra-inspect/internal/store"
)

const followerCursor = "follower"

type HeadSource interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Follower keeps evaluating confirmed blocks as the chain grows, resuming from its cursor.
type Follower struct {
	cfg     Config
	indexer *Indexer
	heads   HeadSource
	cursors CursorStore
	logger  *zap.Logger
}

func NewFollower(cfg Config, indexer *Indexer, heads HeadSource, cursors CursorStore, logger *zap.Logger) *Follower {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Follower{
		cfg:     cfg,
		indexer: indexer,
		heads:   heads,
		cursors: cursors,
		logger:  logger,
	}
}

func (f *Follower) Run(ctx context.Context) error {
	cursor, err := f.cursors.GetCursor(ctx, f.cfg.ChainID, followerCursor)
	if err != nil {
		return err
	}
	startBlock := f.cfg.StartBlock
	if cursor != nil && cursor.LastBlock+1 > startBlock {
		startBlock = cursor.LastBlock + 1
		f.logger.Info("cursor restored", zap.Uint64("lastBlock", cursor.LastBlock))
	}

	chunkSize := f.cfg.chunkSize()
	confirmations := f.cfg.confirmations()
	pollInterval := f.cfg.pollInterval()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		head, err := f.heads.HeaderByNumber(ctx, nil)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			f.logger.Warn("failed to fetch head", zap.Error(err))
			if err := sleep(ctx, f.cfg.resubscribeDelay()); err != nil {
				return err
			}
			continue
		}
		var safeHead uint64
		if head.Number != nil && head.Number.Uint64() > confirmations {
			safeHead = head.Number.Uint64() - confirmations
		}
		// without a cursor or start block, follow from the current head
		if startBlock == 0 {
			startBlock = safeHead
		}

		if safeHead < startBlock {
			f.logger.Debug("waiting for safe head", zap.Uint64("startBlock", startBlock), zap.Uint64("safeHead", safeHead))
			if err := sleep(ctx, pollInterval); err != nil {
				return err
			}
			continue
		}

		from := startBlock
		for from <= safeHead {
			to := from + chunkSize - 1
			if to > safeHead {
				to = safeHead
			}
			if _, err := f.indexer.Run(ctx, from, to); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				f.logger.Warn("chunk failed, retrying later", zap.Uint64("from", from), zap.Uint64("to", to), zap.Error(err))
				if err := sleep(ctx, f.cfg.resubscribeDelay()); err != nil {
					return err
				}
				break
			}

			if err := f.cursors.UpsertCursor(ctx, &store.Cursor{
				ChainID:   f.cfg.ChainID,
				Name:      followerCursor,
				LastBlock: to,
			}); err != nil {
				return err
			}
			f.logger.Debug("cursor updated", zap.Uint64("lastBlock", to))

			from = to + 1
			startBlock = from
		}

		if err := sleep(ctx, pollInterval); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
