package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/0xPexy/sentra-inspect/internal/store"
)

// Stats summarises one Run.
type Stats struct {
	Inserted int
	Skipped  int
	Failed   int
}

// Indexer drains an evaluator stream into a sink. It is the only goroutine that touches
// the sink, so writes are serialised without a lock.
type Indexer struct {
	cfg       Config
	evaluator *Evaluator
	sink      Sink
	logger    *zap.Logger
}

func New(cfg Config, evaluator *Evaluator, sink Sink, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{
		cfg:       cfg,
		evaluator: evaluator,
		sink:      sink,
		logger:    logger,
	}
}

type writeRequest struct {
	name  string
	apply func(context.Context, Sink) error
}

// Run evaluates [from, to] and stores every transaction the sink does not have yet.
// Provider and sink failures are logged and counted; with StopOnProviderError the first
// provider failure ends the run and is returned.
func (i *Indexer) Run(ctx context.Context, from, to uint64) (Stats, error) {
	var stats Stats
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	i.logger.Info("indexing range", zap.Uint64("from", from), zap.Uint64("to", to))
	results := i.evaluator.Stream(runCtx, from, to)

	var stopErr error
	for res := range results {
		if stopErr != nil {
			continue
		}
		if res.Evaluation == nil {
			stats.Failed++
			if res.Err == nil {
				continue
			}
			i.logger.Warn("stream error",
				zap.String("origin", string(res.Err.Origin)),
				zap.Uint64("block", res.Err.Block),
				zap.Error(res.Err.Err),
			)
			if res.Err.Origin == OriginProvider && i.cfg.StopOnProviderError {
				stopErr = res.Err
				cancel()
			}
			continue
		}
		if res.Err != nil {
			i.logger.Warn("profit not priced",
				zap.String("tx", res.Err.TxHash.Hex()),
				zap.Error(res.Err.Err),
			)
		}

		req, err := i.persist(res)
		if err != nil {
			stats.Failed++
			i.logger.Error("cannot encode evaluation", zap.Error(err))
			continue
		}
		err = req.apply(ctx, i.sink)
		switch {
		case err == nil:
			stats.Inserted++
		case errors.Is(err, errAlreadyStored) || errors.Is(err, store.ErrDuplicate):
			stats.Skipped++
		default:
			stats.Failed++
			sinkErr := &Error{Origin: OriginSink, Block: res.Evaluation.Inspection.BlockNumber, TxHash: res.Evaluation.Inspection.Hash, Err: err}
			i.logger.Error("database write error", zap.String("request", req.name), zap.Error(sinkErr))
		}
	}

	i.logger.Info("range indexed",
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Int("inserted", stats.Inserted),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	if stopErr != nil {
		return stats, stopErr
	}
	return stats, ctx.Err()
}

var errAlreadyStored = errors.New("evaluation already stored")

func (i *Indexer) persist(res Result) (writeRequest, error) {
	row, err := ToRow(res)
	if err != nil {
		return writeRequest{}, err
	}
	return writeRequest{
		name: "evaluation " + row.TxHash,
		apply: func(ctx context.Context, sink Sink) error {
			exists, err := sink.EvaluationExists(ctx, row.TxHash)
			if err != nil {
				return err
			}
			if exists {
				return errAlreadyStored
			}
			return sink.InsertEvaluation(ctx, row)
		},
	}, nil
}
