package pipeline

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"

	"github.com/0xPexy/sentra-inspect/internal/evaluation"
)

// TxSource supplies what a single transaction evaluation needs.
type TxSource interface {
	TraceTransaction(ctx context.Context, hash common.Hash) ([]TraceFrame, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

var ErrNotInspectable = errors.New("transaction has no inspectable calls")

// EvaluateTransaction runs one mined transaction through the same inspection and
// pricing as a block range. The returned Result always carries its error, if any.
func (e *Evaluator) EvaluateTransaction(ctx context.Context, src TxSource, hash common.Hash) Result {
	var (
		frames  []TraceFrame
		tx      *types.Transaction
		receipt *types.Receipt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		frames, err = src.TraceTransaction(gctx, hash)
		return err
	})
	g.Go(func() error {
		var err error
		tx, _, err = src.TransactionByHash(gctx, hash)
		return err
	})
	g.Go(func() error {
		var err error
		receipt, err = src.TransactionReceipt(gctx, hash)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{Err: &Error{Origin: OriginProvider, TxHash: hash, Err: err}}
	}

	insp, err := e.inspector.Build(Records(frames))
	if err != nil {
		return Result{Err: &Error{Origin: OriginParse, TxHash: hash, Err: err}}
	}
	if len(insp.Actions) == 0 {
		return Result{Err: &Error{Origin: OriginParse, Block: insp.BlockNumber, TxHash: hash, Err: ErrNotInspectable}}
	}

	j := job{insp: insp}
	if receipt != nil {
		j.gasUsed = receipt.GasUsed
		j.logs = len(receipt.Logs)
		if receipt.EffectiveGasPrice != nil && receipt.EffectiveGasPrice.Sign() > 0 {
			j.gasPrice = new(big.Int).Set(receipt.EffectiveGasPrice)
		}
	}
	if j.gasPrice == nil && tx != nil {
		j.gasPrice = tx.GasPrice()
	}
	return e.price(ctx, j)
}

func (e *Evaluator) price(ctx context.Context, j job) Result {
	ev, err := evaluation.Evaluate(ctx, j.insp, e.oracle, j.gasUsed, j.gasPrice)
	res := Result{Evaluation: ev, LogCount: j.logs}
	if err != nil {
		res.Err = &Error{Origin: OriginOracle, Block: j.insp.BlockNumber, TxHash: j.insp.Hash, Err: err}
	}
	return res
}
