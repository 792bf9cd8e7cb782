package pipeline

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0xPexy/sentra-inspect/internal/evaluation"
	"github.com/0xPexy/sentra-inspect/internal/inspect"
)

// Provider supplies the four per-block datasets the evaluator joins.
type Provider interface {
	TraceBlock(ctx context.Context, number uint64) ([]TraceFrame, error)
	BlockWithTxs(ctx context.Context, number uint64) (*types.Block, error)
	BlockReceipts(ctx context.Context, number uint64) ([]*types.Receipt, error)
	BlockLogs(ctx context.Context, number uint64) ([]types.Log, error)
}

// Bundle is everything fetched for one block.
type Bundle struct {
	Number   uint64
	Traces   []TraceFrame
	Block    *types.Block
	Receipts []*types.Receipt
	Logs     []types.Log
}

// Result is one stream item. Err may be set alongside a partial Evaluation when only
// the profit could not be priced.
type Result struct {
	Evaluation *evaluation.Evaluation
	LogCount   int
	Err        *Error
}

type job struct {
	insp     *inspect.Inspection
	gasUsed  uint64
	gasPrice *big.Int
	logs     int
}

type Evaluator struct {
	provider  Provider
	inspector *inspect.BatchInspector
	oracle    evaluation.PriceOracle
	max       int
	logger    *zap.Logger
}

func NewEvaluator(provider Provider, inspector *inspect.BatchInspector, oracle evaluation.PriceOracle, max int, logger *zap.Logger) *Evaluator {
	if max <= 0 {
		max = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		provider:  provider,
		inspector: inspector,
		oracle:    oracle,
		max:       max,
		logger:    logger,
	}
}

type driverState uint8

const (
	stateFetching driverState = iota
	stateDrainingBacklog
	stateEvaluating
	stateDone
)

func (s driverState) String() string {
	switch s {
	case stateFetching:
		return "fetching"
	case stateDrainingBacklog:
		return "draining-backlog"
	case stateEvaluating:
		return "evaluating"
	default:
		return "done"
	}
}

// completion is what a worker reports back to the driver once its slot is free.
type completion struct {
	bundle *Bundle
}

type driver struct {
	e        *Evaluator
	ctx      context.Context
	out      chan<- Result
	events   chan completion
	wg       sync.WaitGroup
	next     uint64
	to       uint64
	drained  bool
	inflight int
	backlog  []job
}

// Stream evaluates every transaction in [from, to]. Results arrive unordered and the
// channel is closed once the range is exhausted or ctx is cancelled. At most max block
// fetches and evaluations are outstanding at any time.
func (e *Evaluator) Stream(ctx context.Context, from, to uint64) <-chan Result {
	out := make(chan Result, e.max)
	d := &driver{
		e:       e,
		ctx:     ctx,
		out:     out,
		events:  make(chan completion),
		next:    from,
		to:      to,
		drained: from > to,
	}
	go d.run()
	return out
}

func (d *driver) state() driverState {
	switch {
	case d.inflight < d.e.max && len(d.backlog) > 0:
		return stateDrainingBacklog
	case d.inflight < d.e.max && !d.drained:
		return stateFetching
	case d.inflight > 0:
		return stateEvaluating
	default:
		return stateDone
	}
}

func (d *driver) run() {
	defer close(d.out)
	defer d.wg.Wait()

	for {
		switch d.state() {
		case stateDrainingBacklog:
			j := d.backlog[0]
			d.backlog[0] = job{}
			d.backlog = d.backlog[1:]
			d.spawn(func() { d.evaluate(j) })
		case stateFetching:
			n := d.next
			if n == d.to {
				d.drained = true
			} else {
				d.next++
			}
			d.spawn(func() { d.fetch(n) })
		case stateEvaluating:
			select {
			case <-d.ctx.Done():
				return
			case c := <-d.events:
				d.inflight--
				if c.bundle != nil {
					d.backlog = append(d.backlog, d.e.jobs(c.bundle)...)
				}
			}
		case stateDone:
			return
		}
		if d.ctx.Err() != nil {
			return
		}
	}
}

func (d *driver) spawn(fn func()) {
	d.inflight++
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn()
	}()
}

// done hands the slot back; bundle is nil for evaluations and failed fetches.
func (d *driver) done(bundle *Bundle) {
	select {
	case d.events <- completion{bundle: bundle}:
	case <-d.ctx.Done():
	}
}

func (d *driver) emit(r Result) {
	select {
	case d.out <- r:
	case <-d.ctx.Done():
	}
}

func (d *driver) fetch(n uint64) {
	bundle, err := d.e.fetch(d.ctx, n)
	if err != nil {
		if d.ctx.Err() == nil {
			d.e.logger.Warn("block fetch failed", zap.Uint64("block", n), zap.Error(err))
			d.emit(Result{Err: &Error{Origin: OriginProvider, Block: n, Err: err}})
		}
		d.done(nil)
		return
	}
	d.done(bundle)
}

func (d *driver) evaluate(j job) {
	d.emit(d.e.price(d.ctx, j))
	d.done(nil)
}

// fetch pulls the four datasets of one block concurrently.
func (e *Evaluator) fetch(ctx context.Context, n uint64) (*Bundle, error) {
	b := &Bundle{Number: n}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		traces, err := e.provider.TraceBlock(gctx, n)
		b.Traces = traces
		return err
	})
	g.Go(func() error {
		block, err := e.provider.BlockWithTxs(gctx, n)
		b.Block = block
		return err
	})
	g.Go(func() error {
		receipts, err := e.provider.BlockReceipts(gctx, n)
		b.Receipts = receipts
		return err
	})
	g.Go(func() error {
		logs, err := e.provider.BlockLogs(gctx, n)
		b.Logs = logs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}

// jobs runs the batch inspector over a bundle and pairs each inspection with its gas figures.
func (e *Evaluator) jobs(b *Bundle) []job {
	inspections := e.inspector.InspectMany(Records(b.Traces))
	if len(inspections) == 0 {
		return nil
	}

	receipts := make(map[common.Hash]*types.Receipt, len(b.Receipts))
	for _, r := range b.Receipts {
		if r != nil {
			receipts[r.TxHash] = r
		}
	}
	txs := make(map[common.Hash]*types.Transaction)
	if b.Block != nil {
		for _, tx := range b.Block.Transactions() {
			txs[tx.Hash()] = tx
		}
	}
	logs := make(map[common.Hash]int)
	for _, lg := range b.Logs {
		logs[lg.TxHash]++
	}

	out := make([]job, 0, len(inspections))
	for _, insp := range inspections {
		j := job{insp: insp, logs: logs[insp.Hash]}
		if r, ok := receipts[insp.Hash]; ok {
			j.gasUsed = r.GasUsed
			if r.EffectiveGasPrice != nil && r.EffectiveGasPrice.Sign() > 0 {
				j.gasPrice = new(big.Int).Set(r.EffectiveGasPrice)
			}
		}
		if j.gasPrice == nil {
			if tx, ok := txs[insp.Hash]; ok {
				j.gasPrice = tx.GasPrice()
			}
		}
		out = append(out, j)
	}
	e.logger.Debug("block inspected",
		zap.Uint64("block", b.Number),
		zap.Int("frames", len(b.Traces)),
		zap.Int("inspections", len(out)),
	)
	return out
}
