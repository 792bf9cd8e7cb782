package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/0xPexy/sentra-inspect/internal/app"
	cfgpkg "github.com/0xPexy/sentra-inspect/internal/config"
	pipeline "github.com/0xPexy/sentra-inspect/internal/indexer/pipeline"
	"github.com/0xPexy/sentra-inspect/internal/registry"
)

const usage = `usage:
  inspect tx <hash>
  inspect blocks --from N --to M [--max K]`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	cfg := cfgpkg.Load()
	logger := app.MustBuildLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "tx":
		err = runTx(ctx, cfg, logger, os.Args[2:])
	case "blocks":
		err = runBlocks(ctx, cfg, logger, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("inspect failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

// deps is everything both subcommands need from the environment.
type deps struct {
	client    *pipeline.TraceableEthClient
	storage   *app.Storage
	evaluator *pipeline.Evaluator
}

func (d *deps) close() {
	d.storage.Close()
	d.client.Close()
}

func setup(ctx context.Context, cfg cfgpkg.Config, logger *zap.Logger, maxConcurrency int) (*deps, error) {
	reg, err := registry.Load(cfg.Registry.File)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	client, err := pipeline.Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect chain rpc: %w", err)
	}
	priceOracle, err := app.NewOracle(cfg.Oracle, client, reg.WETH)
	if err != nil {
		client.Close()
		return nil, err
	}
	storage, err := app.OpenStorage(ctx, cfg.Database, logger)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("open sink: %w", err)
	}
	inspector := pipeline.NewDefaultInspector(reg, logger.Named("inspect"))
	evaluator := pipeline.NewEvaluator(client, inspector, priceOracle, maxConcurrency, logger.Named("evaluator"))
	return &deps{client: client, storage: storage, evaluator: evaluator}, nil
}

func runTx(ctx context.Context, cfg cfgpkg.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("tx", flag.ExitOnError)
	noStore := fs.Bool("no-store", false, "print the evaluation without persisting it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("tx needs exactly one transaction hash")
	}
	raw := fs.Arg(0)
	if len(common.FromHex(raw)) != common.HashLength {
		return fmt.Errorf("invalid transaction hash %q", raw)
	}
	hash := common.HexToHash(raw)

	d, err := setup(ctx, cfg, logger, 1)
	if err != nil {
		return err
	}
	defer d.close()

	res := d.evaluator.EvaluateTransaction(ctx, d.client, hash)
	if res.Evaluation == nil {
		return fmt.Errorf("evaluate %s: %w", hash.Hex(), res.Err)
	}
	if res.Err != nil {
		logger.Warn("profit not priced", zap.String("tx", hash.Hex()), zap.Error(res.Err))
	}
	row, err := pipeline.ToRow(res)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txOutput{
		TxHash:      row.TxHash,
		BlockNumber: row.BlockNumber,
		Status:      row.Status,
		Protocols:   row.Protocols,
		ActionTypes: row.ActionTypes,
		GasUsed:     row.GasUsed,
		GasPrice:    row.GasPrice,
		Profit:      row.Profit,
		ProfitError: row.ProfitError,
		Actions:     json.RawMessage(row.Actions),
	}); err != nil {
		return err
	}

	if *noStore {
		return nil
	}
	exists, err := d.storage.Sink.EvaluationExists(ctx, row.TxHash)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("evaluation already stored", zap.String("tx", row.TxHash))
		return nil
	}
	return d.storage.Sink.InsertEvaluation(ctx, row)
}

type txOutput struct {
	TxHash      string          `json:"txHash"`
	BlockNumber uint64          `json:"blockNumber"`
	Status      string          `json:"status"`
	Protocols   string          `json:"protocols"`
	ActionTypes string          `json:"actionTypes"`
	GasUsed     uint64          `json:"gasUsed"`
	GasPrice    string          `json:"gasPrice,omitempty"`
	Profit      string          `json:"profit,omitempty"`
	ProfitError string          `json:"profitError,omitempty"`
	Actions     json.RawMessage `json:"actions"`
}

func runBlocks(ctx context.Context, cfg cfgpkg.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("blocks", flag.ExitOnError)
	from := fs.Uint64("from", 0, "first block (inclusive)")
	to := fs.Uint64("to", 0, "last block (inclusive)")
	maxConcurrency := fs.Int("max", cfg.Indexer.MaxConcurrency, "fetches and evaluations in flight")
	stopOnError := fs.Bool("stop-on-provider-error", cfg.Indexer.StopOnProviderError, "abort on the first failed block")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *to < *from {
		return fmt.Errorf("--to %d is before --from %d", *to, *from)
	}

	d, err := setup(ctx, cfg, logger, *maxConcurrency)
	if err != nil {
		return err
	}
	defer d.close()

	idx := pipeline.New(pipeline.Config{
		ChainID:             cfg.Chain.ChainID,
		MaxConcurrency:      *maxConcurrency,
		StopOnProviderError: *stopOnError,
	}, d.evaluator, d.storage.Sink, logger.Named("indexer"))
	stats, err := idx.Run(ctx, *from, *to)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "blocks %d-%d: %d inserted, %d already stored, %d failed\n",
		*from, *to, stats.Inserted, stats.Skipped, stats.Failed)
	return nil
}
