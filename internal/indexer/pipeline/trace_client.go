package pipeline

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// TraceableEthClient pairs an ethclient with the raw rpc client for trace_* calls.
type TraceableEthClient struct {
	eth *ethclient.Client
	rpc *rpc.Client
}

func NewTraceableEthClient(eth *ethclient.Client, rpcClient *rpc.Client) (*TraceableEthClient, error) {
	if eth == nil {
		return nil, fmt.Errorf("eth client is nil")
	}
	if rpcClient == nil {
		return nil, fmt.Errorf("rpc client is nil")
	}
	return &TraceableEthClient{
		eth: eth,
		rpc: rpcClient,
	}, nil
}

// Dial opens both clients against one endpoint.
func Dial(ctx context.Context, url string) (*TraceableEthClient, error) {
	rpcClient, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return NewTraceableEthClient(ethclient.NewClient(rpcClient), rpcClient)
}

func (c *TraceableEthClient) TraceBlock(ctx context.Context, number uint64) ([]TraceFrame, error) {
	var frames []TraceFrame
	if err := c.rpc.CallContext(ctx, &frames, "trace_block", hexutil.EncodeUint64(number)); err != nil {
		return nil, err
	}
	return frames, nil
}

func (c *TraceableEthClient) TraceTransaction(ctx context.Context, hash common.Hash) ([]TraceFrame, error) {
	var frames []TraceFrame
	if err := c.rpc.CallContext(ctx, &frames, "trace_transaction", hash.Hex()); err != nil {
		return nil, err
	}
	return frames, nil
}

func (c *TraceableEthClient) BlockWithTxs(ctx context.Context, number uint64) (*types.Block, error) {
	return c.eth.BlockByNumber(ctx, new(big.Int).SetUint64(number))
}

func (c *TraceableEthClient) BlockReceipts(ctx context.Context, number uint64) ([]*types.Receipt, error) {
	return c.eth.BlockReceipts(ctx, rpc.BlockNumberOrHashWithNumber(rpc.BlockNumber(number)))
}

func (c *TraceableEthClient) BlockLogs(ctx context.Context, number uint64) ([]types.Log, error) {
	n := new(big.Int).SetUint64(number)
	return c.eth.FilterLogs(ctx, ethereum.FilterQuery{FromBlock: n, ToBlock: n})
}

func (c *TraceableEthClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return c.eth.HeaderByNumber(ctx, number)
}

func (c *TraceableEthClient) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	return c.eth.TransactionByHash(ctx, hash)
}

func (c *TraceableEthClient) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return c.eth.TransactionReceipt(ctx, hash)
}

func (c *TraceableEthClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return c.eth.CallContract(ctx, msg, blockNumber)
}

func (c *TraceableEthClient) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}
