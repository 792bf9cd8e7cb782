package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/0xPexy/sentra-inspect/internal/store"
)

// Sink is the persistence collaborator, keyed by transaction hash.
type Sink interface {
	InsertEvaluation(ctx context.Context, ev *store.Evaluation) error
	EvaluationExists(ctx context.Context, txHash string) (bool, error)
}

type CursorStore interface {
	GetCursor(ctx context.Context, chainID uint64, name string) (*store.Cursor, error)
	UpsertCursor(ctx context.Context, cursor *store.Cursor) error
}

// EventSink receives every row the adapter inserted.
type EventSink interface {
	PublishEvaluation(ev *store.Evaluation)
}

// StoreAdapter publishes successful inserts to an event sink.
type StoreAdapter struct {
	sink   Sink
	events EventSink
}

func NewStoreAdapter(sink Sink, events EventSink) *StoreAdapter {
	return &StoreAdapter{sink: sink, events: events}
}

func (a *StoreAdapter) InsertEvaluation(ctx context.Context, ev *store.Evaluation) error {
	if err := a.sink.InsertEvaluation(ctx, ev); err != nil {
		return err
	}
	if a.events != nil {
		clone := *ev
		a.events.PublishEvaluation(&clone)
	}
	return nil
}

func (a *StoreAdapter) EvaluationExists(ctx context.Context, txHash string) (bool, error) {
	return a.sink.EvaluationExists(ctx, txHash)
}

// ToRow flattens a stream result into its persisted form. An oracle error is kept
// next to the row instead of dropping it.
func ToRow(res Result) (*store.Evaluation, error) {
	ev := res.Evaluation
	if ev == nil || ev.Inspection == nil {
		return nil, fmt.Errorf("result carries no evaluation")
	}
	insp := ev.Inspection
	actions, err := json.Marshal(insp.Actions)
	if err != nil {
		return nil, fmt.Errorf("encode actions: %w", err)
	}
	row := &store.Evaluation{
		TxHash:      strings.ToLower(insp.Hash.Hex()),
		BlockNumber: insp.BlockNumber,
		Sender:      store.NormalizeAddress(insp.From.Hex()),
		Contract:    store.NormalizeAddress(insp.Contract.Hex()),
		Status:      insp.Status.String(),
		Protocols:   strings.Join(insp.Protocols.Strings(), ","),
		ActionTypes: strings.Join(ev.Actions.Strings(), ","),
		Actions:     string(actions),
		GasUsed:     ev.GasUsed,
		LogCount:    res.LogCount,
	}
	if insp.ProxyImpl != nil {
		row.ProxyImpl = store.NormalizeAddress(insp.ProxyImpl.Hex())
	}
	if ev.GasPrice != nil {
		row.GasPrice = ev.GasPrice.String()
	}
	if ev.Profit != nil {
		row.Profit = ev.Profit.String()
	}
	if res.Err != nil {
		row.ProfitError = truncate(res.Err.Error(), 512)
	}
	return row, nil
}

// truncate caps s at n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
