package inspect

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// BatchInspector runs a fixed set of inspectors and reducers over whole blocks of records.
type BatchInspector struct {
	book       AddressBook
	inspectors []Inspector
	reducers   []Reducer
	logger     *zap.Logger
}

func NewBatchInspector(book AddressBook, inspectors []Inspector, reducers []Reducer, logger *zap.Logger) *BatchInspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchInspector{
		book:       book,
		inspectors: inspectors,
		reducers:   reducers,
		logger:     logger,
	}
}

// Inspect runs every inspector, then every reducer, then a final prune.
func (b *BatchInspector) Inspect(insp *Inspection) {
	for _, in := range b.inspectors {
		Run(in, insp)
	}
	for _, r := range b.reducers {
		r.Reduce(insp)
	}
	insp.Prune()
}

// Build turns the records of one transaction into an inspection and runs the full pass.
func (b *BatchInspector) Build(records []CallRecord) (*Inspection, error) {
	insp, err := New(records, b.book)
	if err != nil {
		return nil, err
	}
	b.Inspect(insp)
	return insp, nil
}

// InspectMany groups records by transaction in first-seen order and returns the
// inspections that kept at least one slot. Records that do not parse are skipped.
func (b *BatchInspector) InspectMany(records []CallRecord) []*Inspection {
	order := make([]common.Hash, 0)
	groups := make(map[common.Hash][]CallRecord)
	for _, rec := range records {
		if _, ok := groups[rec.TxHash]; !ok {
			order = append(order, rec.TxHash)
		}
		groups[rec.TxHash] = append(groups[rec.TxHash], rec)
	}

	out := make([]*Inspection, 0, len(order))
	for _, hash := range order {
		insp, err := b.Build(groups[hash])
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				b.logger.Debug("skipping transaction", zap.String("tx", hash.Hex()), zap.String("reason", perr.Reason))
				continue
			}
			b.logger.Warn("inspection failed", zap.String("tx", hash.Hex()), zap.Error(err))
			continue
		}
		if len(insp.Actions) == 0 {
			continue
		}
		out = append(out, insp)
	}
	return out
}
