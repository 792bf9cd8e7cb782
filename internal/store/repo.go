package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *DB) *Repository { return &Repository{db: db.DB} }

func (r *Repository) InsertEvaluation(ctx context.Context, ev *Evaluation) error {
	ev.TxHash = NormalizeHash(ev.TxHash)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "tx_hash"}}, DoNothing: true}).
		Create(ev)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *Repository) EvaluationExists(ctx context.Context, txHash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Evaluation{}).
		Where("tx_hash = ?", NormalizeHash(txHash)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) GetEvaluation(ctx context.Context, txHash string) (*Evaluation, error) {
	var ev Evaluation
	err := r.db.WithContext(ctx).Where("tx_hash = ?", NormalizeHash(txHash)).First(&ev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (r *Repository) GetCursor(ctx context.Context, chainID uint64, name string) (*Cursor, error) {
	var cur Cursor
	err := r.db.WithContext(ctx).Where("chain_id = ? AND name = ?", chainID, name).First(&cur).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cur, nil
}

func (r *Repository) UpsertCursor(ctx context.Context, cur *Cursor) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chain_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_block": cur.LastBlock,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(cur).Error
}
