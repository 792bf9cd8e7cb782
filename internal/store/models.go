package store

import "time"

type Evaluation struct {
	ID          uint   `gorm:"primaryKey"`
	TxHash      string `gorm:"size:66;uniqueIndex"`
	BlockNumber uint64 `gorm:"index"`
	Sender      string `gorm:"size:42;index"`
	Contract    string `gorm:"size:42;index"`
	ProxyImpl   string `gorm:"size:42"`
	Status      string `gorm:"size:16;index"`
	// Protocols and ActionTypes are comma separated, sorted.
	Protocols   string `gorm:"size:255"`
	ActionTypes string `gorm:"size:64"`
	Actions     string `gorm:"type:text"`
	GasUsed     uint64
	LogCount    int
	GasPrice    string    `gorm:"size:78"`
	Profit      string    `gorm:"size:78"`
	ProfitError string    `gorm:"size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type Cursor struct {
	ID        uint   `gorm:"primaryKey"`
	ChainID   uint64 `gorm:"uniqueIndex:idx_cursor"`
	Name      string `gorm:"size:64;uniqueIndex:idx_cursor"`
	LastBlock uint64
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
