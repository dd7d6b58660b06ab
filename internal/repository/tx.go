package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. Cascading
// deletes span several repositories; the owning service opens the transaction
// here and rebinds each repository to it with WithTx.
type TxManager interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type txManagerImpl struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by the given connection
func NewTxManager(db *gorm.DB) TxManager {
	return &txManagerImpl{db: db}
}

func (m *txManagerImpl) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
