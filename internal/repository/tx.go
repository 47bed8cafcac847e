package repository

import "gorm.io/gorm"

// TxCreator inserts rows within an open transaction.
type TxCreator interface {
	Create(value interface{}) error
}

// TxRunner runs a unit of work that commits or rolls back as one.
type TxRunner interface {
	Transaction(fn func(tx TxCreator) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) Transaction(fn func(tx TxCreator) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(gormTxCreator{db: tx})
	})
}

type gormTxCreator struct {
	db *gorm.DB
}

func (c gormTxCreator) Create(value interface{}) error {
	return c.db.Create(value).Error
}
