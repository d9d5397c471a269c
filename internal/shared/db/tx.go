package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// TxFunc is the body of a unit of work. Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// Transactor runs a TxFunc inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type PoolTransactor struct {
	pool *pgxpool.Pool
}

func NewPoolTransactor(pool *pgxpool.Pool) *PoolTransactor {
	return &PoolTransactor{pool: pool}
}

// WithinTx begins a transaction, runs fn and commits. Errors and panics roll back.
func (t *PoolTransactor) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered from panic during transaction", zap.Any("panic", r))
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
		if err != nil {
			// the context may already be done, rollback must still reach the server
			if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("commit transaction: %w", commitErr)
		}
	}()

	err = fn(ctx, tx)
	return err
}
