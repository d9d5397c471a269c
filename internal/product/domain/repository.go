package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, tx pgx.Tx, product *Product) error
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*Product, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, product *Product) error
}
