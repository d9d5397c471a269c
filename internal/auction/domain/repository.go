package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AuctionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, auction *Auction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Auction, error)
	GetByProductIDForUpdate(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*Auction, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, auction *Auction) error
	ListByCategory(ctx context.Context, q ListQuery) ([]*Summary, int, error)
	GetDetails(ctx context.Context, id, viewerID uuid.UUID) (*Details, error)
}
