package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BidRepository interface {
	// FindForUpdate locks and returns the bid of bidderID on auctionID, or nil when there is none.
	FindForUpdate(ctx context.Context, tx pgx.Tx, auctionID, bidderID uuid.UUID) (*Bid, error)
	// InsertIfAbsent reports false when another transaction already holds the (auction, bidder) row.
	InsertIfAbsent(ctx context.Context, tx pgx.Tx, bid *Bid) (bool, error)
	Update(ctx context.Context, tx pgx.Tx, bid *Bid) error
	CountByAuction(ctx context.Context, auctionID uuid.UUID) (int, error)
}
