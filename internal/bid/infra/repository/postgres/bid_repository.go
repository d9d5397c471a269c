package postgres

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/bid/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository implements domain.BidRepository.
type BidRepository struct {
	pool *pgxpool.Pool
}

func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

func (r *BidRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, auctionID, bidderID uuid.UUID) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, bidder_id, amount, count, created_at, updated_at
        FROM bids
        WHERE auction_id = $1 AND bidder_id = $2
        FOR UPDATE
    `
	bid := &domain.Bid{}
	err := tx.QueryRow(ctx, query, auctionID, bidderID).Scan(
		&bid.ID,
		&bid.AuctionID,
		&bid.BidderID,
		&bid.Amount,
		&bid.Count,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return bid, nil
}

// InsertIfAbsent relies on uq_bids_auction_bidder; a concurrent insert makes it wait and then skip.
func (r *BidRepository) InsertIfAbsent(ctx context.Context, tx pgx.Tx, bid *domain.Bid) (bool, error) {
	query := `
        INSERT INTO bids (id, auction_id, bidder_id, amount, count)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (auction_id, bidder_id) DO NOTHING
        RETURNING created_at, updated_at
    `
	err := tx.QueryRow(ctx, query,
		bid.ID,
		bid.AuctionID,
		bid.BidderID,
		bid.Amount,
		bid.Count,
	).Scan(&bid.CreatedAt, &bid.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *BidRepository) Update(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	query := `
        UPDATE bids
        SET amount = $2, count = $3, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at
    `
	return tx.QueryRow(ctx, query, bid.ID, bid.Amount, bid.Count).Scan(&bid.UpdatedAt)
}

func (r *BidRepository) CountByAuction(ctx context.Context, auctionID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bids WHERE auction_id = $1`, auctionID).Scan(&count)
	return count, err
}
