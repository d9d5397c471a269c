package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/auction/domain"
	biddomain "github.com/cristianortiz/auctionMarket/internal/bid/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuctionRepository implements domain.AuctionRepository.
type AuctionRepository struct {
	pool *pgxpool.Pool
}

func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

const selectAuction = `
        SELECT a.id, a.product_id, p.owner_id, a.winner_id, a.min_price, a.end_time, a.status, a.created_at, a.updated_at
        FROM auctions a
        JOIN products p ON p.id = a.product_id
`

// Create inserts a new auction inside tx. A zero EndTime is stored as NULL.
func (r *AuctionRepository) Create(ctx context.Context, tx pgx.Tx, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, product_id, winner_id, min_price, end_time, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `
	return tx.QueryRow(ctx, query,
		auction.ID,
		auction.ProductID,
		auction.WinnerID,
		auction.MinPrice,
		nullableTime(auction.EndTime),
		auction.Status,
	).Scan(&auction.CreatedAt, &auction.UpdatedAt)
}

func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	return scanAuction(r.pool.QueryRow(ctx, selectAuction+` WHERE a.id = $1`, id))
}

// GetByProductIDForUpdate locks the auction row of productID until tx ends.
func (r *AuctionRepository) GetByProductIDForUpdate(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*domain.Auction, error) {
	return scanAuction(tx.QueryRow(ctx, selectAuction+` WHERE a.product_id = $1 FOR UPDATE OF a`, productID))
}

func (r *AuctionRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, auction *domain.Auction) error {
	query := `
        UPDATE auctions
        SET status = $2, end_time = $3, winner_id = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at
    `
	err := tx.QueryRow(ctx, query,
		auction.ID,
		auction.Status,
		nullableTime(auction.EndTime),
		auction.WinnerID,
	).Scan(&auction.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return domain.ErrAuctionNotFound
		}
		return err
	}
	return nil
}

var orderBy = map[domain.SortType]string{
	domain.SortPopularity: "participant_count DESC, a.created_at DESC",
	domain.SortExpensive:  "a.min_price DESC, a.created_at DESC",
	domain.SortCheap:      "a.min_price ASC, a.created_at DESC",
	domain.SortNewest:     "a.created_at DESC",
}

// ListByCategory pages through proceeding auctions of one category.
func (r *AuctionRepository) ListByCategory(ctx context.Context, q domain.ListQuery) ([]*domain.Summary, int, error) {
	order, ok := orderBy[q.Sort]
	if !ok {
		order = orderBy[domain.SortNewest]
	}

	var total int
	countQuery := `
        SELECT COUNT(*)
        FROM auctions a
        JOIN products p ON p.id = a.product_id
        WHERE a.status = $1 AND p.category = $2
    `
	if err := r.pool.QueryRow(ctx, countQuery, domain.StatusProceeding, q.Category).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count auctions: %w", err)
	}
	if total == 0 {
		return []*domain.Summary{}, 0, nil
	}

	query := `
        SELECT a.id, p.id, p.name, a.min_price,
            COALESCE((SELECT i.cdn_path FROM images i WHERE i.product_id = p.id ORDER BY i.position, i.id LIMIT 1), ''),
            (SELECT COUNT(*) FROM bids b WHERE b.auction_id = a.id) AS participant_count,
            EXISTS (SELECT 1 FROM bids b WHERE b.auction_id = a.id AND b.bidder_id = $3),
            a.end_time, a.created_at
        FROM auctions a
        JOIN products p ON p.id = a.product_id
        WHERE a.status = $1 AND p.category = $2
        ORDER BY ` + order + `
        LIMIT $4 OFFSET $5
    `
	rows, err := r.pool.Query(ctx, query,
		domain.StatusProceeding, q.Category, q.ViewerID, q.Size, q.Page*q.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Summary, 0, q.Size)
	for rows.Next() {
		s := &domain.Summary{}
		var endTime *time.Time
		if err := rows.Scan(
			&s.AuctionID,
			&s.ProductID,
			&s.Name,
			&s.MinPrice,
			&s.ImageURL,
			&s.ParticipantCount,
			&s.IsParticipating,
			&endTime,
			&s.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		if endTime != nil {
			s.EndTime = *endTime
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetDetails loads the auction view as seen by viewerID.
func (r *AuctionRepository) GetDetails(ctx context.Context, id, viewerID uuid.UUID) (*domain.Details, error) {
	query := `
        SELECT a.id, p.id, p.owner_id, u.nickname, p.name, p.description, p.category,
            a.min_price, a.status, a.end_time,
            (SELECT COUNT(*) FROM bids x WHERE x.auction_id = a.id),
            b.amount, b.count
        FROM auctions a
        JOIN products p ON p.id = a.product_id
        JOIN users u ON u.id = p.owner_id
        LEFT JOIN bids b ON b.auction_id = a.id AND b.bidder_id = $2
        WHERE a.id = $1
    `
	d := &domain.Details{}
	var (
		endTime   *time.Time
		bidAmount *int64
		bidCount  *int
	)
	err := r.pool.QueryRow(ctx, query, id, viewerID).Scan(
		&d.AuctionID,
		&d.ProductID,
		&d.SellerID,
		&d.SellerNickname,
		&d.Name,
		&d.Description,
		&d.Category,
		&d.MinPrice,
		&d.Status,
		&endTime,
		&d.ParticipantCount,
		&bidAmount,
		&bidCount,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}

	if endTime != nil {
		d.EndTime = *endTime
	}
	d.IsSeller = d.SellerID == viewerID
	d.RemainingBidCount = biddomain.DefaultCount
	if bidAmount != nil && bidCount != nil {
		d.IsParticipating = true
		d.BidAmount = *bidAmount
		d.RemainingBidCount = *bidCount
	}

	rows, err := r.pool.Query(ctx,
		`SELECT cdn_path FROM images WHERE product_id = $1 ORDER BY position, id`, d.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load auction images: %w", err)
	}
	d.ImageURLs, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("load auction images: %w", err)
	}
	return d, nil
}

func scanAuction(row pgx.Row) (*domain.Auction, error) {
	a := &domain.Auction{}
	var endTime *time.Time
	err := row.Scan(
		&a.ID,
		&a.ProductID,
		&a.SellerID,
		&a.WinnerID,
		&a.MinPrice,
		&endTime,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	if endTime != nil {
		a.EndTime = *endTime
	}
	return a, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
