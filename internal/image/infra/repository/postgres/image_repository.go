package postgres

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionMarket/internal/image/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

// SaveAll inserts every image in one batch round trip.
func (r *ImageRepository) SaveAll(ctx context.Context, tx pgx.Tx, images []*domain.Image) error {
	batch := &pgx.Batch{}
	for _, img := range images {
		batch.Queue(`INSERT INTO images (id, product_id, cdn_path, position) VALUES ($1, $2, $3, $4) RETURNING created_at`,
			img.ID, img.ProductID, img.CDNPath, img.Position).
			QueryRow(func(row pgx.Row) error {
				return row.Scan(&img.CreatedAt)
			})
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert images: %w", err)
	}
	return nil
}

func (r *ImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Image, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, cdn_path, position, created_at FROM images WHERE product_id = $1 ORDER BY position, id`,
		productID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Image, error) {
		img := &domain.Image{}
		err := row.Scan(&img.ID, &img.ProductID, &img.CDNPath, &img.Position, &img.CreatedAt)
		return img, err
	})
}
