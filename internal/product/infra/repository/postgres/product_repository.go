package postgres

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/product/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository implements domain.ProductRepository.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, tx pgx.Tx, product *domain.Product) error {
	query := `
        INSERT INTO products (id, owner_id, name, description, category, min_price, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at
    `
	return tx.QueryRow(ctx, query,
		product.ID,
		product.OwnerID,
		product.Name,
		product.Description,
		product.Category,
		product.MinPrice,
		product.Status,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

// GetByIDForUpdate locks the product row until tx ends.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Product, error) {
	query := `
        SELECT id, owner_id, name, description, category, min_price, status, created_at, updated_at
        FROM products
        WHERE id = $1
        FOR UPDATE
    `
	p := &domain.Product{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.MinPrice,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, product *domain.Product) error {
	query := `UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`
	err := tx.QueryRow(ctx, query, product.ID, product.Status).Scan(&product.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return domain.ErrProductNotFound
		}
		return err
	}
	return nil
}
