package postgres

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository implements domain.PaymentRepository.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE order_id = $1)`, orderID,
	).Scan(&exists)
	return exists, err
}

// Create fails with db.ErrUniqueViolation when the order id was already recorded.
func (r *PaymentRepository) Create(ctx context.Context, tx pgx.Tx, p *domain.Payment) error {
	query := `
        INSERT INTO payments (id, payer_id, auction_id, amount, method, status, order_id, payment_key)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err := tx.QueryRow(ctx, query,
		p.ID,
		p.PayerID,
		p.AuctionID,
		p.Amount,
		p.Method,
		p.Status,
		p.OrderID,
		p.PaymentKey,
	).Scan(&p.CreatedAt)
	return db.ConvertErr(err)
}

// GetByOrderID is used by tests and support tooling.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `
        SELECT id, payer_id, auction_id, amount, method, status, order_id, payment_key, created_at
        FROM payments
        WHERE order_id = $1
    `
	p := &domain.Payment{}
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&p.ID,
		&p.PayerID,
		&p.AuctionID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.OrderID,
		&p.PaymentKey,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
