package domain

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type ConfirmRequest struct {
	OrderID    string
	PaymentKey string
	Amount     int64
}

// Gateway is the external payment provider.
type Gateway interface {
	ConfirmPayment(ctx context.Context, req ConfirmRequest) (*Confirmation, error)
	// IsValidOrderID reports whether the provider has never seen orderID.
	IsValidOrderID(ctx context.Context, orderID string) (bool, error)
}

type PaymentRepository interface {
	ExistsByOrderID(ctx context.Context, orderID string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, payment *Payment) error
}
