package application

import (
	"context"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	auctiondomain "github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type countingTransactor struct{ calls int }

func (t *countingTransactor) WithinTx(ctx context.Context, fn db.TxFunc) error {
	t.calls++
	return fn(ctx, nil)
}

type mockPaymentRepository struct{ mock.Mock }

func (m *mockPaymentRepository) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	return m.Called(ctx, tx, payment).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) ConfirmPayment(ctx context.Context, req domain.ConfirmRequest) (*domain.Confirmation, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*domain.Confirmation)
	return c, args.Error(1)
}

func (m *mockGateway) IsValidOrderID(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

// stubAuctionService only answers GetAuction.
type stubAuctionService struct {
	auctionapp.AuctionService
	auction *auctiondomain.Auction
	err     error
}

func (s *stubAuctionService) GetAuction(context.Context, uuid.UUID) (*auctiondomain.Auction, error) {
	return s.auction, s.err
}
