package application

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type mockAuctionRepository struct {
	mock.Mock
}

func (m *mockAuctionRepository) Create(ctx context.Context, tx pgx.Tx, auction *domain.Auction) error {
	return m.Called(ctx, tx, auction).Error(0)
}

func (m *mockAuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Auction)
	return a, args.Error(1)
}

func (m *mockAuctionRepository) GetByProductIDForUpdate(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*domain.Auction, error) {
	args := m.Called(ctx, tx, productID)
	a, _ := args.Get(0).(*domain.Auction)
	return a, args.Error(1)
}

func (m *mockAuctionRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, auction *domain.Auction) error {
	return m.Called(ctx, tx, auction).Error(0)
}

func (m *mockAuctionRepository) ListByCategory(ctx context.Context, q domain.ListQuery) ([]*domain.Summary, int, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]*domain.Summary)
	return items, args.Int(1), args.Error(2)
}

func (m *mockAuctionRepository) GetDetails(ctx context.Context, id, viewerID uuid.UUID) (*domain.Details, error) {
	args := m.Called(ctx, id, viewerID)
	d, _ := args.Get(0).(*domain.Details)
	return d, args.Error(1)
}
