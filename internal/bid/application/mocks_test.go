package application

import (
	"context"
	"sync"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	auctiondomain "github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/cristianortiz/auctionMarket/internal/bid/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	userdomain "github.com/cristianortiz/auctionMarket/internal/user/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type inlineTransactor struct{}

func (inlineTransactor) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return fn(ctx, nil)
}

type mockBidRepository struct{ mock.Mock }

func (m *mockBidRepository) FindForUpdate(ctx context.Context, tx pgx.Tx, auctionID, bidderID uuid.UUID) (*domain.Bid, error) {
	args := m.Called(ctx, tx, auctionID, bidderID)
	b, _ := args.Get(0).(*domain.Bid)
	return b, args.Error(1)
}

func (m *mockBidRepository) InsertIfAbsent(ctx context.Context, tx pgx.Tx, bid *domain.Bid) (bool, error) {
	args := m.Called(ctx, tx, bid)
	return args.Bool(0), args.Error(1)
}

func (m *mockBidRepository) Update(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	return m.Called(ctx, tx, bid).Error(0)
}

func (m *mockBidRepository) CountByAuction(ctx context.Context, auctionID uuid.UUID) (int, error) {
	args := m.Called(ctx, auctionID)
	return args.Int(0), args.Error(1)
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*userdomain.User)
	return u, args.Error(1)
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

type recordingNotifier struct {
	mu       sync.Mutex
	auctions []uuid.UUID
}

func (n *recordingNotifier) BidPlaced(_ context.Context, auctionID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.auctions = append(n.auctions, auctionID)
}
