package application

import (
	"context"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	auctiondomain "github.com/cristianortiz/auctionMarket/internal/auction/domain"
	imagedomain "github.com/cristianortiz/auctionMarket/internal/image/domain"
	"github.com/cristianortiz/auctionMarket/internal/product/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	userdomain "github.com/cristianortiz/auctionMarket/internal/user/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// recordingTransactor runs fn inline and remembers whether it failed.
type recordingTransactor struct {
	calls      int
	rolledBack bool
}

func (t *recordingTransactor) WithinTx(ctx context.Context, fn db.TxFunc) error {
	t.calls++
	err := fn(ctx, nil)
	t.rolledBack = err != nil
	return err
}

type mockProductRepository struct{ mock.Mock }

func (m *mockProductRepository) Create(ctx context.Context, tx pgx.Tx, p *domain.Product) error {
	return m.Called(ctx, tx, p).Error(0)
}

func (m *mockProductRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, tx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *mockProductRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, p *domain.Product) error {
	return m.Called(ctx, tx, p).Error(0)
}

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*userdomain.User)
	return u, args.Error(1)
}

type mockAuctionService struct{ mock.Mock }

func (m *mockAuctionService) CreateProceedingAuction(ctx context.Context, tx pgx.Tx, dto auctionapp.CreateAuctionDTO) (*auctiondomain.Auction, error) {
	args := m.Called(ctx, tx, dto)
	a, _ := args.Get(0).(*auctiondomain.Auction)
	return a, args.Error(1)
}

func (m *mockAuctionService) CreatePendingAuction(ctx context.Context, tx pgx.Tx, dto auctionapp.CreateAuctionDTO) (*auctiondomain.Auction, error) {
	args := m.Called(ctx, tx, dto)
	a, _ := args.Get(0).(*auctiondomain.Auction)
	return a, args.Error(1)
}

func (m *mockAuctionService) ConvertPendingToProceeding(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*auctiondomain.Auction, error) {
	args := m.Called(ctx, tx, productID)
	a, _ := args.Get(0).(*auctiondomain.Auction)
	return a, args.Error(1)
}

func (m *mockAuctionService) GetAuction(ctx context.Context, id uuid.UUID) (*auctiondomain.Auction, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*auctiondomain.Auction)
	return a, args.Error(1)
}

func (m *mockAuctionService) ListByCategory(ctx context.Context, dto auctionapp.ListAuctionsDTO) (*auctionapp.AuctionPage, error) {
	args := m.Called(ctx, dto)
	p, _ := args.Get(0).(*auctionapp.AuctionPage)
	return p, args.Error(1)
}

func (m *mockAuctionService) GetDetails(ctx context.Context, id, viewerID uuid.UUID) (*auctiondomain.Details, error) {
	args := m.Called(ctx, id, viewerID)
	d, _ := args.Get(0).(*auctiondomain.Details)
	return d, args.Error(1)
}

type mockImageService struct{ mock.Mock }

func (m *mockImageService) UploadImages(ctx context.Context, uploads []imagedomain.Upload) ([]string, error) {
	args := m.Called(ctx, uploads)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}

func (m *mockImageService) SaveProductImages(ctx context.Context, productID uuid.UUID, paths []string) ([]*imagedomain.Image, error) {
	args := m.Called(ctx, productID, paths)
	imgs, _ := args.Get(0).([]*imagedomain.Image)
	return imgs, args.Error(1)
}

func (m *mockImageService) DeleteUploadedImages(ctx context.Context, paths []string) error {
	return m.Called(ctx, paths).Error(0)
}
