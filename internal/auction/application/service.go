package application

import (
	"context"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var log = logger.GetLogger()

// AuctionService is the auction lifecycle manager. Write operations take the
// caller's tx so product and auction always move together.
type AuctionService interface {
	CreateProceedingAuction(ctx context.Context, tx pgx.Tx, dto CreateAuctionDTO) (*domain.Auction, error)
	CreatePendingAuction(ctx context.Context, tx pgx.Tx, dto CreateAuctionDTO) (*domain.Auction, error)
	ConvertPendingToProceeding(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*domain.Auction, error)
	GetAuction(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error)
	ListByCategory(ctx context.Context, dto ListAuctionsDTO) (*AuctionPage, error)
	GetDetails(ctx context.Context, auctionID, viewerID uuid.UUID) (*domain.Details, error)
}

type auctionService struct {
	repo     domain.AuctionRepository
	duration time.Duration
	now      func() time.Time
}

// NewAuctionService builds the service; duration is the bidding window opened on start.
func NewAuctionService(repo domain.AuctionRepository, duration time.Duration) AuctionService {
	return &auctionService{
		repo:     repo,
		duration: duration,
		now:      time.Now,
	}
}
