package application

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/bid/domain"
	"github.com/google/uuid"
)

// BidService exposes the bid use cases to the transport layer.
type BidService interface {
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error)
	CountParticipants(ctx context.Context, auctionID uuid.UUID) (int, error)
}

type bidService struct {
	placeBidUC *PlaceBidUseCase
	bidRepo    domain.BidRepository
}

func NewBidService(placeBidUC *PlaceBidUseCase, bidRepo domain.BidRepository) BidService {
	return &bidService{placeBidUC: placeBidUC, bidRepo: bidRepo}
}

func (s *bidService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	return s.placeBidUC.Execute(ctx, cmd)
}

func (s *bidService) CountParticipants(ctx context.Context, auctionID uuid.UUID) (int, error) {
	return s.bidRepo.CountByAuction(ctx, auctionID)
}
