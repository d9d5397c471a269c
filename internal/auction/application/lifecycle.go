package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CreateAuctionDTO carries what an auction copies from its product.
type CreateAuctionDTO struct {
	ProductID uuid.UUID
	SellerID  uuid.UUID
	MinPrice  int64
}

// CreateProceedingAuction opens bidding right away.
func (s *auctionService) CreateProceedingAuction(ctx context.Context, tx pgx.Tx, dto CreateAuctionDTO) (*domain.Auction, error) {
	auction := domain.NewProceedingAuction(dto.ProductID, dto.SellerID, dto.MinPrice, s.now().Add(s.duration))
	if err := s.repo.Create(ctx, tx, auction); err != nil {
		return nil, fmt.Errorf("create proceeding auction for product %s: %w", dto.ProductID, err)
	}
	log.Info("Auction created", zap.String("auctionID", auction.ID.String()),
		zap.String("productID", dto.ProductID.String()), zap.String("status", string(auction.Status)))
	return auction, nil
}

// CreatePendingAuction holds a pre-ordered product until it is started.
func (s *auctionService) CreatePendingAuction(ctx context.Context, tx pgx.Tx, dto CreateAuctionDTO) (*domain.Auction, error) {
	auction := domain.NewPendingAuction(dto.ProductID, dto.SellerID, dto.MinPrice)
	if err := s.repo.Create(ctx, tx, auction); err != nil {
		return nil, fmt.Errorf("create pending auction for product %s: %w", dto.ProductID, err)
	}
	log.Info("Auction created", zap.String("auctionID", auction.ID.String()),
		zap.String("productID", dto.ProductID.String()), zap.String("status", string(auction.Status)))
	return auction, nil
}

// ConvertPendingToProceeding starts the auction of productID inside tx.
func (s *auctionService) ConvertPendingToProceeding(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (*domain.Auction, error) {
	auction, err := s.repo.GetByProductIDForUpdate(ctx, tx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrAuctionNotFound) {
			log.Error("ConvertPendingToProceeding: failed to load auction",
				zap.String("productID", productID.String()), zap.Error(err))
		}
		return nil, fmt.Errorf("convert auction of product %s: %w", productID, err)
	}

	if err := auction.ConvertToProceeding(s.now().Add(s.duration)); err != nil {
		return nil, fmt.Errorf("convert auction %s: %w", auction.ID, err)
	}

	if err := s.repo.UpdateStatus(ctx, tx, auction); err != nil {
		log.Error("ConvertPendingToProceeding: failed to save auction",
			zap.String("auctionID", auction.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("convert auction %s: %w", auction.ID, err)
	}

	log.Info("Auction started",
		zap.String("auctionID", auction.ID.String()),
		zap.String("productID", productID.String()),
		zap.Time("endTime", auction.EndTime),
	)
	return auction, nil
}

func (s *auctionService) GetAuction(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	auction, err := s.repo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return auction, nil
}
