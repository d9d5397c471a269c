package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	auctiondomain "github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/cristianortiz/auctionMarket/internal/bid/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	userdomain "github.com/cristianortiz/auctionMarket/internal/user/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PlaceBidDTO is the input of PlaceBidUseCase.
type PlaceBidDTO struct {
	AuctionID uuid.UUID
	BidderID  uuid.UUID
	Amount    int64
}

// BidNotifier is told about every committed bid. Optional.
type BidNotifier interface {
	BidPlaced(ctx context.Context, auctionID uuid.UUID)
}

// PlaceBidUseCase validates a bid against its auction and creates or adjusts
// the bidder's single bid row.
type PlaceBidUseCase struct {
	transactor db.Transactor
	bidRepo    domain.BidRepository
	userRepo   userdomain.UserRepository
	auctionSvc auctionapp.AuctionService
	notifier   BidNotifier
	now        func() time.Time
}

func NewPlaceBidUseCase(
	transactor db.Transactor,
	bidRepo domain.BidRepository,
	userRepo userdomain.UserRepository,
	auctionSvc auctionapp.AuctionService,
) *PlaceBidUseCase {
	return &PlaceBidUseCase{
		transactor: transactor,
		bidRepo:    bidRepo,
		userRepo:   userRepo,
		auctionSvc: auctionSvc,
		now:        time.Now,
	}
}

// SetNotifier wires the live feed after construction, the feed itself depends on the bid service.
func (uc *PlaceBidUseCase) SetNotifier(n BidNotifier) {
	uc.notifier = n
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	log.Info("Executing PlaceBidUseCase",
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.String("bidderID", cmd.BidderID.String()),
		zap.Int64("amount", cmd.Amount),
	)

	if _, err := uc.userRepo.GetByID(ctx, cmd.BidderID); err != nil {
		return nil, fmt.Errorf("place bid use case: bidder %s: %w", cmd.BidderID, err)
	}

	auction, err := uc.auctionSvc.GetAuction(ctx, cmd.AuctionID)
	if err != nil {
		if !errors.Is(err, auctiondomain.ErrAuctionNotFound) {
			log.Error("PlaceBidUseCase: failed to get auction",
				zap.String("auctionID", cmd.AuctionID.String()), zap.Error(err))
		}
		return nil, fmt.Errorf("place bid use case: %w", err)
	}

	if err := uc.validate(auction, cmd); err != nil {
		log.Warn("PlaceBidUseCase: bid rejected",
			zap.String("auctionID", cmd.AuctionID.String()),
			zap.String("bidderID", cmd.BidderID.String()),
			zap.Int64("amount", cmd.Amount),
			zap.Error(err),
		)
		return nil, err
	}

	var bid *domain.Bid
	err = uc.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		bid, txErr = uc.createOrAdjust(ctx, tx, cmd)
		return txErr
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			log.Error("PlaceBidUseCase: failed to persist bid",
				zap.String("auctionID", cmd.AuctionID.String()),
				zap.String("bidderID", cmd.BidderID.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("place bid use case: %w", err)
	}

	log.Info("Bid placed",
		zap.String("auctionID", bid.AuctionID.String()),
		zap.String("bidID", bid.ID.String()),
		zap.Int64("amount", bid.Amount),
		zap.Int("remainingCount", bid.Count),
	)
	if uc.notifier != nil {
		uc.notifier.BidPlaced(ctx, bid.AuctionID)
	}
	return bid, nil
}

// validate applies the auction rules in order, first failure wins.
func (uc *PlaceBidUseCase) validate(auction *auctiondomain.Auction, cmd PlaceBidDTO) error {
	if auction.IsOwner(cmd.BidderID) {
		return domain.ErrBidByOwner
	}
	if !auction.IsBiddable(uc.now()) {
		return auctiondomain.ErrAuctionEnded
	}
	if !auction.IsAboveMinPrice(cmd.Amount) {
		return domain.ErrBidBelowMinPrice
	}
	return nil
}

func (uc *PlaceBidUseCase) createOrAdjust(ctx context.Context, tx pgx.Tx, cmd PlaceBidDTO) (*domain.Bid, error) {
	existing, err := uc.bidRepo.FindForUpdate(ctx, tx, cmd.AuctionID, cmd.BidderID)
	if err != nil {
		return nil, fmt.Errorf("find bid: %w", err)
	}

	if existing == nil {
		bid := domain.NewBid(cmd.AuctionID, cmd.BidderID, cmd.Amount)
		inserted, err := uc.bidRepo.InsertIfAbsent(ctx, tx, bid)
		if err != nil {
			return nil, fmt.Errorf("insert bid: %w", err)
		}
		if inserted {
			return bid, nil
		}
		// a concurrent first bid of the same bidder committed, adjust that row instead
		existing, err = uc.bidRepo.FindForUpdate(ctx, tx, cmd.AuctionID, cmd.BidderID)
		if err != nil {
			return nil, fmt.Errorf("find bid after conflict: %w", err)
		}
		if existing == nil {
			return nil, errors.New("bid row vanished after insert conflict")
		}
	}

	if err := existing.AdjustAmount(cmd.Amount); err != nil {
		return nil, err
	}
	if err := uc.bidRepo.Update(ctx, tx, existing); err != nil {
		return nil, fmt.Errorf("update bid: %w", err)
	}
	return existing, nil
}
