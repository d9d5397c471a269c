package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCount is how many times a bidder may change a bid after placing it.
const DefaultCount = 3

// Bid is a bidder's single live offer on one auction.
type Bid struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	BidderID  uuid.UUID
	Amount    int64
	Count     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBid(auctionID, bidderID uuid.UUID, amount int64) *Bid {
	return &Bid{
		ID:        uuid.New(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		Count:     DefaultCount,
	}
}

// AdjustAmount replaces the amount and spends one adjustment.
// The new amount is not compared with the previous one.
func (b *Bid) AdjustAmount(amount int64) error {
	if b.Count <= 0 {
		return ErrBidLimitExceeded
	}
	b.Amount = amount
	b.Count--
	return nil
}
