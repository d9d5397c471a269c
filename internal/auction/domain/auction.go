package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the auction lifecycle state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProceeding Status = "PROCEEDING"
	StatusEnded      Status = "ENDED"
	StatusCancelled  Status = "CANCELLED"
)

type Auction struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	// SellerID is the owner of the auctioned product, read through the product row.
	SellerID uuid.UUID
	// WinnerID stays nil until settlement.
	WinnerID *uuid.UUID
	MinPrice int64
	// EndTime is zero while the auction is pending.
	EndTime   time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProceedingAuction(productID, sellerID uuid.UUID, minPrice int64, endTime time.Time) *Auction {
	return &Auction{
		ID:        uuid.New(),
		ProductID: productID,
		SellerID:  sellerID,
		MinPrice:  minPrice,
		EndTime:   endTime,
		Status:    StatusProceeding,
	}
}

func NewPendingAuction(productID, sellerID uuid.UUID, minPrice int64) *Auction {
	return &Auction{
		ID:        uuid.New(),
		ProductID: productID,
		SellerID:  sellerID,
		MinPrice:  minPrice,
		Status:    StatusPending,
	}
}

// ConvertToProceeding opens bidding on a pending auction until endTime.
func (a *Auction) ConvertToProceeding(endTime time.Time) error {
	if a.Status != StatusPending {
		log.Warn("Attempted to start auction that is not pending",
			zapAuction(a)...,
		)
		return ErrInvalidAuctionState
	}
	a.Status = StatusProceeding
	a.EndTime = endTime
	return nil
}

func (a *Auction) IsProceeding() bool {
	return a.Status == StatusProceeding
}

// IsEnded reports whether the bidding window closed before now.
func (a *Auction) IsEnded(now time.Time) bool {
	return !a.EndTime.IsZero() && now.After(a.EndTime)
}

// IsBiddable is true only while proceeding and inside the bidding window.
func (a *Auction) IsBiddable(now time.Time) bool {
	return a.IsProceeding() && !a.IsEnded(now)
}

func (a *Auction) IsAboveMinPrice(amount int64) bool {
	return amount >= a.MinPrice
}

func (a *Auction) IsOwner(userID uuid.UUID) bool {
	return a.SellerID == userID
}
