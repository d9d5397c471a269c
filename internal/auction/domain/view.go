package domain

import (
	"time"

	"github.com/google/uuid"
)

// SortType orders category listings.
type SortType string

const (
	SortPopularity SortType = "popularity"
	SortExpensive  SortType = "expensive"
	SortCheap      SortType = "cheap"
	SortNewest     SortType = "newest"
)

func ParseSortType(s string) (SortType, bool) {
	switch SortType(s) {
	case SortPopularity, SortExpensive, SortCheap, SortNewest:
		return SortType(s), true
	case "":
		return SortNewest, true
	default:
		return "", false
	}
}

type ListQuery struct {
	Category string
	Sort     SortType
	Page     int
	Size     int
	// ViewerID may be uuid.Nil for anonymous callers.
	ViewerID uuid.UUID
}

// Summary is one row of a category listing.
type Summary struct {
	AuctionID        uuid.UUID
	ProductID        uuid.UUID
	Name             string
	MinPrice         int64
	ImageURL         string
	ParticipantCount int
	IsParticipating  bool
	EndTime          time.Time
	CreatedAt        time.Time
}

// Details is the single auction view.
type Details struct {
	AuctionID         uuid.UUID
	ProductID         uuid.UUID
	SellerID          uuid.UUID
	SellerNickname    string
	Name              string
	Description       string
	Category          string
	MinPrice          int64
	Status            Status
	EndTime           time.Time
	ImageURLs         []string
	ParticipantCount  int
	IsSeller          bool
	IsParticipating   bool
	BidAmount         int64
	RemainingBidCount int
}
