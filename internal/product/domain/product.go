package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPreRegistered Status = "PRE_REGISTERED"
	StatusInAuction     Status = "IN_AUCTION"
	StatusSold          Status = "SOLD"
	StatusCancelled     Status = "CANCELLED"
)

type Category string

const (
	CategoryElectronics          Category = "ELECTRONICS"
	CategoryHomeAppliances       Category = "HOME_APPLIANCES"
	CategoryFashionAndClothing   Category = "FASHION_AND_CLOTHING"
	CategoryFurnitureAndInterior Category = "FURNITURE_AND_INTERIOR"
	CategoryBooksAndMedia        Category = "BOOKS_AND_MEDIA"
	CategorySportsAndLeisure     Category = "SPORTS_AND_LEISURE"
	CategoryToysAndHobbies       Category = "TOYS_AND_HOBBIES"
	CategoryOther                Category = "OTHER"
)

var Categories = []Category{
	CategoryElectronics,
	CategoryHomeAppliances,
	CategoryFashionAndClothing,
	CategoryFurnitureAndInterior,
	CategoryBooksAndMedia,
	CategorySportsAndLeisure,
	CategoryToysAndHobbies,
	CategoryOther,
}

// ParseCategory accepts the category name in any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", apperr.Validation(fmt.Sprintf("unknown category %q", s))
}

const PriceUnit = 1000

// ValidateMinPrice enforces a positive multiple of PriceUnit.
func ValidateMinPrice(minPrice int64) error {
	if minPrice <= 0 || minPrice%PriceUnit != 0 {
		return apperr.Validation(fmt.Sprintf("min price must be a positive multiple of %d", PriceUnit))
	}
	return nil
}

type Product struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Category    Category
	MinPrice    int64
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct builds a product in the given initial status.
func NewProduct(ownerID uuid.UUID, name, description string, category Category, minPrice int64, status Status) (*Product, error) {
	if err := ValidateMinPrice(minPrice); err != nil {
		return nil, err
	}
	if status != StatusPreRegistered && status != StatusInAuction {
		return nil, fmt.Errorf("new product: %w", ErrInvalidProductState)
	}
	return &Product{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Category:    category,
		MinPrice:    minPrice,
		Status:      status,
	}, nil
}

// ConvertToAuction moves a pre-registered product into auction.
func (p *Product) ConvertToAuction() error {
	if p.Status != StatusPreRegistered {
		return ErrInvalidProductState
	}
	p.Status = StatusInAuction
	return nil
}

func (p *Product) ConvertToSold() error {
	if p.Status != StatusInAuction {
		return ErrInvalidProductState
	}
	p.Status = StatusSold
	return nil
}

func (p *Product) IsOwner(userID uuid.UUID) bool {
	return p.OwnerID == userID
}
