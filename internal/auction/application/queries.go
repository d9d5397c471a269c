package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/auctionMarket/internal/auction/domain"
	productdomain "github.com/cristianortiz/auctionMarket/internal/product/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps page*size far from overflowing the OFFSET.
	MaxPage = 10_000
)

type ListAuctionsDTO struct {
	Category string
	Sort     string
	Page     int
	Size     int
	ViewerID uuid.UUID
}

type AuctionPage struct {
	Items      []*domain.Summary
	Page       int
	Size       int
	TotalCount int
}

// ListByCategory lists proceeding auctions of one category.
func (s *auctionService) ListByCategory(ctx context.Context, dto ListAuctionsDTO) (*AuctionPage, error) {
	category, err := productdomain.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	sort, ok := domain.ParseSortType(dto.Sort)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("unknown sort %q", dto.Sort))
	}
	if dto.Page < 0 {
		return nil, apperr.Validation("page must not be negative")
	}
	if dto.Page > MaxPage {
		return nil, apperr.Validation(fmt.Sprintf("page must not exceed %d", MaxPage))
	}
	size := dto.Size
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	items, total, err := s.repo.ListByCategory(ctx, domain.ListQuery{
		Category: string(category),
		Sort:     sort,
		Page:     dto.Page,
		Size:     size,
		ViewerID: dto.ViewerID,
	})
	if err != nil {
		return nil, fmt.Errorf("list auctions by category %s: %w", category, err)
	}
	return &AuctionPage{Items: items, Page: dto.Page, Size: size, TotalCount: total}, nil
}

// GetDetails only exposes auctions that are proceeding or already ended.
func (s *auctionService) GetDetails(ctx context.Context, auctionID, viewerID uuid.UUID) (*domain.Details, error) {
	details, err := s.repo.GetDetails(ctx, auctionID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get auction details %s: %w", auctionID, err)
	}
	if details.Status != domain.StatusProceeding && details.Status != domain.StatusEnded {
		return nil, domain.ErrAuctionNotAccessible
	}
	return details, nil
}
