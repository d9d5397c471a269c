package application

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/google/uuid"
)

var log = logger.GetLogger()

// ProductService is the product lifecycle manager exposed to the transport layer.
type ProductService interface {
	RegisterDirectAuction(ctx context.Context, cmd RegisterProductDTO) (*RegisterResponse, error)
	RegisterPreOrder(ctx context.Context, cmd RegisterProductDTO) (*RegisterResponse, error)
	ConvertToAuction(ctx context.Context, productID, callerID uuid.UUID) (*ConvertResponse, error)
}

type productService struct {
	registerUC *RegisterProductUseCase
	convertUC  *ConvertToAuctionUseCase
}

func NewProductService(registerUC *RegisterProductUseCase, convertUC *ConvertToAuctionUseCase) ProductService {
	return &productService{registerUC: registerUC, convertUC: convertUC}
}

func (s *productService) RegisterDirectAuction(ctx context.Context, cmd RegisterProductDTO) (*RegisterResponse, error) {
	return s.registerUC.Execute(ctx, cmd, ModeDirectAuction)
}

func (s *productService) RegisterPreOrder(ctx context.Context, cmd RegisterProductDTO) (*RegisterResponse, error) {
	return s.registerUC.Execute(ctx, cmd, ModePreOrder)
}

func (s *productService) ConvertToAuction(ctx context.Context, productID, callerID uuid.UUID) (*ConvertResponse, error) {
	return s.convertUC.Execute(ctx, productID, callerID)
}
