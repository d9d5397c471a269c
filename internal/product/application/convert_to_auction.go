package application

import (
	"context"
	"errors"
	"fmt"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	"github.com/cristianortiz/auctionMarket/internal/product/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConvertResponse struct {
	ProductID uuid.UUID
	AuctionID uuid.UUID
	Status    domain.Status
	Message   string
}

// ConvertToAuctionUseCase starts the auction of a pre-registered product.
// Product and auction are advanced in the same transaction.
type ConvertToAuctionUseCase struct {
	transactor  db.Transactor
	productRepo domain.ProductRepository
	auctionSvc  auctionapp.AuctionService
}

func NewConvertToAuctionUseCase(transactor db.Transactor, productRepo domain.ProductRepository, auctionSvc auctionapp.AuctionService) *ConvertToAuctionUseCase {
	return &ConvertToAuctionUseCase{transactor: transactor, productRepo: productRepo, auctionSvc: auctionSvc}
}

// Execute fails with ErrNotProductOwner unless callerID owns the product.
func (uc *ConvertToAuctionUseCase) Execute(ctx context.Context, productID, callerID uuid.UUID) (*ConvertResponse, error) {
	log.Info("Executing ConvertToAuctionUseCase",
		zap.String("productID", productID.String()), zap.String("callerID", callerID.String()))

	var resp *ConvertResponse
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		product, err := uc.productRepo.GetByIDForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}
		if !product.IsOwner(callerID) {
			return domain.ErrNotProductOwner
		}
		if err := product.ConvertToAuction(); err != nil {
			log.Warn("ConvertToAuctionUseCase: invalid product state",
				zap.String("productID", productID.String()),
				zap.String("status", string(product.Status)),
			)
			return err
		}
		if err := uc.productRepo.UpdateStatus(ctx, tx, product); err != nil {
			return fmt.Errorf("save product: %w", err)
		}

		auction, err := uc.auctionSvc.ConvertPendingToProceeding(ctx, tx, product.ID)
		if err != nil {
			return err
		}

		resp = &ConvertResponse{
			ProductID: product.ID,
			AuctionID: auction.ID,
			Status:    product.Status,
			Message:   "product converted to auction",
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) && !errors.Is(err, domain.ErrInvalidProductState) &&
			!errors.Is(err, domain.ErrNotProductOwner) {
			log.Error("ConvertToAuctionUseCase: conversion failed",
				zap.String("productID", productID.String()), zap.Error(err))
		}
		return nil, fmt.Errorf("convert product %s to auction: %w", productID, err)
	}

	log.Info("Product converted to auction",
		zap.String("productID", resp.ProductID.String()),
		zap.String("auctionID", resp.AuctionID.String()),
	)
	return resp, nil
}
