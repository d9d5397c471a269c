package application

import (
	"context"
	"errors"
	"fmt"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	auctiondomain "github.com/cristianortiz/auctionMarket/internal/auction/domain"
	imageapp "github.com/cristianortiz/auctionMarket/internal/image/application"
	imagedomain "github.com/cristianortiz/auctionMarket/internal/image/domain"
	"github.com/cristianortiz/auctionMarket/internal/product/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/cristianortiz/auctionMarket/internal/shared/validation"
	userdomain "github.com/cristianortiz/auctionMarket/internal/user/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Mode selects the initial product and auction states.
type Mode int

const (
	ModeDirectAuction Mode = iota
	ModePreOrder
)

// RegisterProductDTO is the input of both registration flows.
type RegisterProductDTO struct {
	OwnerID     uuid.UUID            `validate:"required"`
	Name        string               `validate:"required,min=2"`
	Description string               `validate:"max=1000"`
	Category    string               `validate:"required"`
	MinPrice    int64                `validate:"thousand_multiple"`
	Images      []imagedomain.Upload `validate:"min=1,max=5"`
}

type RegisterResponse struct {
	ProductID uuid.UUID
	AuctionID uuid.UUID
	Status    domain.Status
	Message   string
}

// RegisterProductUseCase creates a product and its auction in one transaction,
// then attaches images outside of it.
type RegisterProductUseCase struct {
	transactor  db.Transactor
	productRepo domain.ProductRepository
	userRepo    userdomain.UserRepository
	auctionSvc  auctionapp.AuctionService
	imageSvc    imageapp.ImageService
}

func NewRegisterProductUseCase(
	transactor db.Transactor,
	productRepo domain.ProductRepository,
	userRepo userdomain.UserRepository,
	auctionSvc auctionapp.AuctionService,
	imageSvc imageapp.ImageService,
) *RegisterProductUseCase {
	return &RegisterProductUseCase{
		transactor:  transactor,
		productRepo: productRepo,
		userRepo:    userRepo,
		auctionSvc:  auctionSvc,
		imageSvc:    imageSvc,
	}
}

func (uc *RegisterProductUseCase) Execute(ctx context.Context, cmd RegisterProductDTO, mode Mode) (*RegisterResponse, error) {
	log.Info("Executing RegisterProductUseCase",
		zap.String("ownerID", cmd.OwnerID.String()),
		zap.String("name", cmd.Name),
		zap.Int64("minPrice", cmd.MinPrice),
		zap.Bool("preOrder", mode == ModePreOrder),
	)

	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	category, err := domain.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}

	product, auction, err := uc.registerProductAndAuction(ctx, cmd, category, mode)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) || apperr.KindOf(err) == apperr.KindValidationFailed {
			return nil, err
		}
		log.Error("RegisterProductUseCase: product registration failed",
			zap.String("ownerID", cmd.OwnerID.String()),
			zap.Error(err),
		)
		return nil, apperr.Mask(domain.CodeProductRegisterFailed, err)
	}

	if err := uc.attachImages(ctx, product.ID, cmd.Images); err != nil {
		return nil, fmt.Errorf("register product %s: %w", product.ID, err)
	}

	message := "product registered for auction"
	if mode == ModePreOrder {
		message = "product pre-registered"
	}
	log.Info("Product registered",
		zap.String("productID", product.ID.String()),
		zap.String("auctionID", auction.ID.String()),
		zap.String("status", string(product.Status)),
	)
	return &RegisterResponse{
		ProductID: product.ID,
		AuctionID: auction.ID,
		Status:    product.Status,
		Message:   message,
	}, nil
}

func (uc *RegisterProductUseCase) registerProductAndAuction(
	ctx context.Context,
	cmd RegisterProductDTO,
	category domain.Category,
	mode Mode,
) (*domain.Product, *auctiondomain.Auction, error) {
	var (
		product *domain.Product
		auction *auctiondomain.Auction
	)
	err := uc.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		owner, err := uc.userRepo.GetByID(ctx, cmd.OwnerID)
		if err != nil {
			return err
		}

		status := domain.StatusInAuction
		if mode == ModePreOrder {
			status = domain.StatusPreRegistered
		}
		product, err = domain.NewProduct(owner.ID, cmd.Name, cmd.Description, category, cmd.MinPrice, status)
		if err != nil {
			return err
		}
		if err := uc.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("save product: %w", err)
		}

		dto := auctionapp.CreateAuctionDTO{ProductID: product.ID, SellerID: owner.ID, MinPrice: product.MinPrice}
		if mode == ModePreOrder {
			auction, err = uc.auctionSvc.CreatePendingAuction(ctx, tx, dto)
		} else {
			auction, err = uc.auctionSvc.CreateProceedingAuction(ctx, tx, dto)
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return product, auction, nil
}

// attachImages uploads and records images. On failure the uploaded blobs are
// removed best effort; product and auction stay committed.
func (uc *RegisterProductUseCase) attachImages(ctx context.Context, productID uuid.UUID, uploads []imagedomain.Upload) error {
	paths, err := uc.imageSvc.UploadImages(ctx, uploads)
	if err == nil {
		_, err = uc.imageSvc.SaveProductImages(ctx, productID, paths)
	}
	if err == nil {
		return nil
	}

	log.Error("RegisterProductUseCase: image stage failed, product kept without images",
		zap.String("productID", productID.String()),
		zap.Int("uploaded", len(paths)),
		zap.Error(err),
	)
	if delErr := uc.imageSvc.DeleteUploadedImages(context.WithoutCancel(ctx), paths); delErr != nil {
		log.Warn("RegisterProductUseCase: failed to clean up uploaded images",
			zap.String("productID", productID.String()),
			zap.Strings("paths", paths),
			zap.Error(delErr),
		)
	}
	return err
}
