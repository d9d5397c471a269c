package domain

import (
	"context"
	"net/http"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Image struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	CDNPath   string
	// Position is the upload order within the product, starting at 0.
	Position  int
	CreatedAt time.Time
}

// Upload is one file received from a caller.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store is the blob store behind product images.
type Store interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
	Delete(ctx context.Context, path string) error
}

type ImageRepository interface {
	SaveAll(ctx context.Context, tx pgx.Tx, images []*Image) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Image, error)
}

var (
	CodeImageUploadFailed = apperr.Code{
		Name: "IMAGE_UPLOAD_FAILED", Kind: apperr.KindExternalFailure,
		Status: http.StatusInternalServerError, Message: "image upload failed",
	}
	CodeImageDeleteFailed = apperr.Code{
		Name: "IMAGE_DELETE_FAILED", Kind: apperr.KindExternalFailure,
		Status: http.StatusInternalServerError, Message: "image delete failed",
	}
	CodeImageSaveFailed = apperr.Code{
		Name: "IMAGE_SAVE_FAILED", Kind: apperr.KindExternalFailure,
		Status: http.StatusInternalServerError, Message: "image save failed",
	}
)

var (
	ErrImageUploadFailed = apperr.New(CodeImageUploadFailed)
	ErrImageDeleteFailed = apperr.New(CodeImageDeleteFailed)
	ErrImageSaveFailed   = apperr.New(CodeImageSaveFailed)
)
