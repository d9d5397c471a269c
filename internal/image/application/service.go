package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/auctionMarket/internal/image/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var log = logger.GetLogger()

// maxParallelUploads bounds concurrent calls into the blob store per request.
const maxParallelUploads = 4

type ImageService interface {
	// UploadImages returns the paths that did get uploaded even when it fails,
	// so the caller can clean them up.
	UploadImages(ctx context.Context, uploads []domain.Upload) ([]string, error)
	SaveProductImages(ctx context.Context, productID uuid.UUID, paths []string) ([]*domain.Image, error)
	DeleteUploadedImages(ctx context.Context, paths []string) error
}

type imageService struct {
	store      domain.Store
	repo       domain.ImageRepository
	transactor db.Transactor
}

func NewImageService(store domain.Store, repo domain.ImageRepository, transactor db.Transactor) ImageService {
	return &imageService{store: store, repo: repo, transactor: transactor}
}

func (s *imageService) UploadImages(ctx context.Context, uploads []domain.Upload) ([]string, error) {
	paths := make([]string, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, up := range uploads {
		g.Go(func() error {
			p, err := s.store.Upload(gctx, up.Data, up.Filename)
			if err != nil {
				return fmt.Errorf("upload %s: %w", up.Filename, err)
			}
			paths[i] = p
			return nil
		})
	}
	err := g.Wait()

	uploaded := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			uploaded = append(uploaded, p)
		}
	}
	if err != nil {
		log.Error("UploadImages: upload failed",
			zap.Int("requested", len(uploads)), zap.Int("uploaded", len(uploaded)), zap.Error(err))
		return uploaded, apperr.Wrap(domain.CodeImageUploadFailed, err)
	}
	return uploaded, nil
}

func (s *imageService) SaveProductImages(ctx context.Context, productID uuid.UUID, paths []string) ([]*domain.Image, error) {
	images := make([]*domain.Image, 0, len(paths))
	for i, p := range paths {
		images = append(images, &domain.Image{ID: uuid.New(), ProductID: productID, CDNPath: p, Position: i})
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.repo.SaveAll(ctx, tx, images)
	})
	if err != nil {
		log.Error("SaveProductImages: failed to save images",
			zap.String("productID", productID.String()), zap.Error(err))
		return nil, apperr.Wrap(domain.CodeImageSaveFailed, err)
	}
	return images, nil
}

// DeleteUploadedImages tries every path and reports all failures together.
func (s *imageService) DeleteUploadedImages(ctx context.Context, paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", p, err))
		}
	}
	if len(errs) > 0 {
		return apperr.Wrap(domain.CodeImageDeleteFailed, errors.Join(errs...))
	}
	return nil
}
