package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	imagedomain "github.com/cristianortiz/auctionMarket/internal/image/domain"
	"github.com/cristianortiz/auctionMarket/internal/product/application"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/httpserver"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	partRequest = "request"
	partImages  = "images"
)

type registerRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	MinPrice    int64  `json:"minPrice"`
}

type productResponse struct {
	ProductID uuid.UUID `json:"productId"`
	AuctionID uuid.UUID `json:"auctionId"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
}

type ProductHandler struct {
	svc application.ProductService
}

func NewProductHandler(svc application.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/products")
	g.Post("/", h.registerDirectAuction)
	g.Post("/pre-register", h.registerPreOrder)
	g.Post("/:productId/start", h.convertToAuction)
}

func (h *ProductHandler) registerDirectAuction(c *fiber.Ctx) error {
	cmd, err := bindRegister(c)
	if err != nil {
		return err
	}
	resp, err := h.svc.RegisterDirectAuction(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(productResponse{
		ProductID: resp.ProductID, AuctionID: resp.AuctionID, Status: string(resp.Status), Message: resp.Message,
	})
}

func (h *ProductHandler) registerPreOrder(c *fiber.Ctx) error {
	cmd, err := bindRegister(c)
	if err != nil {
		return err
	}
	resp, err := h.svc.RegisterPreOrder(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(productResponse{
		ProductID: resp.ProductID, AuctionID: resp.AuctionID, Status: string(resp.Status), Message: resp.Message,
	})
}

func (h *ProductHandler) convertToAuction(c *fiber.Ctx) error {
	callerID, err := httpserver.CallerID(c)
	if err != nil {
		return err
	}
	productID, err := httpserver.PathUUID(c, "productId")
	if err != nil {
		return err
	}
	resp, err := h.svc.ConvertToAuction(c.UserContext(), productID, callerID)
	if err != nil {
		return err
	}
	return c.JSON(productResponse{
		ProductID: resp.ProductID, AuctionID: resp.AuctionID, Status: string(resp.Status), Message: resp.Message,
	})
}

// bindRegister reads the multipart form: a JSON "request" part and one or more "images" files.
func bindRegister(c *fiber.Ctx) (application.RegisterProductDTO, error) {
	var cmd application.RegisterProductDTO

	ownerID, err := httpserver.CallerID(c)
	if err != nil {
		return cmd, err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return cmd, apperr.Validation("multipart form expected")
	}

	values := form.Value[partRequest]
	if len(values) == 0 {
		return cmd, apperr.Validation("missing request part")
	}
	var req registerRequest
	if err := json.Unmarshal([]byte(values[0]), &req); err != nil {
		return cmd, apperr.Validation("malformed request part")
	}

	uploads := make([]imagedomain.Upload, 0, len(form.File[partImages]))
	for _, fh := range form.File[partImages] {
		upload, err := readUpload(fh)
		if err != nil {
			return cmd, err
		}
		uploads = append(uploads, upload)
	}

	return application.RegisterProductDTO{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		MinPrice:    req.MinPrice,
		Images:      uploads,
	}, nil
}

func readUpload(fh *multipart.FileHeader) (imagedomain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return imagedomain.Upload{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return imagedomain.Upload{}, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return imagedomain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}
