package rest

import (
	"time"

	"github.com/cristianortiz/auctionMarket/internal/auction/application"
	"github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/httpserver"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type summaryResponse struct {
	AuctionID        uuid.UUID  `json:"auctionId"`
	ProductID        uuid.UUID  `json:"productId"`
	Name             string     `json:"name"`
	MinPrice         int64      `json:"minPrice"`
	ImageURL         string     `json:"imageUrl,omitempty"`
	ParticipantCount int        `json:"participantCount"`
	IsParticipating  bool       `json:"isParticipating"`
	EndTime          *time.Time `json:"endTime,omitempty"`
}

type pageResponse struct {
	Items      []summaryResponse `json:"items"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalCount int               `json:"totalCount"`
}

type detailsResponse struct {
	AuctionID         uuid.UUID  `json:"auctionId"`
	ProductID         uuid.UUID  `json:"productId"`
	SellerNickname    string     `json:"sellerNickname"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	MinPrice          int64      `json:"minPrice"`
	Status            string     `json:"status"`
	EndTime           *time.Time `json:"endTime,omitempty"`
	ImageURLs         []string   `json:"imageUrls"`
	ParticipantCount  int        `json:"participantCount"`
	IsSeller          bool       `json:"isSeller"`
	IsParticipating   bool       `json:"isParticipating"`
	BidAmount         int64      `json:"bidAmount"`
	RemainingBidCount int        `json:"remainingBidCount"`
}

type AuctionHandler struct {
	svc application.AuctionService
}

func NewAuctionHandler(svc application.AuctionService) *AuctionHandler {
	return &AuctionHandler{svc: svc}
}

func (h *AuctionHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/auctions")
	g.Get("/", h.list)
	g.Get("/:auctionId", h.details)
}

func (h *AuctionHandler) list(c *fiber.Ctx) error {
	page, err := h.svc.ListByCategory(c.UserContext(), application.ListAuctionsDTO{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     c.QueryInt("page", 0),
		Size:     c.QueryInt("size", application.DefaultPageSize),
		ViewerID: viewerID(c),
	})
	if err != nil {
		return err
	}

	resp := pageResponse{
		Items:      make([]summaryResponse, 0, len(page.Items)),
		Page:       page.Page,
		Size:       page.Size,
		TotalCount: page.TotalCount,
	}
	for _, s := range page.Items {
		resp.Items = append(resp.Items, summaryResponse{
			AuctionID:        s.AuctionID,
			ProductID:        s.ProductID,
			Name:             s.Name,
			MinPrice:         s.MinPrice,
			ImageURL:         s.ImageURL,
			ParticipantCount: s.ParticipantCount,
			IsParticipating:  s.IsParticipating,
			EndTime:          optionalTime(s.EndTime),
		})
	}
	return c.JSON(resp)
}

func (h *AuctionHandler) details(c *fiber.Ctx) error {
	auctionID, err := httpserver.PathUUID(c, "auctionId")
	if err != nil {
		return err
	}
	d, err := h.svc.GetDetails(c.UserContext(), auctionID, viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(toDetailsResponse(d))
}

func toDetailsResponse(d *domain.Details) detailsResponse {
	images := d.ImageURLs
	if images == nil {
		images = []string{}
	}
	return detailsResponse{
		AuctionID:         d.AuctionID,
		ProductID:         d.ProductID,
		SellerNickname:    d.SellerNickname,
		Name:              d.Name,
		Description:       d.Description,
		Category:          d.Category,
		MinPrice:          d.MinPrice,
		Status:            string(d.Status),
		EndTime:           optionalTime(d.EndTime),
		ImageURLs:         images,
		ParticipantCount:  d.ParticipantCount,
		IsSeller:          d.IsSeller,
		IsParticipating:   d.IsParticipating,
		BidAmount:         d.BidAmount,
		RemainingBidCount: d.RemainingBidCount,
	}
}

// viewerID is optional on read routes; anonymous callers get uuid.Nil.
func viewerID(c *fiber.Ctx) uuid.UUID {
	id, err := httpserver.CallerID(c)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
