package rest

import (
	"github.com/cristianortiz/auctionMarket/internal/bid/application"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/httpserver"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type placeBidRequest struct {
	AuctionID uuid.UUID `json:"auctionId"`
	Amount    int64     `json:"amount"`
}

type bidResponse struct {
	BidID          uuid.UUID `json:"bidId"`
	AuctionID      uuid.UUID `json:"auctionId"`
	Amount         int64     `json:"amount"`
	RemainingCount int       `json:"remainingCount"`
}

type BidHandler struct {
	svc application.BidService
}

func NewBidHandler(svc application.BidService) *BidHandler {
	return &BidHandler{svc: svc}
}

func (h *BidHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/bids", h.placeBid)
}

func (h *BidHandler) placeBid(c *fiber.Ctx) error {
	bidderID, err := httpserver.CallerID(c)
	if err != nil {
		return err
	}
	var req placeBidRequest
	if err := httpserver.BindJSON(c, &req); err != nil {
		return err
	}
	if req.AuctionID == uuid.Nil {
		return apperr.Validation("auctionId is required")
	}

	bid, err := h.svc.PlaceBid(c.UserContext(), application.PlaceBidDTO{
		AuctionID: req.AuctionID,
		BidderID:  bidderID,
		Amount:    req.Amount,
	})
	if err != nil {
		return err
	}
	return c.JSON(bidResponse{
		BidID:          bid.ID,
		AuctionID:      bid.AuctionID,
		Amount:         bid.Amount,
		RemainingCount: bid.Count,
	})
}
