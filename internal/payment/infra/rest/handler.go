package rest

import (
	"github.com/cristianortiz/auctionMarket/internal/payment/application"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/httpserver"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type orderIDResponse struct {
	OrderID string `json:"orderId"`
}

type approvalRequest struct {
	OrderID    string    `json:"orderId"`
	PaymentKey string    `json:"paymentKey"`
	Amount     int64     `json:"amount"`
	AuctionID  uuid.UUID `json:"auctionId"`
}

type approvalResponse struct {
	PaymentID uuid.UUID `json:"paymentId"`
	OrderID   string    `json:"orderId"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
}

type PaymentHandler struct {
	svc application.PaymentService
}

func NewPaymentHandler(svc application.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/payments")
	g.Post("/order-id", h.createOrderID)
	g.Post("/approval", h.approve)
}

func (h *PaymentHandler) createOrderID(c *fiber.Ctx) error {
	if _, err := httpserver.CallerID(c); err != nil {
		return err
	}
	orderID, err := h.svc.GenerateOrderID(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(orderIDResponse{OrderID: orderID})
}

func (h *PaymentHandler) approve(c *fiber.Ctx) error {
	if _, err := httpserver.CallerID(c); err != nil {
		return err
	}
	var req approvalRequest
	if err := httpserver.BindJSON(c, &req); err != nil {
		return err
	}
	if req.AuctionID == uuid.Nil {
		return apperr.Validation("auctionId is required")
	}

	resp, err := h.svc.ConfirmApproval(c.UserContext(), application.ApprovalDTO{
		OrderID:    req.OrderID,
		PaymentKey: req.PaymentKey,
		Amount:     req.Amount,
		AuctionID:  req.AuctionID,
	})
	if err != nil {
		return err
	}
	return c.JSON(approvalResponse{
		PaymentID: resp.PaymentID,
		OrderID:   resp.OrderID,
		Amount:    resp.Amount,
		Method:    string(resp.Method),
		Status:    string(resp.Status),
	})
}
