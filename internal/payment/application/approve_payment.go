package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	auctionapp "github.com/cristianortiz/auctionMarket/internal/auction/application"
	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const orderIDConstraint = "uq_payments_order_id"

type ApprovalDTO struct {
	OrderID    string
	PaymentKey string
	Amount     int64
	AuctionID  uuid.UUID
}

type ApprovalResponse struct {
	PaymentID  uuid.UUID
	OrderID    string
	PaymentKey string
	Amount     int64
	Method     domain.Method
	Status     domain.Status
}

// ApprovePaymentUseCase confirms a payment with the gateway and records it.
// The local row is written in its own transaction after the gateway answered.
type ApprovePaymentUseCase struct {
	transactor     db.Transactor
	repo           domain.PaymentRepository
	gateway        domain.Gateway
	auctionSvc     auctionapp.AuctionService
	validator      orderIDValidator
	gatewayTimeout time.Duration
}

func NewApprovePaymentUseCase(
	transactor db.Transactor,
	repo domain.PaymentRepository,
	gateway domain.Gateway,
	auctionSvc auctionapp.AuctionService,
	gatewayTimeout time.Duration,
) *ApprovePaymentUseCase {
	return &ApprovePaymentUseCase{
		transactor:     transactor,
		repo:           repo,
		gateway:        gateway,
		auctionSvc:     auctionSvc,
		validator:      orderIDValidator{repo: repo, gateway: gateway},
		gatewayTimeout: gatewayTimeout,
	}
}

func (uc *ApprovePaymentUseCase) Execute(ctx context.Context, cmd ApprovalDTO) (*ApprovalResponse, error) {
	log.Info("Executing ApprovePaymentUseCase",
		zap.String("orderID", cmd.OrderID),
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.Int64("amount", cmd.Amount),
	)
	if cmd.OrderID == "" || cmd.PaymentKey == "" || cmd.Amount <= 0 {
		return nil, apperr.Validation("orderId, paymentKey and a positive amount are required")
	}

	if err := uc.validator.validate(ctx, cmd.OrderID); err != nil {
		return nil, fmt.Errorf("approve payment: %w", err)
	}

	confirmation, err := uc.confirm(ctx, cmd)
	if err != nil {
		log.Error("ApprovePaymentUseCase: gateway confirmation failed",
			zap.String("orderID", cmd.OrderID), zap.Error(err))
		return nil, fmt.Errorf("approve payment: %w", err)
	}

	auction, err := uc.auctionSvc.GetAuction(ctx, cmd.AuctionID)
	if err != nil {
		log.Error("ApprovePaymentUseCase: payment confirmed for unknown auction",
			zap.String("orderID", cmd.OrderID), zap.String("auctionID", cmd.AuctionID.String()), zap.Error(err))
		return nil, fmt.Errorf("approve payment: %w", err)
	}

	payment, err := domain.NewPayment(auction.SellerID, auction.ID, confirmation)
	if err != nil {
		return nil, fmt.Errorf("approve payment: %w", err)
	}

	err = uc.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return uc.repo.Create(ctx, tx, payment)
	})
	if err != nil {
		if errors.Is(err, db.ErrUniqueViolation) && db.ConstraintName(err) == orderIDConstraint {
			return nil, apperr.Wrap(domain.CodeAlreadyExist, err)
		}
		log.Error("ApprovePaymentUseCase: failed to save payment",
			zap.String("orderID", payment.OrderID), zap.Error(err))
		return nil, fmt.Errorf("approve payment: save payment: %w", err)
	}

	log.Info("Payment approved",
		zap.String("paymentID", payment.ID.String()),
		zap.String("orderID", payment.OrderID),
		zap.String("status", string(payment.Status)),
	)
	return &ApprovalResponse{
		PaymentID:  payment.ID,
		OrderID:    payment.OrderID,
		PaymentKey: payment.PaymentKey,
		Amount:     payment.Amount,
		Method:     payment.Method,
		Status:     payment.Status,
	}, nil
}

func (uc *ApprovePaymentUseCase) confirm(ctx context.Context, cmd ApprovalDTO) (*domain.Confirmation, error) {
	if uc.gatewayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.gatewayTimeout)
		defer cancel()
	}
	confirmation, err := uc.gateway.ConfirmPayment(ctx, domain.ConfirmRequest{
		OrderID:    cmd.OrderID,
		PaymentKey: cmd.PaymentKey,
		Amount:     cmd.Amount,
	})
	if err != nil {
		return nil, apperr.Wrap(domain.CodeGatewayFailure, err)
	}
	return confirmation, nil
}
