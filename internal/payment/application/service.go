package application

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
)

var log = logger.GetLogger()

// PaymentService settles ended auctions through the payment gateway.
type PaymentService interface {
	GenerateOrderID(ctx context.Context) (string, error)
	ConfirmApproval(ctx context.Context, cmd ApprovalDTO) (*ApprovalResponse, error)
}

type paymentService struct {
	createOrderIDUC *CreateOrderIDUseCase
	approveUC       *ApprovePaymentUseCase
}

func NewPaymentService(createOrderIDUC *CreateOrderIDUseCase, approveUC *ApprovePaymentUseCase) PaymentService {
	return &paymentService{createOrderIDUC: createOrderIDUC, approveUC: approveUC}
}

func (s *paymentService) GenerateOrderID(ctx context.Context) (string, error) {
	return s.createOrderIDUC.Execute(ctx)
}

func (s *paymentService) ConfirmApproval(ctx context.Context, cmd ApprovalDTO) (*ApprovalResponse, error) {
	return s.approveUC.Execute(ctx, cmd)
}
