package gateway

import (
	"context"
	"sync"

	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
)

// sandboxMethod is the gateway's label for test-mode payments.
const sandboxMethod = "테스트용"

// Sandbox is an in-memory gateway for local runs. Every confirmation succeeds
// and repeated confirmations of one order id return the first result.
type Sandbox struct {
	mu     sync.RWMutex
	orders map[string]*domain.Confirmation
}

func NewSandbox() *Sandbox {
	return &Sandbox{orders: make(map[string]*domain.Confirmation)}
}

func (s *Sandbox) ConfirmPayment(ctx context.Context, req domain.ConfirmRequest) (*domain.Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.orders[req.OrderID]; ok {
		cp := *c
		return &cp, nil
	}
	c := &domain.Confirmation{
		OrderID:     req.OrderID,
		PaymentKey:  req.PaymentKey,
		TotalAmount: req.Amount,
		Method:      sandboxMethod,
		Status:      "DONE",
	}
	s.orders[req.OrderID] = c
	cp := *c
	return &cp, nil
}

func (s *Sandbox) IsValidOrderID(ctx context.Context, orderID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, seen := s.orders[orderID]
	return !seen, nil
}
