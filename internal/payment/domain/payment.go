package domain

import (
	"fmt"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/google/uuid"
)

type Status string

const (
	StatusReady    Status = "READY"
	StatusCanceled Status = "CANCELED"
	StatusApproved Status = "APPROVED"
	StatusPayed    Status = "PAYED"
)

// StatusFromGateway maps the gateway's payment status onto ours. Unknown or
// in-flight statuses stay READY.
func StatusFromGateway(s string) Status {
	switch s {
	case "DONE", string(StatusApproved):
		return StatusApproved
	case "CANCELED", "PARTIAL_CANCELED", "ABORTED", "EXPIRED":
		return StatusCanceled
	case string(StatusPayed):
		return StatusPayed
	default:
		return StatusReady
	}
}

type Method string

const (
	MethodCard                Method = "CARD"
	MethodVirtualAccount      Method = "VIRTUAL_ACCOUNT"
	MethodEasyPayment         Method = "EASY_PAYMENT"
	MethodMobile              Method = "MOBILE"
	MethodAccountTransfer     Method = "ACCOUNT_TRANSFER"
	MethodCultureGiftCard     Method = "CULTURE_GIFT_CARD"
	MethodBookCultureGiftCard Method = "BOOK_CULTURE_GIFT_CARD"
	MethodGameCultureGiftCard Method = "GAME_CULTURE_GIFT_CARD"
	MethodCash                Method = "CASH"
)

// gatewayMethods is the gateway's localized method vocabulary.
var gatewayMethods = map[string]Method{
	"카드":      MethodCard,
	"가상계좌":    MethodVirtualAccount,
	"간편결제":    MethodEasyPayment,
	"휴대폰":     MethodMobile,
	"계좌이체":    MethodAccountTransfer,
	"문화상품권":   MethodCultureGiftCard,
	"도서문화상품권": MethodBookCultureGiftCard,
	"게임문화상품권": MethodGameCultureGiftCard,
	"테스트용":    MethodCash,
}

// MethodFromGateway accepts either the gateway description or our own enum name.
func MethodFromGateway(s string) (Method, error) {
	if m, ok := gatewayMethods[s]; ok {
		return m, nil
	}
	for _, m := range gatewayMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", apperr.Wrap(CodeInvalidMethod, fmt.Errorf("unknown payment method %q", s))
}

// Confirmation is what the gateway returns for an approved payment.
type Confirmation struct {
	OrderID     string
	PaymentKey  string
	TotalAmount int64
	Method      string
	Status      string
}

type Payment struct {
	ID         uuid.UUID
	PayerID    uuid.UUID
	AuctionID  uuid.UUID
	Amount     int64
	Method     Method
	Status     Status
	OrderID    string
	PaymentKey string
	CreatedAt  time.Time
}

// NewPayment records a gateway confirmation against an auction.
func NewPayment(payerID, auctionID uuid.UUID, c *Confirmation) (*Payment, error) {
	method, err := MethodFromGateway(c.Method)
	if err != nil {
		return nil, err
	}
	status := StatusReady
	if c.Status != "" {
		status = StatusFromGateway(c.Status)
	}
	return &Payment{
		ID:         uuid.New(),
		PayerID:    payerID,
		AuctionID:  auctionID,
		Amount:     c.TotalAmount,
		Method:     method,
		Status:     status,
		OrderID:    c.OrderID,
		PaymentKey: c.PaymentKey,
	}, nil
}
