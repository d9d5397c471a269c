package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodFromGateway(t *testing.T) {
	tests := map[string]Method{
		"카드":      MethodCard,
		"가상계좌":    MethodVirtualAccount,
		"간편결제":    MethodEasyPayment,
		"휴대폰":     MethodMobile,
		"계좌이체":    MethodAccountTransfer,
		"문화상품권":   MethodCultureGiftCard,
		"도서문화상품권": MethodBookCultureGiftCard,
		"게임문화상품권": MethodGameCultureGiftCard,
		"테스트용":    MethodCash,
		"CARD":    MethodCard,
	}
	for in, want := range tests {
		got, err := MethodFromGateway(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := MethodFromGateway("bitcoin")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestStatusFromGateway(t *testing.T) {
	assert.Equal(t, StatusApproved, StatusFromGateway("DONE"))
	assert.Equal(t, StatusCanceled, StatusFromGateway("ABORTED"))
	assert.Equal(t, StatusCanceled, StatusFromGateway("PARTIAL_CANCELED"))
	assert.Equal(t, StatusReady, StatusFromGateway("IN_PROGRESS"))
	assert.Equal(t, StatusReady, StatusFromGateway("WAITING_FOR_DEPOSIT"))
}

func TestNewPayment(t *testing.T) {
	payer, auction := uuid.New(), uuid.New()

	p, err := NewPayment(payer, auction, &Confirmation{
		OrderID: "order-1", PaymentKey: "pk-1", TotalAmount: 15000, Method: "카드", Status: "DONE",
	})
	require.NoError(t, err)
	assert.Equal(t, payer, p.PayerID)
	assert.Equal(t, auction, p.AuctionID)
	assert.Equal(t, int64(15000), p.Amount)
	assert.Equal(t, MethodCard, p.Method)
	assert.Equal(t, StatusApproved, p.Status)

	p, err = NewPayment(payer, auction, &Confirmation{OrderID: "order-2", Method: "간편결제"})
	require.NoError(t, err)
	assert.Equal(t, StatusReady, p.Status)

	_, err = NewPayment(payer, auction, &Confirmation{OrderID: "order-3", Method: "?"})
	assert.ErrorIs(t, err, ErrInvalidMethod)
}
