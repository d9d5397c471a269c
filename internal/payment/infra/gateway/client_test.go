package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/payments/confirm", func(w http.ResponseWriter, r *http.Request) {
		// base64("test_sk:")
		if r.Header.Get("Authorization") != "Basic dGVzdF9zazo=" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body confirmBody
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		if body.PaymentKey == "declined" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"REJECT_CARD_PAYMENT","message":"card declined"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(paymentBody{
			OrderID: body.OrderID, PaymentKey: body.PaymentKey, TotalAmount: body.Amount,
			Method: "카드", Status: "DONE",
		})
	})
	mux.HandleFunc("GET /v1/payments/orders/{orderID}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("orderID") {
		case "used":
			_ = json.NewEncoder(w).Encode(paymentBody{OrderID: "used", Status: "DONE"})
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	s.server = httptest.NewServer(mux)
	s.client = NewClient(s.server.URL+"/", "test_sk", time.Second)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) TestConfirmPayment() {
	c, err := s.client.ConfirmPayment(context.Background(), domain.ConfirmRequest{
		OrderID: "order-1", PaymentKey: "pk-1", Amount: 15000,
	})

	s.Require().NoError(err)
	s.Equal(&domain.Confirmation{
		OrderID: "order-1", PaymentKey: "pk-1", TotalAmount: 15000, Method: "카드", Status: "DONE",
	}, c)
}

func (s *ClientTestSuite) TestConfirmPaymentRejected() {
	_, err := s.client.ConfirmPayment(context.Background(), domain.ConfirmRequest{
		OrderID: "order-1", PaymentKey: "declined", Amount: 15000,
	})

	var statusErr *StatusCodeError
	s.Require().True(errors.As(err, &statusErr))
	s.Equal(http.StatusBadRequest, statusErr.Code)
	s.Equal("card declined", statusErr.Message)
}

func (s *ClientTestSuite) TestConfirmPaymentWrongKey() {
	client := NewClient(s.server.URL, "other", time.Second)

	_, err := client.ConfirmPayment(context.Background(), domain.ConfirmRequest{OrderID: "order-1", PaymentKey: "pk"})

	var statusErr *StatusCodeError
	s.Require().True(errors.As(err, &statusErr))
	s.Equal(http.StatusUnauthorized, statusErr.Code)
}

func (s *ClientTestSuite) TestIsValidOrderID() {
	cases := []struct {
		name    string
		orderID string
		want    bool
		wantErr bool
	}{
		{name: "unknown order", orderID: "fresh", want: true},
		{name: "existing order", orderID: "used", want: false},
		{name: "provider error", orderID: "broken", wantErr: true},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			got, err := s.client.IsValidOrderID(context.Background(), tc.orderID)
			if tc.wantErr {
				var statusErr *StatusCodeError
				s.True(errors.As(err, &statusErr))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.want, got)
		})
	}
}

func (s *ClientTestSuite) TestContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.client.IsValidOrderID(ctx, "fresh")

	s.ErrorIs(err, context.Canceled)
}
