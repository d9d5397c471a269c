package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	routeConfirm = "/v1/payments/confirm"
	routeOrder   = "/v1/payments/orders/"
)

type confirmBody struct {
	OrderID    string `json:"orderId"`
	PaymentKey string `json:"paymentKey"`
	Amount     int64  `json:"amount"`
}

type paymentBody struct {
	OrderID     string `json:"orderId"`
	PaymentKey  string `json:"paymentKey"`
	TotalAmount int64  `json:"totalAmount"`
	Method      string `json:"method"`
	Status      string `json:"status"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client talks to the payment provider's REST API.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient authenticates with HTTP Basic, secretKey as user and an empty password.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	token := base64.StdEncoding.EncodeToString([]byte(secretKey + ":"))
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Basic " + token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) ConfirmPayment(ctx context.Context, req domain.ConfirmRequest) (*domain.Confirmation, error) {
	payload, err := json.Marshal(confirmBody{OrderID: req.OrderID, PaymentKey: req.PaymentKey, Amount: req.Amount})
	if err != nil {
		return nil, fmt.Errorf("encode confirm request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, routeConfirm, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var body paymentBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode confirm response: %w", err)
	}
	log.Info("Gateway confirmed payment",
		zap.String("orderID", body.OrderID),
		zap.String("status", body.Status),
		zap.Int64("totalAmount", body.TotalAmount),
	)
	return &domain.Confirmation{
		OrderID:     body.OrderID,
		PaymentKey:  body.PaymentKey,
		TotalAmount: body.TotalAmount,
		Method:      body.Method,
		Status:      body.Status,
	}, nil
}

// IsValidOrderID asks the provider for the order; a 404 means the id is unused.
func (c *Client) IsValidOrderID(ctx context.Context, orderID string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, routeOrder+url.PathEscape(orderID), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return true, nil
	case http.StatusOK:
		return false, nil
	default:
		return false, statusError(resp)
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(raw) > 0 && json.Unmarshal(raw, &body) != nil {
		body.Message = strings.TrimSpace(string(raw))
	}
	log.Warn("Gateway returned an error",
		zap.Int("status", resp.StatusCode),
		zap.String("code", body.Code),
		zap.String("message", body.Message),
	)
	return NewStatusCodeError(resp.StatusCode, body.Message)
}
