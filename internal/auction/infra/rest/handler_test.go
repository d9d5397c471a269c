package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/auction/application"
	"github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/httpserver"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAuctionService only implements the read side used by the handler.
type mockAuctionService struct {
	application.AuctionService
	mock.Mock
}

func (m *mockAuctionService) ListByCategory(ctx context.Context, dto application.ListAuctionsDTO) (*application.AuctionPage, error) {
	args := m.Called(ctx, dto)
	p, _ := args.Get(0).(*application.AuctionPage)
	return p, args.Error(1)
}

func (m *mockAuctionService) GetDetails(ctx context.Context, auctionID, viewerID uuid.UUID) (*domain.Details, error) {
	args := m.Called(ctx, auctionID, viewerID)
	d, _ := args.Get(0).(*domain.Details)
	return d, args.Error(1)
}

func newApp(svc application.AuctionService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: httpserver.ErrorHandler})
	NewAuctionHandler(svc).RegisterRoutes(app.Group("/api/v1"))
	return app
}

func TestListAuctions(t *testing.T) {
	svc := new(mockAuctionService)
	viewer := uuid.New()
	end := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.On("ListByCategory", mock.Anything, application.ListAuctionsDTO{
		Category: "electronics", Sort: "cheap", Page: 1, Size: 10, ViewerID: viewer,
	}).Return(&application.AuctionPage{
		Items: []*domain.Summary{{AuctionID: uuid.New(), Name: "Camera", MinPrice: 5000, ParticipantCount: 2, EndTime: end}},
		Page:  1, Size: 10, TotalCount: 11,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auctions?category=electronics&sort=cheap&page=1&size=10", nil)
	req.Header.Set(httpserver.HeaderUserID, viewer.String())
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body pageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Camera", body.Items[0].Name)
	assert.Equal(t, 2, body.Items[0].ParticipantCount)
	assert.True(t, end.Equal(*body.Items[0].EndTime))
	assert.Equal(t, 11, body.TotalCount)
}

func TestListAuctionsValidationError(t *testing.T) {
	svc := new(mockAuctionService)
	svc.On("ListByCategory", mock.Anything, mock.Anything).Return(nil, apperr.Validation(`unknown sort "random"`)).Once()

	resp, err := newApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/v1/auctions?category=electronics&sort=random", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuctionDetails(t *testing.T) {
	svc := new(mockAuctionService)
	auctionID := uuid.New()
	svc.On("GetDetails", mock.Anything, auctionID, uuid.Nil).Return(&domain.Details{
		AuctionID: auctionID, Name: "Camera", Status: domain.StatusPending, RemainingBidCount: 3,
	}, nil).Once()

	resp, err := newApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/v1/auctions/"+auctionID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body detailsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, auctionID, body.AuctionID)
	assert.Nil(t, body.EndTime)
	assert.Equal(t, []string{}, body.ImageURLs)
	assert.Equal(t, 3, body.RemainingBidCount)
}

func TestAuctionDetailsNotAccessible(t *testing.T) {
	svc := new(mockAuctionService)
	auctionID := uuid.New()
	svc.On("GetDetails", mock.Anything, auctionID, uuid.Nil).Return(nil, domain.ErrAuctionNotAccessible).Once()

	resp, err := newApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/v1/auctions/"+auctionID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body httpserver.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "AUCTION_NOT_ACCESSIBLE", body.Code)
}

func TestAuctionDetailsBadID(t *testing.T) {
	resp, err := newApp(new(mockAuctionService)).Test(httptest.NewRequest(http.MethodGet, "/api/v1/auctions/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
