package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	auctiondomain "github.com/cristianortiz/auctionMarket/internal/auction/domain"
	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	suite.Suite
	repo       *mockPaymentRepository
	gateway    *mockGateway
	transactor *countingTransactor
	auction    *auctiondomain.Auction
	createUC   *CreateOrderIDUseCase
	svc        PaymentService
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.repo = new(mockPaymentRepository)
	s.gateway = new(mockGateway)
	s.transactor = &countingTransactor{}
	s.auction = auctiondomain.NewProceedingAuction(uuid.New(), uuid.New(), 3000, time.Now().Add(-time.Minute))

	s.createUC = NewCreateOrderIDUseCase(s.repo, s.gateway, RetryPolicy{MaxAttempts: 5})
	approveUC := NewApprovePaymentUseCase(s.transactor, s.repo, s.gateway,
		&stubAuctionService{auction: s.auction}, time.Second)
	s.svc = NewPaymentService(s.createUC, approveUC)
}

func (s *PaymentServiceSuite) TestGenerateOrderIDFirstTry() {
	s.repo.On("ExistsByOrderID", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	s.gateway.On("IsValidOrderID", mock.Anything, mock.AnythingOfType("string")).Return(true, nil).Once()

	id, err := s.svc.GenerateOrderID(context.Background())

	s.Require().NoError(err)
	_, parseErr := uuid.Parse(id)
	s.NoError(parseErr)
	s.repo.AssertExpectations(s.T())
	s.gateway.AssertExpectations(s.T())
}

func (s *PaymentServiceSuite) TestGenerateOrderIDRetriesOnCollision() {
	ids := []string{"taken-locally", "taken-remotely", "fresh"}
	n := 0
	s.createUC.newID = func() string {
		id := ids[n]
		n++
		return id
	}
	s.repo.On("ExistsByOrderID", mock.Anything, "taken-locally").Return(true, nil).Once()
	s.repo.On("ExistsByOrderID", mock.Anything, "taken-remotely").Return(false, nil).Once()
	s.repo.On("ExistsByOrderID", mock.Anything, "fresh").Return(false, nil).Once()
	s.gateway.On("IsValidOrderID", mock.Anything, "taken-remotely").Return(false, nil).Once()
	s.gateway.On("IsValidOrderID", mock.Anything, "fresh").Return(true, nil).Once()

	id, err := s.svc.GenerateOrderID(context.Background())

	s.Require().NoError(err)
	s.Equal("fresh", id)
	s.gateway.AssertNotCalled(s.T(), "IsValidOrderID", mock.Anything, "taken-locally")
}

func (s *PaymentServiceSuite) TestGenerateOrderIDGivesUpAfterMaxAttempts() {
	s.repo.On("ExistsByOrderID", mock.Anything, mock.Anything).Return(false, nil)
	s.gateway.On("IsValidOrderID", mock.Anything, mock.Anything).Return(false, nil)

	_, err := s.svc.GenerateOrderID(context.Background())

	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrCreationFailure))
	s.gateway.AssertNumberOfCalls(s.T(), "IsValidOrderID", 5)
}

func (s *PaymentServiceSuite) TestGenerateOrderIDStopsOnRepositoryError() {
	s.repo.On("ExistsByOrderID", mock.Anything, mock.Anything).Return(false, fmt.Errorf("connection reset")).Once()

	_, err := s.svc.GenerateOrderID(context.Background())

	s.Require().Error(err)
	s.False(errors.Is(err, domain.ErrCreationFailure))
	s.repo.AssertNumberOfCalls(s.T(), "ExistsByOrderID", 1)
	s.gateway.AssertNotCalled(s.T(), "IsValidOrderID", mock.Anything, mock.Anything)
}

func (s *PaymentServiceSuite) TestGenerateOrderIDStopsOnGatewayError() {
	s.repo.On("ExistsByOrderID", mock.Anything, mock.Anything).Return(false, nil).Once()
	s.gateway.On("IsValidOrderID", mock.Anything, mock.Anything).Return(false, fmt.Errorf("timeout")).Once()

	_, err := s.svc.GenerateOrderID(context.Background())

	s.True(errors.Is(err, domain.ErrGatewayFailure))
}

func (s *PaymentServiceSuite) TestGenerateOrderIDReturnsUniqueIDs() {
	s.repo.On("ExistsByOrderID", mock.Anything, mock.Anything).Return(false, nil)
	s.gateway.On("IsValidOrderID", mock.Anything, mock.Anything).Return(true, nil)

	seen := make(map[string]struct{})
	for range 50 {
		id, err := s.svc.GenerateOrderID(context.Background())
		s.Require().NoError(err)
		_, dup := seen[id]
		s.False(dup, "duplicate order id %s", id)
		seen[id] = struct{}{}
	}
}

func (s *PaymentServiceSuite) approval() ApprovalDTO {
	return ApprovalDTO{OrderID: "order-1", PaymentKey: "pk-1", Amount: 15000, AuctionID: s.auction.ID}
}

func (s *PaymentServiceSuite) TestConfirmApprovalSavesPayment() {
	s.repo.On("ExistsByOrderID", mock.Anything, "order-1").Return(false, nil).Once()
	s.gateway.On("IsValidOrderID", mock.Anything, "order-1").Return(true, nil).Once()
	s.gateway.On("ConfirmPayment", mock.Anything, domain.ConfirmRequest{OrderID: "order-1", PaymentKey: "pk-1", Amount: 15000}).
		Return(&domain.Confirmation{OrderID: "order-1", PaymentKey: "pk-1", TotalAmount: 15000, Method: "카드", Status: "DONE"}, nil).Once()
	s.repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.PayerID == s.auction.SellerID && p.AuctionID == s.auction.ID && p.OrderID == "order-1"
	})).Return(nil).Once()

	resp, err := s.svc.ConfirmApproval(context.Background(), s.approval())

	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, resp.Status)
	s.Equal(domain.MethodCard, resp.Method)
	s.Equal(int64(15000), resp.Amount)
	s.Equal(1, s.transactor.calls)
	s.repo.AssertExpectations(s.T())
}

func (s *PaymentServiceSuite) TestConfirmApprovalRejectsUsedOrderID() {
	s.repo.On("ExistsByOrderID", mock.Anything, "order-1").Return(true, nil).Once()

	_, err := s.svc.ConfirmApproval(context.Background(), s.approval())

	s.True(errors.Is(err, domain.ErrAlreadyExist))
	s.gateway.AssertNotCalled(s.T(), "ConfirmPayment", mock.Anything, mock.Anything)
	s.Zero(s.transactor.calls)
}

func (s *PaymentServiceSuite) TestConfirmApprovalGatewayFailure() {
	s.repo.On("ExistsByOrderID", mock.Anything, "order-1").Return(false, nil).Once()
	s.gateway.On("IsValidOrderID", mock.Anything, "order-1").Return(true, nil).Once()
	s.gateway.On("ConfirmPayment", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("card declined")).Once()

	_, err := s.svc.ConfirmApproval(context.Background(), s.approval())

	s.True(errors.Is(err, domain.ErrGatewayFailure))
	s.Equal(apperr.KindExternalFailure, apperr.KindOf(err))
	s.Zero(s.transactor.calls)
}

func (s *PaymentServiceSuite) TestConfirmApprovalDuplicateInsert() {
	s.repo.On("ExistsByOrderID", mock.Anything, "order-1").Return(false, nil).Once()
	s.gateway.On("IsValidOrderID", mock.Anything, "order-1").Return(true, nil).Once()
	s.gateway.On("ConfirmPayment", mock.Anything, mock.Anything).
		Return(&domain.Confirmation{OrderID: "order-1", PaymentKey: "pk-1", TotalAmount: 15000, Method: "카드", Status: "DONE"}, nil).Once()
	dup := db.ConvertErr(&pgconn.PgError{Code: "23505", ConstraintName: "uq_payments_order_id"})
	s.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(dup).Once()

	_, err := s.svc.ConfirmApproval(context.Background(), s.approval())

	s.True(errors.Is(err, domain.ErrAlreadyExist))
}

func (s *PaymentServiceSuite) TestConfirmApprovalValidatesInput() {
	_, err := s.svc.ConfirmApproval(context.Background(), ApprovalDTO{OrderID: "order-1", AuctionID: s.auction.ID})

	s.Equal(apperr.KindValidationFailed, apperr.KindOf(err))
	s.repo.AssertNotCalled(s.T(), "ExistsByOrderID", mock.Anything, mock.Anything)
}
