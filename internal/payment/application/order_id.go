package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cristianortiz/auctionMarket/internal/payment/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// orderIDValidator checks an order id against our store and the gateway.
type orderIDValidator struct {
	repo    domain.PaymentRepository
	gateway domain.Gateway
}

// validate returns domain.ErrAlreadyExist when either side already knows orderID.
func (v orderIDValidator) validate(ctx context.Context, orderID string) error {
	exists, err := v.repo.ExistsByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("check order id %s: %w", orderID, err)
	}
	if exists {
		return domain.ErrAlreadyExist
	}

	valid, err := v.gateway.IsValidOrderID(ctx, orderID)
	if err != nil {
		return apperr.Wrap(domain.CodeGatewayFailure, err)
	}
	if !valid {
		return domain.ErrAlreadyExist
	}
	return nil
}

// RetryPolicy bounds order id generation.
type RetryPolicy struct {
	MaxAttempts uint64
	Delay       time.Duration
}

// CreateOrderIDUseCase generates a fresh order id, retrying on collisions.
type CreateOrderIDUseCase struct {
	validator orderIDValidator
	policy    RetryPolicy
	newID     func() string
}

func NewCreateOrderIDUseCase(repo domain.PaymentRepository, gateway domain.Gateway, policy RetryPolicy) *CreateOrderIDUseCase {
	if policy.MaxAttempts == 0 {
		policy.MaxAttempts = 1
	}
	return &CreateOrderIDUseCase{
		validator: orderIDValidator{repo: repo, gateway: gateway},
		policy:    policy,
		newID:     uuid.NewString,
	}
}

// Execute returns domain.ErrCreationFailure once every attempt collided.
// Any other failure stops the retries right away.
func (uc *CreateOrderIDUseCase) Execute(ctx context.Context) (string, error) {
	var orderID string
	attempt := 0

	op := func() error {
		attempt++
		candidate := uc.newID()
		if err := uc.validator.validate(ctx, candidate); err != nil {
			if errors.Is(err, domain.ErrAlreadyExist) {
				return err
			}
			return backoff.Permanent(err)
		}
		orderID = candidate
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(uc.policy.Delay), uc.policy.MaxAttempts-1),
		ctx,
	)
	err := backoff.RetryNotify(op, b, func(err error, next time.Duration) {
		log.Warn("CreateOrderIDUseCase: order id collision, retrying",
			zap.Int("attempt", attempt), zap.Duration("next", next), zap.Error(err))
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExist) {
			log.Error("CreateOrderIDUseCase: giving up", zap.Int("attempts", attempt))
			return "", apperr.Wrap(domain.CodeCreationFailure, err)
		}
		return "", fmt.Errorf("create order id: %w", err)
	}

	log.Info("Order id created", zap.String("orderID", orderID), zap.Int("attempts", attempt))
	return orderID, nil
}
