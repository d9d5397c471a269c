package domain

import (
	"context"
	"net/http"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID
	Nickname string
	Email    string
}

var CodeUserNotFound = apperr.Code{
	Name:    "USER_NOT_FOUND",
	Kind:    apperr.KindNotFound,
	Status:  http.StatusNotFound,
	Message: "user not found",
}

var ErrUserNotFound = apperr.New(CodeUserNotFound)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
