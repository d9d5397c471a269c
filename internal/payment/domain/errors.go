package domain

import (
	"net/http"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
)

var (
	CodeInvalidMethod = apperr.Code{
		Name: "INVALID_METHOD", Kind: apperr.KindExternalFailure,
		Status: http.StatusBadRequest, Message: "payment method is not valid",
	}
	CodeAlreadyExist = apperr.Code{
		Name: "ALREADY_EXIST", Kind: apperr.KindConflict,
		Status: http.StatusInternalServerError, Message: "order id already exists",
	}
	CodeCreationFailure = apperr.Code{
		Name: "CREATION_FAILURE", Kind: apperr.KindInternal,
		Status: http.StatusInternalServerError, Message: "failed to create an order id, please try again",
	}
	CodeGatewayFailure = apperr.Code{
		Name: "PAYMENT_GATEWAY_FAILURE", Kind: apperr.KindExternalFailure,
		Status: http.StatusBadGateway, Message: "payment gateway request failed",
	}
)

var (
	ErrInvalidMethod   = apperr.New(CodeInvalidMethod)
	ErrAlreadyExist    = apperr.New(CodeAlreadyExist)
	ErrCreationFailure = apperr.New(CodeCreationFailure)
	ErrGatewayFailure  = apperr.New(CodeGatewayFailure)
)
