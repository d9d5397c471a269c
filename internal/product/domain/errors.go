package domain

import (
	"net/http"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
)

var (
	CodeProductNotFound = apperr.Code{
		Name: "PRODUCT_NOT_FOUND", Kind: apperr.KindNotFound,
		Status: http.StatusNotFound, Message: "product not found",
	}
	CodeProductRegisterFailed = apperr.Code{
		Name: "PRODUCT_REGISTER_FAILED", Kind: apperr.KindInternal,
		Status: http.StatusBadRequest, Message: "product registration failed",
	}
	CodeInvalidProductState = apperr.Code{
		Name: "INVALID_PRODUCT_STATE", Kind: apperr.KindInvalidState,
		Status: http.StatusBadRequest, Message: "product state is not valid for this operation",
	}
	CodeNotProductOwner = apperr.Code{
		Name: "NOT_PRODUCT_OWNER", Kind: apperr.KindForbidden,
		Status: http.StatusForbidden, Message: "only the owner can start this product's auction",
	}
)

var (
	ErrProductNotFound     = apperr.New(CodeProductNotFound)
	ErrInvalidProductState = apperr.New(CodeInvalidProductState)
	ErrNotProductOwner     = apperr.New(CodeNotProductOwner)
)
