package domain

import (
	"net/http"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
)

var (
	CodeBidBelowMinPrice = apperr.Code{
		Name: "BID_BELOW_MIN_PRICE", Kind: apperr.KindValidationFailed,
		Status: http.StatusBadRequest, Message: "bid amount is below the minimum price",
	}
	CodeBidLimitExceeded = apperr.Code{
		Name: "BID_LIMIT_EXCEEDED", Kind: apperr.KindLimitExceeded,
		Status: http.StatusBadRequest, Message: "bid count limit exceeded, no more bids allowed",
	}
	CodeBidByOwner = apperr.Code{
		Name: "BID_BY_OWNER", Kind: apperr.KindForbidden,
		Status: http.StatusForbidden, Message: "the seller cannot bid on their own auction",
	}
)

var (
	ErrBidBelowMinPrice = apperr.New(CodeBidBelowMinPrice)
	ErrBidLimitExceeded = apperr.New(CodeBidLimitExceeded)
	ErrBidByOwner       = apperr.New(CodeBidByOwner)
)
