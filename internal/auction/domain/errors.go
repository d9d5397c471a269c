package domain

import (
	"net/http"

	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
)

var (
	CodeAuctionNotAccessible = apperr.Code{
		Name: "AUCTION_NOT_ACCESSIBLE", Kind: apperr.KindInvalidState,
		Status: http.StatusBadRequest, Message: "auction cannot be viewed",
	}
	CodeAuctionNotFound = apperr.Code{
		Name: "AUCTION_NOT_FOUND", Kind: apperr.KindNotFound,
		Status: http.StatusNotFound, Message: "auction not found",
	}
	CodeAuctionEnded = apperr.Code{
		Name: "AUCTION_ENDED", Kind: apperr.KindInvalidState,
		Status: http.StatusBadRequest, Message: "auction has already ended",
	}
	CodeInvalidAuctionState = apperr.Code{
		Name: "INVALID_AUCTION_STATE", Kind: apperr.KindInvalidState,
		Status: http.StatusBadRequest, Message: "auction state is not valid for this operation",
	}
)

var (
	ErrAuctionNotAccessible = apperr.New(CodeAuctionNotAccessible)
	ErrAuctionNotFound      = apperr.New(CodeAuctionNotFound)
	ErrAuctionEnded         = apperr.New(CodeAuctionEnded)
	ErrInvalidAuctionState  = apperr.New(CodeInvalidAuctionState)
)
