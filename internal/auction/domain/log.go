package domain

import (
	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

func zapAuction(a *Auction) []zap.Field {
	return []zap.Field{
		zap.String("auctionID", a.ID.String()),
		zap.String("productID", a.ProductID.String()),
		zap.String("status", string(a.Status)),
	}
}
