package websocket

import (
	"context"

	"github.com/cristianortiz/auctionMarket/internal/shared/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Feed pushes a server_auction_update to every watcher after a committed bid.
// It implements bidapp.BidNotifier.
type Feed struct {
	handler *AuctionWSHandler
	hub     *websocket.Hub
}

func NewFeed(handler *AuctionWSHandler, hub *websocket.Hub) *Feed {
	return &Feed{handler: handler, hub: hub}
}

func (f *Feed) BidPlaced(ctx context.Context, auctionID uuid.UUID) {
	data, err := f.handler.snapshot(context.WithoutCancel(ctx), auctionID)
	if err != nil {
		log.Warn("Feed: failed to build auction update", zap.String("auctionID", auctionID.String()), zap.Error(err))
		return
	}
	f.hub.Broadcast(auctionID, data)
}
