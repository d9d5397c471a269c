package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/auction/application"
	bidapp "github.com/cristianortiz/auctionMarket/internal/bid/application"
	biddomain "github.com/cristianortiz/auctionMarket/internal/bid/domain"
	"github.com/cristianortiz/auctionMarket/internal/shared/apperr"
	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/cristianortiz/auctionMarket/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const defaultMessageTimeout = 15 * time.Second

// BidPlacer is the slice of the bid service the socket needs.
type BidPlacer interface {
	PlaceBid(ctx context.Context, cmd bidapp.PlaceBidDTO) (*biddomain.Bid, error)
	CountParticipants(ctx context.Context, auctionID uuid.UUID) (int, error)
}

// AuctionWSHandler serves the per auction live feed and handles inbound frames.
type AuctionWSHandler struct {
	auctionService application.AuctionService
	bids           BidPlacer
	hub            *websocket.Hub
	messageTimeout time.Duration
}

// NewAuctionWSHandler bounds each inbound frame by messageTimeout, falling
// back to 15s when it is not positive.
func NewAuctionWSHandler(auctionService application.AuctionService, bids BidPlacer, hub *websocket.Hub, messageTimeout time.Duration) *AuctionWSHandler {
	if messageTimeout <= 0 {
		messageTimeout = defaultMessageTimeout
	}
	return &AuctionWSHandler{
		auctionService: auctionService,
		bids:           bids,
		hub:            hub,
		messageTimeout: messageTimeout,
	}
}

// RegisterRoutes mounts GET /ws/auctions/:auctionId?userId=.
func (h *AuctionWSHandler) RegisterRoutes(ctx context.Context, r fiber.Router) {
	g := r.Group("/ws")
	g.Use(func(c *fiber.Ctx) error {
		if !fiberws.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	g.Get("/auctions/:auctionId", fiberws.New(func(conn *fiberws.Conn) {
		h.serve(ctx, conn)
	}))
}

func (h *AuctionWSHandler) serve(ctx context.Context, conn *fiberws.Conn) {
	auctionID, err := uuid.Parse(conn.Params("auctionId"))
	if err != nil {
		h.rejectConn(conn, apperr.Validation("invalid auctionId"))
		return
	}
	if _, err := h.auctionService.GetAuction(ctx, auctionID); err != nil {
		h.rejectConn(conn, err)
		return
	}
	userID, _ := uuid.Parse(conn.Query("userId"))

	client := websocket.NewClient(h.hub, conn, auctionID, userID)
	// not registered yet, so nothing else writes to Send
	if data, err := h.snapshot(ctx, auctionID); err == nil {
		client.Send <- data
	}
	h.hub.RegisterClient(client)

	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// ListenForMessages consumes the hub inbound queue until ctx is done.
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) error {
	log.Info("AuctionWSHandler started listening for inbound messages from hub")
	for {
		select {
		case <-ctx.Done():
			log.Info("AuctionWSHandler stopped listening for inbound messages from hub")
			return nil
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

func (h *AuctionWSHandler) processMessage(ctx context.Context, client *websocket.Client, data []byte) {
	ctx, cancel := context.WithTimeout(ctx, h.messageTimeout)
	defer cancel()

	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		h.sendError(client, apperr.Validation("invalid message format"))
		return
	}
	switch base.Type {
	case MessageTypeClientBid:
		h.handleClientBid(ctx, client, data)
	default:
		h.sendError(client, apperr.Validation(fmt.Sprintf("unknown message type %q", base.Type)))
	}
}

// handleClientBid runs the same use case as POST /bids. The update broadcast
// comes from the Feed once the bid is committed.
func (h *AuctionWSHandler) handleClientBid(ctx context.Context, client *websocket.Client, data []byte) {
	var msg ClientBidMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(client, apperr.Validation("invalid bid message format"))
		return
	}
	if client.UserID == uuid.Nil {
		h.sendError(client, apperr.Validation("userId is required to bid"))
		return
	}
	if msg.Payload.AuctionID != client.AuctionID {
		h.sendError(client, apperr.Validation("auction id mismatch"))
		return
	}

	_, err := h.bids.PlaceBid(ctx, bidapp.PlaceBidDTO{
		AuctionID: client.AuctionID,
		BidderID:  client.UserID,
		Amount:    msg.Payload.Amount,
	})
	if err != nil {
		log.Warn("Websocket bid rejected",
			zap.String("clientID", client.ID),
			zap.String("auctionID", client.AuctionID.String()),
			zap.Error(err),
		)
		h.sendError(client, err)
	}
}

func (h *AuctionWSHandler) snapshot(ctx context.Context, auctionID uuid.UUID) ([]byte, error) {
	auction, err := h.auctionService.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	count, err := h.bids.CountParticipants(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	msg := ServerAuctionUpdateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerAuctionUpdate},
		Payload: AuctionUpdatePayload{
			AuctionID:        auction.ID,
			Status:           string(auction.Status),
			ParticipantCount: count,
		},
	}
	if !auction.EndTime.IsZero() {
		end := auction.EndTime
		msg.Payload.EndTime = &end
	}
	return json.Marshal(msg)
}

func (h *AuctionWSHandler) sendError(client *websocket.Client, err error) {
	data, mErr := json.Marshal(errorMessage(err))
	if mErr != nil {
		log.Error("failed to marshal ServerErrorMessage", zap.Error(mErr))
		return
	}
	h.hub.SendToClient(client, data)
}

// rejectConn answers before the client joins a room, then closes.
func (h *AuctionWSHandler) rejectConn(conn *fiberws.Conn, err error) {
	data, mErr := json.Marshal(errorMessage(err))
	if mErr == nil {
		_ = conn.WriteMessage(fiberws.TextMessage, data)
	}
	_ = conn.Close()
}

func errorMessage(err error) ServerErrorMessage {
	msg := ServerErrorMessage{BaseMessage: BaseMessage{Type: MessageTypeServerError}}
	if appErr, ok := apperr.From(err); ok {
		msg.Payload.Code = appErr.Code.Name
		msg.Payload.Error = appErr.Message()
		return msg
	}
	msg.Payload.Code = apperr.Internal.Name
	msg.Payload.Error = apperr.Internal.Message
	return msg
}
