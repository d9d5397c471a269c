package websocket

import (
	"time"

	"github.com/google/uuid"
)

// MessageType defines ws type message
type MessageType string

const (
	MessageTypeClientBid           MessageType = "client_bid"            // client places or adjusts a bid
	MessageTypeServerAuctionUpdate MessageType = "server_auction_update" // server pushes auction state
	MessageTypeServerError         MessageType = "server_error"          // server reports a failed client message
)

// BaseMessage carries the Type every frame is dispatched on.
type BaseMessage struct {
	Type MessageType `json:"type"`
}

type ClientBidMessage struct {
	BaseMessage
	Payload struct {
		AuctionID uuid.UUID `json:"auction_id"`
		Amount    int64     `json:"amount"`
	} `json:"payload"`
}

type AuctionUpdatePayload struct {
	AuctionID        uuid.UUID  `json:"auction_id"`
	Status           string     `json:"status"`
	ParticipantCount int        `json:"participant_count"`
	EndTime          *time.Time `json:"end_time,omitempty"`
}

type ServerAuctionUpdateMessage struct {
	BaseMessage
	Payload AuctionUpdatePayload `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	} `json:"payload"`
}
