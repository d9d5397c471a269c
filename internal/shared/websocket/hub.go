package websocket

import (
	"context"
	"net"
	"time"

	"github.com/cristianortiz/auctionMarket/internal/shared/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer  = 16
	queueBuffer = 256
)

// Conn is the part of *websocket.Conn the pumps use.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	RemoteAddr() net.Addr
	Close() error
}

// Hub groups clients in one room per auction and fans messages out to them.
// All room state is owned by the Run goroutine.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	// InboundMessages is consumed by module specific handlers.
	InboundMessages chan *ClientMessage
}

// Client is one websocket connection watching one auction.
type Client struct {
	Hub  *Hub
	Conn Conn
	// Buffered channel of outbound messages.
	Send      chan []byte
	AuctionID uuid.UUID
	// UserID is uuid.Nil for anonymous watchers.
	UserID     uuid.UUID
	ID         string
	remoteAddr string
}

// Message targets a whole room, or a single client when Client is set.
type Message struct {
	AuctionID uuid.UUID
	Client    *Client
	Data      []byte
}

// ClientMessage pairs an inbound frame with the client that sent it.
type ClientMessage struct {
	Client *Client
	Data   []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:           make(map[uuid.UUID]map[*Client]bool),
		broadcast:       make(chan *Message, queueBuffer),
		register:        make(chan *Client, queueBuffer),
		unregister:      make(chan *Client, queueBuffer),
		InboundMessages: make(chan *ClientMessage, queueBuffer),
	}
}

func NewClient(hub *Hub, conn Conn, auctionID, userID uuid.UUID) *Client {
	c := &Client{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
		AuctionID: auctionID,
		UserID:    userID,
		ID:        uuid.NewString(),
	}
	if conn != nil && conn.RemoteAddr() != nil {
		c.remoteAddr = conn.RemoteAddr().String()
	}
	return c
}

// Run owns the rooms until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	log.Info("Websocket hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info("Websocket hub shutting down", zap.Int("rooms", len(h.rooms)))
			for _, clients := range h.rooms {
				for client := range clients {
					close(client.Send)
				}
			}
			h.rooms = make(map[uuid.UUID]map[*Client]bool)
			return nil

		case client := <-h.register:
			room, ok := h.rooms[client.AuctionID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.AuctionID] = room
			}
			room[client] = true
			log.Info("Client registered",
				zap.String("clientID", client.ID),
				zap.String("auctionID", client.AuctionID.String()),
				zap.String("remoteAddr", client.remoteAddr),
				zap.Int("roomSize", len(room)),
			)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			room, ok := h.rooms[message.AuctionID]
			if !ok {
				continue
			}
			if message.Client != nil {
				if room[message.Client] {
					h.deliver(message.Client, message.Data)
				}
				continue
			}
			log.Debug("Broadcasting message to auction",
				zap.String("auctionID", message.AuctionID.String()),
				zap.Int("clients", len(room)),
			)
			for client := range room {
				h.deliver(client, message.Data)
			}
		}
	}
}

func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		log.Warn("Client send buffer full, dropping client",
			zap.String("clientID", client.ID),
			zap.String("auctionID", client.AuctionID.String()),
		)
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	room, ok := h.rooms[client.AuctionID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	close(client.Send)
	log.Info("Client unregistered",
		zap.String("clientID", client.ID),
		zap.String("auctionID", client.AuctionID.String()),
		zap.Int("roomSize", len(room)),
	)
	if len(room) == 0 {
		delete(h.rooms, client.AuctionID)
	}
}

// RegisterClient queues client for its auction room.
func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	default:
		log.Error("Register queue is full, closing client",
			zap.String("clientID", client.ID),
			zap.String("auctionID", client.AuctionID.String()),
		)
		if client.Conn != nil {
			_ = client.Conn.Close()
		}
	}
}

func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	default:
		log.Error("Unregister queue is full",
			zap.String("clientID", client.ID),
			zap.String("auctionID", client.AuctionID.String()),
		)
	}
}

// Broadcast queues data for every client watching auctionID.
func (h *Hub) Broadcast(auctionID uuid.UUID, data []byte) {
	select {
	case h.broadcast <- &Message{AuctionID: auctionID, Data: data}:
	default:
		log.Error("Broadcast queue is full, message dropped", zap.String("auctionID", auctionID.String()))
	}
}

// SendToClient queues data for a single registered client.
func (h *Hub) SendToClient(client *Client, data []byte) {
	select {
	case h.broadcast <- &Message{AuctionID: client.AuctionID, Client: client, Data: data}:
	default:
		log.Error("Broadcast queue is full, message dropped", zap.String("clientID", client.ID))
	}
}

// ReadPump forwards client frames to InboundMessages. Run one per client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.Hub.UnregisterClient(c)
		_ = c.Conn.Close()
		log.Info("ReadPump stopped", zap.String("clientID", c.ID), zap.String("auctionID", c.AuctionID.String()))
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if ctx.Err() != nil {
			return
		}
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("Websocket read error",
					zap.String("clientID", c.ID),
					zap.String("auctionID", c.AuctionID.String()),
					zap.Error(err),
				)
			}
			return
		}

		select {
		case c.Hub.InboundMessages <- &ClientMessage{Client: c, Data: message}:
		default:
			log.Error("Inbound queue is full, dropping message",
				zap.String("clientID", c.ID),
				zap.String("auctionID", c.AuctionID.String()),
			)
		}
	}
}

// WritePump is the only writer of c.Conn. Run one per client.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return

		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn("Failed to write to client",
					zap.String("clientID", c.ID),
					zap.String("auctionID", c.AuctionID.String()),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
