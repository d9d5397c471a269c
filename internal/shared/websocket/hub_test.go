package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

// receiveEventually re-broadcasts until registration has been processed.
func receiveEventually(t *testing.T, hub *Hub, c *Client, auctionID uuid.UUID) []byte {
	t.Helper()
	var got []byte
	require.Eventually(t, func() bool {
		hub.Broadcast(auctionID, []byte("ping"))
		select {
		case got = <-c.Send:
			return true
		case <-time.After(10 * time.Millisecond):
			return false
		}
	}, time.Second, 5*time.Millisecond)
	return got
}

func TestHubBroadcastsPerAuction(t *testing.T) {
	hub := startHub(t)
	auctionA, auctionB := uuid.New(), uuid.New()

	watcherA := NewClient(hub, nil, auctionA, uuid.Nil)
	watcherB := NewClient(hub, nil, auctionB, uuid.Nil)
	hub.RegisterClient(watcherA)
	hub.RegisterClient(watcherB)

	assert.Equal(t, []byte("ping"), receiveEventually(t, hub, watcherA, auctionA))
	receiveEventually(t, hub, watcherB, auctionB)
	for len(watcherA.Send) > 0 {
		<-watcherA.Send
	}

	hub.Broadcast(auctionB, []byte("only b"))
	assert.Equal(t, []byte("only b"), <-watcherB.Send)
	select {
	case msg := <-watcherA.Send:
		t.Fatalf("auction A watcher received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubSendToClient(t *testing.T) {
	hub := startHub(t)
	auctionID := uuid.New()

	first := NewClient(hub, nil, auctionID, uuid.New())
	second := NewClient(hub, nil, auctionID, uuid.New())
	hub.RegisterClient(first)
	hub.RegisterClient(second)
	receiveEventually(t, hub, first, auctionID)
	receiveEventually(t, hub, second, auctionID)
	for len(first.Send) > 0 {
		<-first.Send
	}
	for len(second.Send) > 0 {
		<-second.Send
	}

	hub.SendToClient(first, []byte("private"))
	assert.Equal(t, []byte("private"), <-first.Send)
	select {
	case <-second.Send:
		t.Fatal("direct message leaked to another client")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	auctionID := uuid.New()
	c := NewClient(hub, nil, auctionID, uuid.Nil)
	hub.RegisterClient(c)
	receiveEventually(t, hub, c, auctionID)

	hub.UnregisterClient(c)
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-c.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
