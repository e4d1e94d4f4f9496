package handlers

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 90 * time.Second
	feedPingPeriod = 30 * time.Second
)

// PaymentFeed streams payment events to an admin dashboard over WebSocket. The session
// and admin checks run in middleware before the upgrade.
func (h *Handler) PaymentFeed(w http.ResponseWriter, r *http.Request) {
	if h.Feed == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Payment feed is not configured")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		return
	}
	defer conn.Close()

	log := logging.FromContext(r.Context())
	if h.FeedConnections != nil {
		h.FeedConnections.Inc()
		defer h.FeedConnections.Dec()
	}

	events, unsubscribe := h.Feed.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(feedPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case evt, ok := <-events:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
				if err := conn.WriteJSON(evt); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteWait)); err != nil {
					return
				}
			}
		}
	}()

	// The feed is one-way; reading only drives pong handling and notices the close.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		return nil
	})

	log.Info("payment feed client connected")
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	unsubscribe()
	<-done
	log.Info("payment feed client disconnected")
}
