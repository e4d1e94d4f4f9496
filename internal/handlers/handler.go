// Package handlers implements the HTTP endpoints. Handlers validate input, bound each
// datastore call with a timeout and translate the error taxonomy into status codes.
package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goexplore-backend/internal/services"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps are owned by main and shared by every request. Uploader, Feed and
// FeedConnections may be nil when the backing service is not configured.
type Deps struct {
	Sessions    *services.SessionManager
	Users       services.UserStore
	Catalog     *services.CatalogService
	Purchases   services.PurchaseStore
	Bookmarks   services.BookmarkStore
	Reviews     *services.ReviewService
	Payments    *services.PaymentService
	Experiences services.ExperienceStore
	Uploader    services.ImageUploader
	Feed        *services.PaymentFeed

	FeedConnections prometheus.Gauge
	AllowedOrigins  []string
}

type Handler struct {
	Deps
	upgrader websocket.Upgrader
}

func New(deps Deps) *Handler {
	h := &Handler{Deps: deps}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin admits browsers from the CORS allow-list and non-browser clients that
// send no Origin header.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Root answers the plain-text liveness probe on "/".
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Server side is running...."))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
