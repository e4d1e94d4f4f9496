package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goexplore-backend/internal/logging"
	"github.com/AnshRaj112/goexplore-backend/internal/services"
)

type SessionRequest struct {
	Email string `json:"email"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// IssueSession signs a session token for the given email and sets it as the token cookie.
func (h *Handler) IssueSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email required")
		return
	}

	token, err := h.Sessions.Issue(req.Email)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to sign session token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	http.SetCookie(w, h.Sessions.Cookie(token))
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Logout clears the cookie. A token that is still valid is also revoked so a copied
// cookie stops working.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(services.SessionCookieName); err == nil && cookie.Value != "" {
		ctx, cancel := withTimeout(r)
		defer cancel()
		if err := h.Sessions.Revoke(ctx, cookie.Value); err != nil {
			logging.FromContext(r.Context()).Warn("failed to revoke session", "error", err)
		}
	}

	http.SetCookie(w, h.Sessions.ClearCookie())
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
