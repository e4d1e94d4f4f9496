package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
)

type BookmarkRequest struct {
	UserEmail    string `json:"userEmail"`
	PackageID    string `json:"packageId"`
	PackageTitle string `json:"packageTitle"`
	PackageImage string `json:"packageImage"`
}

func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	bookmarks, err := h.Bookmarks.ListByEmail(ctx, email)
	if err != nil {
		writeError(w, r, err, "Failed to fetch bookmarks")
		return
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

func (h *Handler) ListAllBookmarks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	bookmarks, err := h.Bookmarks.ListAll(ctx)
	if err != nil {
		writeError(w, r, err, "Failed to fetch bookmarks")
		return
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

func (h *Handler) CheckBookmark(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := withTimeout(r)
	defer cancel()

	exists, err := h.Bookmarks.Exists(ctx, q.Get("email"), q.Get("packageId"))
	if err != nil {
		writeError(w, r, err, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
}

func (h *Handler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req BookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if err := naturalKeyMissing(req.UserEmail, req.PackageID); err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	id, err := h.Bookmarks.Create(ctx, &models.Bookmark{
		UserEmail:    req.UserEmail,
		PackageID:    req.PackageID,
		PackageTitle: req.PackageTitle,
		PackageImage: req.PackageImage,
		CreatedAt:    time.Now(),
	})
	if errors.Is(err, common.ErrConflict) {
		writeMessage(w, http.StatusConflict, "Already bookmarked")
		return
	}
	if err != nil {
		writeError(w, r, err, "Failed to add bookmark")
		return
	}
	writeJSON(w, http.StatusOK, InsertResponse{Success: true, InsertedID: id})
}

func (h *Handler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Bookmarks.Delete(ctx, id)
	if err != nil {
		writeError(w, r, err, "Failed to delete bookmark")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
