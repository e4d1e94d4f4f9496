package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"github.com/go-chi/chi/v5"
)

type UserRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PhotoURL     string `json:"photoURL"`
	CoverImage   string `json:"coverImage"`
	ProfileImage string `json:"profileImage"`
}

func (req UserRequest) user(verified bool) *models.User {
	return &models.User{
		Email:         req.Email,
		Name:          req.Name,
		PhotoURL:      req.PhotoURL,
		CoverImage:    req.CoverImage,
		ProfileImage:  req.ProfileImage,
		Role:          models.RoleUser,
		EmailVerified: verified,
		CreatedAt:     time.Now(),
	}
}

type UserUpdateResponse struct {
	Message       string               `json:"message"`
	UpdatedFields models.ProfileImages `json:"updatedFields"`
}

type VerifyResponse struct {
	Message string              `json:"message"`
	Result  models.UpdateResult `json:"result"`
}

type RoleResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	user, err := h.Users.FindByEmail(ctx, chi.URLParam(r, "email"))
	if errors.Is(err, common.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		writeError(w, r, err, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser registers a first-party account. A second signup with the same email is
// answered with a message and inserts nothing.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	id, created, err := h.Users.CreateIfAbsent(ctx, req.user(false))
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"message": "User already exists"})
		return
	}
	writeJSON(w, http.StatusOK, InsertResponse{Success: true, InsertedID: id})
}

// UpsertGoogleUser creates a social-login account or refreshes the existing one.
func (h *Handler) UpsertGoogleUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	id, created, err := h.Users.UpsertFederated(ctx, req.user(true))
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Google user updated"})
		return
	}
	writeJSON(w, http.StatusOK, InsertResponse{Success: true, InsertedID: id})
}

func (h *Handler) UpdateUserImages(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid user ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	var images models.ProfileImages
	if err := decodeJSON(w, r, &images); err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if images.Empty() {
		writeMessage(w, http.StatusBadRequest, "Nothing updated")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Users.UpdateImages(ctx, id, images)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if res.ModifiedCount == 0 {
		writeMessage(w, http.StatusBadRequest, "Nothing updated")
		return
	}
	writeJSON(w, http.StatusOK, UserUpdateResponse{Message: "User updated successfully", UpdatedFields: images})
}

func (h *Handler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Users.MarkVerified(ctx, req.Email)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if res.MatchedCount == 0 {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{Message: "User verified", Result: res})
}

func (h *Handler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid user ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	var req struct {
		Role models.Role `json:"role"`
	}
	if err := decodeJSON(w, r, &req); err != nil || !req.Role.Valid() {
		writeMessage(w, http.StatusBadRequest, "Invalid role value")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Users.SetRole(ctx, id, req.Role)
	if err != nil {
		writeError(w, r, err, "Failed to update role")
		return
	}
	if res.MatchedCount == 0 {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, RoleResponse{
		Success:       true,
		Message:       "User role updated successfully",
		ModifiedCount: res.ModifiedCount,
	})
}
