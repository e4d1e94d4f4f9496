package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	experiences, err := h.Experiences.List(ctx)
	if err != nil {
		writeError(w, r, err, "Failed to fetch experiences")
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

func (h *Handler) GetExperience(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	e, err := h.Experiences.Get(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Experience not found")
		return
	}
	if err != nil {
		writeError(w, r, err, "Failed to fetch experience")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var e models.Experience
	if err := decodeJSON(w, r, &e); err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	if e.Title == "" || e.Image == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	e.ID = primitive.NilObjectID
	e.CreatedAt = time.Now()

	ctx, cancel := withTimeout(r)
	defer cancel()

	id, err := h.Experiences.Create(ctx, &e)
	if err != nil {
		writeError(w, r, err, "Failed to add experience")
		return
	}
	writeJSON(w, http.StatusOK, InsertResponse{Success: true, InsertedID: id})
}

// UpdateExperience merges the known fields of the body into the document; _id and
// unknown keys are ignored.
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	var fields map[string]interface{}
	if err := decodeJSON(w, r, &fields); err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	delete(fields, "_id")

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Experiences.Update(ctx, id, fields)
	if err != nil {
		writeError(w, r, err, "Failed to update experience")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Experiences.Delete(ctx, id)
	if err != nil {
		writeError(w, r, err, "Failed to delete experience")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
