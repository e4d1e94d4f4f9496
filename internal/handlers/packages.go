package handlers

import (
	"errors"
	"net/http"

	"github.com/AnshRaj112/goexplore-backend/internal/common"
	"github.com/AnshRaj112/goexplore-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	packages, err := h.Catalog.List(ctx)
	if err != nil {
		writeError(w, r, err, "Failed to fetch packages")
		return
	}
	writeJSON(w, http.StatusOK, packages)
}

func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	p, err := h.Catalog.Get(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Package not found")
		return
	}
	if err != nil {
		writeError(w, r, err, "Failed to fetch package")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var p models.Package
	if err := decodeJSON(w, r, &p); err != nil || p.Title == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid package data")
		return
	}
	p.ID = primitive.NilObjectID

	ctx, cancel := withTimeout(r)
	defer cancel()

	id, err := h.Catalog.Create(ctx, &p)
	if err != nil {
		writeError(w, r, err, "Failed to create package")
		return
	}
	writeJSON(w, http.StatusOK, InsertResponse{Success: true, InsertedID: id})
}

// UpdatePackage overwrites the catalog fields of a package.
func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	var p models.Package
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Catalog.Update(ctx, id, &p)
	if err != nil {
		writeError(w, r, err, "Failed to update package")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := objectID(r, "id", "Invalid ID")
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	res, err := h.Catalog.Delete(ctx, id)
	if err != nil {
		writeError(w, r, err, "Failed to delete package")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
