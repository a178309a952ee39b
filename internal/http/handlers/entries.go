package handlers

import (
	"net/http"

	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/ledger"
	"github.com/hongminglow/budget-be/internal/models/dto"
)

// EntryHandler serves /api/entries.
type EntryHandler struct {
	ledger *ledger.Service
	guard  Middleware
}

// NewEntryHandler constructs the handler.
func NewEntryHandler(l *ledger.Service, guard Middleware) *EntryHandler {
	return &EntryHandler{ledger: l, guard: guard}
}

// Register attaches entry routes to the mux.
func (h *EntryHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/entries", protected(h.guard, h.handleList))
	mux.Handle("POST /api/entries", protected(h.guard, h.handleCreate))
	mux.Handle("GET /api/entries/{id}", protected(h.guard, h.handleGet))
	mux.Handle("PUT /api/entries/{id}", protected(h.guard, h.handleUpdate))
	mux.Handle("DELETE /api/entries/{id}", protected(h.guard, h.handleDelete))
}

func (h *EntryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	rng, err := dateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.ledger.List(r.Context(), id.UserID, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", entries)
}

func (h *EntryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.ledger.Create(r.Context(), id.UserID, req.Input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Entry created successfully", dto.EntryResponse{Entry: entry})
}

func (h *EntryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	entry, err := h.ledger.Get(r.Context(), id.UserID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", entry)
}

func (h *EntryHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.ledger.Update(r.Context(), id.UserID, r.PathValue("id"), req.Input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Entry updated successfully", dto.EntryResponse{Entry: entry})
}

func (h *EntryHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.ledger.Delete(r.Context(), id.UserID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Entry deleted successfully", nil)
}
