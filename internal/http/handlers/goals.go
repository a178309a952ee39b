package handlers

import (
	"net/http"

	"github.com/hongminglow/budget-be/internal/goals"
	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/models/dto"
)

// GoalHandler serves /api/goals.
type GoalHandler struct {
	goals *goals.Service
	guard Middleware
}

// NewGoalHandler constructs the handler.
func NewGoalHandler(g *goals.Service, guard Middleware) *GoalHandler {
	return &GoalHandler{goals: g, guard: guard}
}

// Register attaches goal routes to the mux.
func (h *GoalHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/goals", protected(h.guard, h.handleList))
	mux.Handle("POST /api/goals", protected(h.guard, h.handleCreate))
	mux.Handle("GET /api/goals/{id}", protected(h.guard, h.handleGet))
	mux.Handle("PUT /api/goals/{id}", protected(h.guard, h.handleUpdate))
	mux.Handle("DELETE /api/goals/{id}", protected(h.guard, h.handleDelete))
}

func (h *GoalHandler) handleList(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	list, err := h.goals.List(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", list)
}

func (h *GoalHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.CreateGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	goal, err := h.goals.Create(r.Context(), id.UserID, req.Input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "Goal created successfully", dto.GoalResponse{Goal: goal})
}

func (h *GoalHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	goal, err := h.goals.Get(r.Context(), id.UserID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", goal)
}

func (h *GoalHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	goal, err := h.goals.Update(r.Context(), id.UserID, r.PathValue("id"), req.Input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Goal updated successfully", dto.GoalResponse{Goal: goal})
}

func (h *GoalHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.goals.Delete(r.Context(), id.UserID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Goal deleted successfully", nil)
}
