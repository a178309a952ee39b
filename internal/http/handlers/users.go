package handlers

import (
	"fmt"
	"net/http"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/models/dto"
	"github.com/hongminglow/budget-be/internal/money"
	"github.com/hongminglow/budget-be/internal/users"
)

// UserHandler serves /api/users.
type UserHandler struct {
	users *users.Service
	guard Middleware
}

// NewUserHandler constructs the handler.
func NewUserHandler(svc *users.Service, guard Middleware) *UserHandler {
	return &UserHandler{users: svc, guard: guard}
}

// Register attaches profile and budget routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/users/profile", protected(h.guard, h.handleProfile))
	mux.Handle("PUT /api/users/profile", protected(h.guard, h.handleUpdateProfile))
	mux.Handle("PUT /api/users/change-password", protected(h.guard, h.handleChangePassword))
	mux.Handle("PUT /api/users/budget", protected(h.guard, h.handleFlatBudget))
	mux.Handle("PUT /api/users/pfp", protected(h.guard, h.handlePicture))
	mux.Handle("GET /api/users/budget/monthly", protected(h.guard, h.handleGetMonthly))
	mux.Handle("PUT /api/users/budget/monthly", protected(h.guard, h.handleSetMonthly))
	mux.Handle("POST /api/users/budget/monthly", protected(h.guard, h.handleSetMonthly))
}

func (h *UserHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	user, err := h.users.Profile(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", user)
}

func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), id.UserID, req.Input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Profile updated successfully", dto.UserResponse{User: user})
}

func (h *UserHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.users.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Password changed successfully.", nil)
}

func (h *UserHandler) handleFlatBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.BudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := money.Parse(req.MonthlyBudget.String())
	if err != nil {
		writeError(w, r, apperr.Validation("A valid, non-negative monthly budget is required."))
		return
	}
	user, err := h.users.SetFlatBudget(r.Context(), id.UserID, amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Monthly budget updated successfully.",
		dto.BudgetResponse{UserID: user.ID, MonthlyBudget: user.MonthlyBudget})
}

func (h *UserHandler) handlePicture(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.PictureRequest
	if err := decodeJSON(w, r, &req); err != nil || req.PfpURL == nil {
		writeError(w, r, apperr.Validation("pfpUrl must be a string (URL or empty string to remove)."))
		return
	}
	user, err := h.users.SetPictureURL(r.Context(), id.UserID, *req.PfpURL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Profile picture URL updated successfully.",
		dto.PictureResponse{UserID: user.ID, PfpURL: user.PfpURL})
}

func (h *UserHandler) handleGetMonthly(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	if q.Get("year") == "" || q.Get("month") == "" {
		writeError(w, r, apperr.Validation("Year and month query parameters are required."))
		return
	}
	year, month, err := users.ParsePeriod(q.Get("year"), q.Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	budget, err := h.users.GetMonthlyBudget(r.Context(), id.UserID, year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", budget)
}

func (h *UserHandler) handleSetMonthly(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dto.MonthlyBudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Year == "" || req.Month == "" || req.Budget == "" {
		writeError(w, r, apperr.Validation("Year, month, and budget amount are required."))
		return
	}
	year, month, err := users.ParsePeriod(req.Year.String(), req.Month.String())
	if err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := money.Parse(req.Budget.String())
	if err != nil {
		writeError(w, r, apperr.Validation("Invalid year, month, or budget amount provided."))
		return
	}
	all, err := h.users.SetMonthlyBudget(r.Context(), id.UserID, year, month, amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, fmt.Sprintf("Budget for %s updated successfully.", users.BudgetKey(year, month)),
		dto.MonthlyBudgetsResponse{UserID: id.UserID, MonthlyBudgets: all})
}
