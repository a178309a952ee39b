package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hongminglow/budget-be/internal/analytics"
	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/ledger"
)

// AnalyticsHandler serves /api/analytics.
type AnalyticsHandler struct {
	engine *analytics.Engine
	guard  Middleware
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(engine *analytics.Engine, guard Middleware) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine, guard: guard}
}

// Register attaches analytics routes to the mux.
func (h *AnalyticsHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/analytics/spending-by-category", protected(h.guard, h.handleByCategory))
	mux.Handle("GET /api/analytics/income-vs-expense", protected(h.guard, h.handleIncomeVsExpense))
	mux.Handle("GET /api/analytics/spending-overview", protected(h.guard, h.handleOverview))
}

func (h *AnalyticsHandler) handleByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	rng, err := dateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	totals, err := h.engine.SpendingByCategory(r.Context(), id.UserID, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", totals)
}

func (h *AnalyticsHandler) handleIncomeVsExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	rng, err := dateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	balance, err := h.engine.IncomeVsExpense(r.Context(), id.UserID, rng)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", balance)
}

func (h *AnalyticsHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	months := analytics.DefaultOverviewMonths
	if raw := strings.TrimSpace(r.URL.Query().Get("months")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, apperr.Validation("months must be an integer"))
			return
		}
		months = n
	}
	overview, err := h.engine.SpendingOverview(r.Context(), id.UserID, months)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", overview)
}

func dateRange(r *http.Request) (ledger.DateRange, error) {
	q := r.URL.Query()
	return ledger.ParseDateRange(q.Get("startDate"), q.Get("endDate"))
}
