package users

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/models"
)

// MonthlyBudget is the budget of one calendar month. Budget is nil when the
// month was never budgeted, which is different from an explicit zero.
type MonthlyBudget struct {
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	BudgetKey string   `json:"budgetKey"`
	Budget    *float64 `json:"budget"`
	IsSet     bool     `json:"isSet"`
}

// BudgetKey formats the map key of a month, e.g. "2025-05".
func BudgetKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParsePeriod reads a year and month given as text.
func ParsePeriod(year, month string) (int, int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, 0, apperr.Validation("Invalid year or month provided.")
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return 0, 0, apperr.Validation("Invalid year or month provided.")
	}
	if err := checkPeriod(y, m); err != nil {
		return 0, 0, err
	}
	return y, m, nil
}

func checkPeriod(year, month int) error {
	if year < 1 || year > 9999 || month < 1 || month > 12 {
		return apperr.Validation("Invalid year or month provided.")
	}
	return nil
}

// SetMonthlyBudget stores amount for the month, replacing any earlier value,
// and returns every monthly budget of the user.
func (s *Service) SetMonthlyBudget(ctx context.Context, userID string, year, month int, amount float64) (map[string]float64, error) {
	if err := checkPeriod(year, month); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, apperr.Validation("Invalid year, month, or budget amount provided.")
	}

	u, err := s.mutate(ctx, userID, func(_ []models.StoredUser, u *models.StoredUser) error {
		if u.MonthlyBudgets == nil {
			u.MonthlyBudgets = make(map[string]float64)
		}
		u.MonthlyBudgets[BudgetKey(year, month)] = amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.MonthlyBudgets, nil
}

// GetMonthlyBudget reads the budget of one month.
func (s *Service) GetMonthlyBudget(ctx context.Context, userID string, year, month int) (MonthlyBudget, error) {
	if err := checkPeriod(year, month); err != nil {
		return MonthlyBudget{}, err
	}
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return MonthlyBudget{}, err
	}

	key := BudgetKey(year, month)
	out := MonthlyBudget{Year: year, Month: month, BudgetKey: key}
	if v, ok := u.MonthlyBudgets[key]; ok {
		out.Budget = &v
		out.IsSet = true
	}
	return out, nil
}
