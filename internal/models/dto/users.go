package dto

import (
	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/users"
)

type UpdateProfileRequest struct {
	Name  models.Optional[string] `json:"name"`
	Email models.Optional[string] `json:"email"`
}

// Input converts the request for the users service.
func (r UpdateProfileRequest) Input() users.ProfileUpdate {
	return users.ProfileUpdate{Name: r.Name, Email: r.Email}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type BudgetRequest struct {
	MonthlyBudget Numeric `json:"monthlyBudget"`
}

type BudgetResponse struct {
	UserID        string   `json:"userId"`
	MonthlyBudget *float64 `json:"monthlyBudget"`
}

type PictureRequest struct {
	PfpURL *string `json:"pfpUrl"`
}

type PictureResponse struct {
	UserID string `json:"userId"`
	PfpURL string `json:"pfpUrl"`
}

type MonthlyBudgetRequest struct {
	Year   Numeric `json:"year"`
	Month  Numeric `json:"month"`
	Budget Numeric `json:"budget"`
}

type MonthlyBudgetsResponse struct {
	UserID         string             `json:"userId"`
	MonthlyBudgets map[string]float64 `json:"monthlyBudgets"`
}
