package dto

import (
	"github.com/hongminglow/budget-be/internal/goals"
	"github.com/hongminglow/budget-be/internal/models"
)

type CreateGoalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  Numeric `json:"targetAmount"`
	CurrentAmount Numeric `json:"currentAmount"`
	TargetDate    string  `json:"targetDate"`
	Description   string  `json:"description"`
}

// Input converts the request for the goal tracker.
func (r CreateGoalRequest) Input() goals.CreateInput {
	return goals.CreateInput{
		Name:          r.Name,
		TargetAmount:  r.TargetAmount.String(),
		CurrentAmount: r.CurrentAmount.String(),
		TargetDate:    r.TargetDate,
		Description:   r.Description,
	}
}

type UpdateGoalRequest struct {
	Name          models.Optional[string]  `json:"name"`
	TargetAmount  models.Optional[Numeric] `json:"targetAmount"`
	CurrentAmount models.Optional[Numeric] `json:"currentAmount"`
	TargetDate    models.Optional[string]  `json:"targetDate"`
	Description   models.Optional[string]  `json:"description"`
	Status        string                   `json:"status"`
}

// Input converts the request; a valid status is an explicit override.
func (r UpdateGoalRequest) Input() goals.UpdateInput {
	return goals.UpdateInput{
		Name:          r.Name,
		TargetAmount:  numericText(r.TargetAmount),
		CurrentAmount: numericText(r.CurrentAmount),
		TargetDate:    r.TargetDate,
		Description:   r.Description,
		Status:        goals.StatusFromRequest(r.Status),
	}
}

type GoalResponse struct {
	Goal models.Goal `json:"goal"`
}
