package models

import "time"

// GoalStatus is the progress state of a savings goal.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "in-progress"
	GoalAchieved   GoalStatus = "achieved"
	GoalAbandoned  GoalStatus = "abandoned"
)

// Valid reports whether s is one of the known statuses.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalInProgress, GoalAchieved, GoalAbandoned:
		return true
	}
	return false
}

// Goal is a savings target with progress tracking.
type Goal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	TargetDate    *time.Time `json:"targetDate"`
	Description   string     `json:"description"`
	Status        GoalStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// DeriveStatus computes the status implied by the amounts alone.
func DeriveStatus(current, target float64) GoalStatus {
	if current >= target {
		return GoalAchieved
	}
	return GoalInProgress
}
