// Package goals tracks savings goals and their progress.
package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/events"
	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/money"
	"github.com/hongminglow/budget-be/internal/storage"
)

// CreateInput carries the raw fields of a new goal. An empty CurrentAmount
// means zero.
type CreateInput struct {
	Name          string
	TargetAmount  string
	CurrentAmount string
	TargetDate    string
	Description   string
}

// UpdateInput is a partial update. Status defaults to Recompute.
type UpdateInput struct {
	Name          models.Optional[string]
	TargetAmount  models.Optional[string]
	CurrentAmount models.Optional[string]
	TargetDate    models.Optional[string]
	Description   models.Optional[string]
	Status        StatusUpdate
}

// Service implements the goal tracker.
type Service struct {
	goals  *storage.Collection[models.Goal]
	events events.Publisher
	now    func() time.Time
}

// NewService builds a goal tracker. pub may be events.Noop{}.
func NewService(store storage.RecordStore, pub events.Publisher) *Service {
	return &Service{
		goals:  storage.NewCollection[models.Goal](store, storage.Goals),
		events: pub,
		now:    time.Now,
	}
}

// Create validates in and appends a goal with a derived status.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (models.Goal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.TargetAmount) == "" {
		return models.Goal{}, apperr.Validation("Please provide name and targetAmount for the goal")
	}
	target, err := parseTarget(in.TargetAmount)
	if err != nil {
		return models.Goal{}, err
	}
	var current float64
	if strings.TrimSpace(in.CurrentAmount) != "" {
		if current, err = parseCurrent(in.CurrentAmount); err != nil {
			return models.Goal{}, err
		}
	}
	if current > target {
		return models.Goal{}, apperr.Validation("Current amount cannot exceed target amount at creation")
	}
	targetDate, err := parseTargetDate(in.TargetDate)
	if err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		ID:            uuid.NewString(),
		UserID:        ownerID,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
		Description:   in.Description,
		Status:        models.DeriveStatus(current, target),
		CreatedAt:     s.now().UTC(),
	}
	if err := s.goals.Append(ctx, goal); err != nil {
		return models.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	events.Notify(ctx, s.events, events.New(events.GoalCreated, ownerID, goal.ID))
	return goal, nil
}

// List returns the owner's goals in insertion order.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.Goal, error) {
	all, err := s.goals.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Goal, 0, len(all))
	for _, g := range all {
		if g.UserID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

// Get returns one goal; goals of other users are reported as not found.
func (s *Service) Get(ctx context.Context, ownerID, id string) (models.Goal, error) {
	all, err := s.goals.All(ctx)
	if err != nil {
		return models.Goal{}, err
	}
	for _, g := range all {
		if g.ID == id && g.UserID == ownerID {
			return g, nil
		}
	}
	return models.Goal{}, apperr.NotFound("Goal not found or access denied")
}

// Update merges the supplied fields, checks the amounts against each other
// after the merge and then resolves the status.
func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (models.Goal, error) {
	all, err := s.goals.All(ctx)
	if err != nil {
		return models.Goal{}, err
	}
	idx, err := locate(all, ownerID, id, "update")
	if err != nil {
		return models.Goal{}, err
	}

	goal := all[idx]
	if in.Name.Set {
		name := strings.TrimSpace(in.Name.Value)
		if name == "" {
			return models.Goal{}, apperr.Validation("Goal name cannot be empty")
		}
		goal.Name = name
	}
	if in.TargetAmount.Set {
		if goal.TargetAmount, err = parseTarget(in.TargetAmount.Value); err != nil {
			return models.Goal{}, err
		}
	}
	if in.CurrentAmount.Set {
		if goal.CurrentAmount, err = parseCurrent(in.CurrentAmount.Value); err != nil {
			return models.Goal{}, err
		}
	}
	if goal.CurrentAmount > goal.TargetAmount {
		return models.Goal{}, apperr.Validation("Current amount cannot exceed target amount")
	}
	if in.TargetDate.Set {
		if goal.TargetDate, err = parseTargetDate(in.TargetDate.Value); err != nil {
			return models.Goal{}, err
		}
	}
	if in.Description.Set {
		goal.Description = in.Description.Value
	}
	goal.Status = in.Status.resolve(goal)
	now := s.now().UTC()
	goal.UpdatedAt = &now

	all[idx] = goal
	if err := s.goals.Replace(ctx, all); err != nil {
		return models.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	events.Notify(ctx, s.events, events.New(events.GoalUpdated, ownerID, goal.ID))
	return goal, nil
}

// Delete removes a goal owned by ownerID.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	all, err := s.goals.All(ctx)
	if err != nil {
		return err
	}
	idx, err := locate(all, ownerID, id, "delete")
	if err != nil {
		return err
	}

	all = append(all[:idx], all[idx+1:]...)
	if err := s.goals.Replace(ctx, all); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	events.Notify(ctx, s.events, events.New(events.GoalDeleted, ownerID, id))
	return nil
}

func locate(all []models.Goal, ownerID, id, action string) (int, error) {
	for i, g := range all {
		if g.ID != id {
			continue
		}
		if g.UserID != ownerID {
			return -1, apperr.Forbidden("User not authorized to " + action + " this goal")
		}
		return i, nil
	}
	return -1, apperr.NotFound("Goal not found")
}

func parseTarget(s string) (float64, error) {
	v, err := money.Parse(s)
	if err != nil || v <= 0 {
		return 0, apperr.Validation("Target amount must be a positive number")
	}
	return v, nil
}

func parseCurrent(s string) (float64, error) {
	v, err := money.Parse(s)
	if err != nil || v < 0 {
		return 0, apperr.Validation("Current amount must be a non-negative number")
	}
	return v, nil
}

// parseTargetDate treats an empty string as "no target date".
func parseTargetDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := models.ParseDate(s)
	if err != nil {
		return nil, apperr.Validation("Invalid target date format")
	}
	return &t, nil
}
