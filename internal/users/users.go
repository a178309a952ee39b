// Package users manages profile data embedded in the user record: name and
// email, password changes, the profile picture reference and budgets.
package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/auth"
	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/storage"
)

// MinPasswordLength applies to password changes.
const MinPasswordLength = 6

// ProfileUpdate holds the editable profile fields. A null or empty email
// removes it.
type ProfileUpdate struct {
	Name  models.Optional[string]
	Email models.Optional[string]
}

// Service edits user records.
type Service struct {
	users  *storage.Collection[models.StoredUser]
	hasher auth.Hasher
	now    func() time.Time
}

// NewService builds the service.
func NewService(store storage.RecordStore, hasher auth.Hasher) *Service {
	return &Service{
		users:  storage.NewCollection[models.StoredUser](store, storage.Users),
		hasher: hasher,
		now:    time.Now,
	}
}

// Profile returns the user's public record.
func (s *Service) Profile(ctx context.Context, userID string) (models.User, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	idx, err := find(all, userID)
	if err != nil {
		return models.User{}, err
	}
	return all[idx].Account(), nil
}

// UpdateProfile changes the name and/or email. At least one must be supplied.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (models.User, error) {
	if !in.Name.Set && !in.Email.Set {
		return models.User{}, apperr.Validation("Please provide name or email to update.")
	}
	name := strings.TrimSpace(in.Name.Value)
	if in.Name.Set && name == "" {
		return models.User{}, apperr.Validation("Name cannot be empty.")
	}
	email := strings.TrimSpace(in.Email.Value)

	return s.mutate(ctx, userID, func(all []models.StoredUser, u *models.StoredUser) error {
		if in.Name.Set {
			u.Name = name
		}
		if !in.Email.Set {
			return nil
		}
		if email == "" {
			u.Email = nil
			return nil
		}
		for _, other := range all {
			if other.ID != u.ID && other.HasEmail(email) {
				return apperr.Conflict("Email already in use by another account.")
			}
		}
		u.Email = &email
		return nil
	})
}

// ChangePassword replaces the password hash after checking current.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return apperr.Validation("Current password and new password are required.")
	}
	if len(next) < MinPasswordLength {
		return apperr.Validation(fmt.Sprintf("New password must be at least %d characters long.", MinPasswordLength))
	}

	_, err := s.mutate(ctx, userID, func(_ []models.StoredUser, u *models.StoredUser) error {
		ok, err := s.hasher.Matches(u.Password, current)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Auth("Incorrect current password.", auth.ErrPasswordIncorrect)
		}
		hash, err := s.hasher.Hash(next)
		if err != nil {
			return err
		}
		u.Password = hash
		return nil
	})
	return err
}

// SetFlatBudget sets the single monthly budget figure.
func (s *Service) SetFlatBudget(ctx context.Context, userID string, amount float64) (models.User, error) {
	if amount < 0 {
		return models.User{}, apperr.Validation("A valid, non-negative monthly budget is required.")
	}
	return s.mutate(ctx, userID, func(_ []models.StoredUser, u *models.StoredUser) error {
		u.MonthlyBudget = &amount
		return nil
	})
}

// SetPictureURL stores a profile picture reference. An empty url removes it.
func (s *Service) SetPictureURL(ctx context.Context, userID, url string) (models.User, error) {
	url = strings.TrimSpace(url)
	return s.mutate(ctx, userID, func(_ []models.StoredUser, u *models.StoredUser) error {
		u.PfpURL = url
		return nil
	})
}

// mutate loads every user, applies fn to userID's record and writes the
// collection back.
func (s *Service) mutate(ctx context.Context, userID string, fn func(all []models.StoredUser, u *models.StoredUser) error) (models.User, error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	idx, err := find(all, userID)
	if err != nil {
		return models.User{}, err
	}

	u := all[idx]
	if err := fn(all, &u); err != nil {
		return models.User{}, err
	}
	now := s.now().UTC()
	u.UpdatedAt = &now
	all[idx] = u

	if err := s.users.Replace(ctx, all); err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return u.Account(), nil
}

func find(all []models.StoredUser, userID string) (int, error) {
	for i, u := range all {
		if u.ID == userID {
			return i, nil
		}
	}
	return -1, apperr.NotFound("User not found")
}
