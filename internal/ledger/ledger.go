// Package ledger stores income and expense entries. Every operation is
// scoped to the identity that owns the entries.
package ledger

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

// CreateInput carries the raw fields of a new entry. Amount and Date are
// text so that validation happens here rather than in the decoder.
type CreateInput struct {
	Type        string
	Category    string
	Amount      string
	Date        string
	Description string
}

// UpdateInput holds the fields of a partial update. Absent fields keep the
// stored value.
type UpdateInput struct {
	Type        models.Optional[string]
	Category    models.Optional[string]
	Amount      models.Optional[string]
	Date        models.Optional[string]
	Description models.Optional[string]
}

// Service implements the entry ledger on top of a RecordStore.
type Service struct {
	entries *storage.Collection[models.Entry]
	events  events.Publisher
	now     func() time.Time
}

// NewService builds a ledger. pub may be events.Noop{}.
func NewService(store storage.RecordStore, pub events.Publisher) *Service {
	return &Service{
		entries: storage.NewCollection[models.Entry](store, storage.Entries),
		events:  pub,
		now:     time.Now,
	}
}

// Create validates in and appends a new entry owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (models.Entry, error) {
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Category) == "" ||
		strings.TrimSpace(in.Amount) == "" || strings.TrimSpace(in.Date) == "" {
		return models.Entry{}, apperr.Validation("Please provide type, category, amount, and date")
	}
	kind, err := parseType(in.Type)
	if err != nil {
		return models.Entry{}, err
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return models.Entry{}, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Type:        kind,
		Category:    in.Category,
		Amount:      amount,
		Date:        date,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		return models.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	events.Notify(ctx, s.events, events.New(events.EntryCreated, ownerID, entry.ID))
	return entry, nil
}

// List returns the owner's entries inside r in insertion order.
func (s *Service) List(ctx context.Context, ownerID string, r DateRange) ([]models.Entry, error) {
	all, err := s.entries.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Entry, 0, len(all))
	for _, e := range all {
		if e.UserID == ownerID && r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Get returns one entry. Entries owned by someone else are reported as not
// found.
func (s *Service) Get(ctx context.Context, ownerID, id string) (models.Entry, error) {
	all, err := s.entries.All(ctx)
	if err != nil {
		return models.Entry{}, err
	}
	for _, e := range all {
		if e.ID == id && e.UserID == ownerID {
			return e, nil
		}
	}
	return models.Entry{}, apperr.NotFound("Entry not found or access denied")
}

// Update merges the supplied fields into the entry. Unlike Get, an entry
// owned by another user yields a Forbidden error.
func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (models.Entry, error) {
	all, err := s.entries.All(ctx)
	if err != nil {
		return models.Entry{}, err
	}
	idx, err := locate(all, ownerID, id, "update")
	if err != nil {
		return models.Entry{}, err
	}

	entry := all[idx]
	if in.Type.Set {
		if entry.Type, err = parseType(in.Type.Value); err != nil {
			return models.Entry{}, err
		}
	}
	if in.Amount.Set {
		if entry.Amount, err = parseAmount(in.Amount.Value); err != nil {
			return models.Entry{}, err
		}
	}
	if in.Date.Set {
		if entry.Date, err = parseDate(in.Date.Value); err != nil {
			return models.Entry{}, err
		}
	}
	if in.Category.Set {
		entry.Category = in.Category.Value
	}
	if in.Description.Set {
		entry.Description = in.Description.Value
	}
	now := s.now().UTC()
	entry.UpdatedAt = &now

	all[idx] = entry
	if err := s.entries.Replace(ctx, all); err != nil {
		return models.Entry{}, fmt.Errorf("update entry: %w", err)
	}
	events.Notify(ctx, s.events, events.New(events.EntryUpdated, ownerID, entry.ID))
	return entry, nil
}

// Delete removes the entry with the same not-found / forbidden split as Update.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	all, err := s.entries.All(ctx)
	if err != nil {
		return err
	}
	idx, err := locate(all, ownerID, id, "delete")
	if err != nil {
		return err
	}

	all = append(all[:idx], all[idx+1:]...)
	if err := s.entries.Replace(ctx, all); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	events.Notify(ctx, s.events, events.New(events.EntryDeleted, ownerID, id))
	return nil
}

func locate(all []models.Entry, ownerID, id, action string) (int, error) {
	for i, e := range all {
		if e.ID != id {
			continue
		}
		if e.UserID != ownerID {
			return -1, apperr.Forbidden("User not authorized to " + action + " this entry")
		}
		return i, nil
	}
	return -1, apperr.NotFound("Entry not found")
}

func parseType(s string) (models.EntryType, error) {
	kind, ok := models.ParseEntryType(s)
	if !ok {
		return "", apperr.Validation(`Entry type must be "income" or "expense"`)
	}
	return kind, nil
}

func parseAmount(s string) (float64, error) {
	v, err := money.Parse(s)
	if err != nil || v <= 0 {
		return 0, apperr.Validation("Amount must be a positive number")
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, apperr.Validation("Invalid date format")
	}
	return t, nil
}
