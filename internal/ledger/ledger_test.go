package ledger

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/events"
	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/storage"
	"github.com/hongminglow/budget-be/internal/storage/memory"
)

type LedgerTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	events *events.Memory
	svc    *Service
}

func (s *LedgerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.events = &events.Memory{}
	s.svc = NewService(s.store, s.events)
	s.svc.now = func() time.Time { return time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC) }
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) create(owner string, in CreateInput) models.Entry {
	e, err := s.svc.Create(s.ctx, owner, in)
	s.Require().NoError(err)
	return e
}

func expense(amount, date string) CreateInput {
	return CreateInput{Type: "expense", Category: "Food", Amount: amount, Date: date}
}

func (s *LedgerTestSuite) TestCreateThenGetRoundTrip() {
	cases := []struct {
		kind   string
		amount string
		want   float64
		wantT  models.EntryType
	}{
		{"Income", "1500", 1500, models.EntryIncome},
		{"EXPENSE", "12.34", 12.34, models.EntryExpense},
		{" expense ", "0.01", 0.01, models.EntryExpense},
		{"income", "1e3", 1000, models.EntryIncome},
	}
	for _, tc := range cases {
		created := s.create("u1", CreateInput{Type: tc.kind, Category: "Misc", Amount: tc.amount, Date: "2025-03-01"})
		got, err := s.svc.Get(s.ctx, "u1", created.ID)
		s.Require().NoError(err)
		s.Equal(tc.want, got.Amount)
		s.Equal(tc.wantT, got.Type)
		s.Equal("u1", got.UserID)
		s.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got.Date)
		s.NotEmpty(got.ID)
		s.Nil(got.UpdatedAt)
	}
}

func (s *LedgerTestSuite) TestCreateValidation() {
	cases := map[string]CreateInput{
		"missing category": {Type: "expense", Amount: "1", Date: "2025-01-01"},
		"missing amount":   {Type: "expense", Category: "x", Date: "2025-01-01"},
		"bad type":         {Type: "transfer", Category: "x", Amount: "1", Date: "2025-01-01"},
		"zero amount":      {Type: "expense", Category: "x", Amount: "0", Date: "2025-01-01"},
		"negative amount":  {Type: "expense", Category: "x", Amount: "-5", Date: "2025-01-01"},
		"text amount":      {Type: "expense", Category: "x", Amount: "ten", Date: "2025-01-01"},
		"bad date":         {Type: "expense", Category: "x", Amount: "1", Date: "01/02/2025"},
	}
	for name, in := range cases {
		_, err := s.svc.Create(s.ctx, "u1", in)
		s.True(apperr.Is(err, apperr.KindValidation), name)
	}
	all, err := s.svc.List(s.ctx, "u1", DateRange{})
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *LedgerTestSuite) TestListIsScopedAndOrdered() {
	a := s.create("u1", expense("1", "2025-03-03"))
	s.create("u2", expense("2", "2025-03-02"))
	b := s.create("u1", expense("3", "2025-03-01"))

	got, err := s.svc.List(s.ctx, "u1", DateRange{})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(a.ID, got[0].ID)
	s.Equal(b.ID, got[1].ID)
}

func (s *LedgerTestSuite) TestListDateRange() {
	s.create("u1", expense("1", "2025-02-28T23:59:59Z"))
	in := s.create("u1", expense("2", "2025-03-31T23:59:59Z"))
	s.create("u1", expense("3", "2025-04-01"))

	r, err := ParseDateRange("2025-03-01", "2025-03-31")
	s.Require().NoError(err)
	got, err := s.svc.List(s.ctx, "u1", r)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(in.ID, got[0].ID)
}

func (s *LedgerTestSuite) TestGetHidesOtherOwners() {
	e := s.create("u1", expense("5", "2025-03-01"))

	_, err := s.svc.Get(s.ctx, "u2", e.ID)
	s.True(apperr.Is(err, apperr.KindNotFound))
	_, err = s.svc.Get(s.ctx, "u1", "missing")
	s.True(apperr.Is(err, apperr.KindNotFound))
	s.Equal(apperr.Message(err), "Entry not found or access denied")
}

func (s *LedgerTestSuite) TestUpdateAndDeleteOwnership() {
	e := s.create("u1", expense("5", "2025-03-01"))

	_, err := s.svc.Update(s.ctx, "u2", e.ID, UpdateInput{Amount: models.Some("9")})
	s.True(apperr.Is(err, apperr.KindForbidden))
	err = s.svc.Delete(s.ctx, "u2", e.ID)
	s.True(apperr.Is(err, apperr.KindForbidden))

	_, err = s.svc.Update(s.ctx, "u1", "missing", UpdateInput{})
	s.True(apperr.Is(err, apperr.KindNotFound))
	err = s.svc.Delete(s.ctx, "u1", "missing")
	s.True(apperr.Is(err, apperr.KindNotFound))

	got, err := s.svc.Get(s.ctx, "u1", e.ID)
	s.Require().NoError(err)
	s.Equal(5.0, got.Amount)
}

func (s *LedgerTestSuite) TestUpdateMergesSuppliedFields() {
	e := s.create("u1", CreateInput{Type: "expense", Category: "Food", Amount: "5", Date: "2025-03-01", Description: "lunch"})

	got, err := s.svc.Update(s.ctx, "u1", e.ID, UpdateInput{
		Type:        models.Some("INCOME"),
		Description: models.Null[string](),
	})
	s.Require().NoError(err)
	s.Equal(models.EntryIncome, got.Type)
	s.Equal("Food", got.Category)
	s.Equal(5.0, got.Amount)
	s.Equal(e.Date, got.Date)
	s.Equal("", got.Description)
	s.Require().NotNil(got.UpdatedAt)
	s.Equal(e.CreatedAt, got.CreatedAt)

	stored, err := s.svc.Get(s.ctx, "u1", e.ID)
	s.Require().NoError(err)
	s.Equal(got, stored)
}

func (s *LedgerTestSuite) TestUpdateValidatesSuppliedFields() {
	e := s.create("u1", expense("5", "2025-03-01"))

	for name, in := range map[string]UpdateInput{
		"bad type":     {Type: models.Some("gift")},
		"null type":    {Type: models.Null[string]()},
		"zero amount":  {Amount: models.Some("0")},
		"null amount":  {Amount: models.Null[string]()},
		"bad date":     {Date: models.Some("soon")},
		"cleared date": {Date: models.Some("")},
	} {
		_, err := s.svc.Update(s.ctx, "u1", e.ID, in)
		s.True(apperr.Is(err, apperr.KindValidation), name)
	}
}

func (s *LedgerTestSuite) TestUpdateNeverChangesOwner() {
	e := s.create("u1", expense("5", "2025-03-01"))

	in := UpdateInput{
		Type:        models.Some("income"),
		Category:    models.Some("Salary"),
		Amount:      models.Some("7"),
		Date:        models.Some("2025-03-02"),
		Description: models.Some("moved"),
	}
	got, err := s.svc.Update(s.ctx, "u1", e.ID, in)
	s.Require().NoError(err)
	s.Equal("u1", got.UserID)
	s.Equal(7.0, got.Amount)

	_, err = s.svc.Get(s.ctx, "u2", e.ID)
	s.True(apperr.Is(err, apperr.KindNotFound))
}

func (s *LedgerTestSuite) TestDeleteRemovesOnlyTarget() {
	a := s.create("u1", expense("1", "2025-03-01"))
	b := s.create("u1", expense("2", "2025-03-02"))

	s.Require().NoError(s.svc.Delete(s.ctx, "u1", a.ID))

	got, err := s.svc.List(s.ctx, "u1", DateRange{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(b.ID, got[0].ID)
}

func (s *LedgerTestSuite) TestPublishesChangeEvents() {
	e := s.create("u1", expense("1", "2025-03-01"))
	_, err := s.svc.Update(s.ctx, "u1", e.ID, UpdateInput{Category: models.Some("Rent")})
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Delete(s.ctx, "u1", e.ID))

	s.Equal([]events.Type{events.EntryCreated, events.EntryUpdated, events.EntryDeleted}, s.events.Types())
	for _, ev := range s.events.Events() {
		s.Equal(e.ID, ev.RecordID)
		s.Equal("u1", ev.UserID)
	}
}

// barrierStore holds every List call once armed until two readers have
// loaded the collection, forcing two read-modify-write cycles to overlap.
type barrierStore struct {
	storage.RecordStore
	armed   atomic.Bool
	readers sync.WaitGroup
}

func (b *barrierStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	recs, err := b.RecordStore.List(ctx, collection)
	if b.armed.Load() {
		b.readers.Done()
		b.readers.Wait()
	}
	return recs, err
}

// Concurrent updates to different entries race on the whole collection:
// the second replace overwrites the first. This documents the accepted
// last-writer-wins behaviour.
func TestConcurrentUpdatesLoseOneWrite(t *testing.T) {
	ctx := context.Background()
	store := &barrierStore{RecordStore: memory.New()}
	svc := NewService(store, events.Noop{})

	a, err := svc.Create(ctx, "u1", expense("1", "2025-03-01"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, "u1", expense("2", "2025-03-02"))
	require.NoError(t, err)

	store.readers.Add(2)
	store.armed.Store(true)

	var wg sync.WaitGroup
	for _, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Update(ctx, "u1", id, UpdateInput{Amount: models.Some("100")})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()
	store.armed.Store(false)

	all, err := svc.List(ctx, "u1", DateRange{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	updated := 0
	for _, e := range all {
		if e.Amount == 100 {
			updated++
		}
	}
	assert.Equal(t, 1, updated, "exactly one of the two concurrent updates survives")
}

func TestDateRangeEndIsInclusive(t *testing.T) {
	r, err := ParseDateRange("", "2025-03-31")
	require.NoError(t, err)

	assert.True(t, r.Contains(time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDateRangeStartIsLiteral(t *testing.T) {
	r, err := ParseDateRange("2025-03-01T12:00:00Z", "")
	require.NoError(t, err)

	assert.False(t, r.Contains(time.Date(2025, 3, 1, 11, 59, 59, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	_, err := ParseDateRange("nope", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = ParseDateRange("", "2025-13-01")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
