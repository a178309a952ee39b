package analytics

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/events"
	"github.com/hongminglow/budget-be/internal/ledger"
	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/storage/memory"
)

type fixture struct {
	ctx    context.Context
	ledger *ledger.Service
	engine *Engine
}

func newFixture(t *testing.T, now time.Time) fixture {
	t.Helper()
	l := ledger.NewService(memory.New(), events.Noop{})
	e := NewEngine(l, time.UTC)
	e.now = func() time.Time { return now }
	return fixture{ctx: context.Background(), ledger: l, engine: e}
}

func (f fixture) add(t *testing.T, owner, kind, category, amount, date string) {
	t.Helper()
	_, err := f.ledger.Create(f.ctx, owner, ledger.CreateInput{Type: kind, Category: category, Amount: amount, Date: date})
	require.NoError(t, err)
}

func TestIncomeVsExpense(t *testing.T) {
	f := newFixture(t, time.Now())
	f.add(t, "u1", "income", "Salary", "100", "2025-03-01")
	f.add(t, "u1", "income", "Gift", "50", "2025-03-02")
	f.add(t, "u1", "expense", "Food", "30", "2025-03-03")
	f.add(t, "u2", "expense", "Food", "999", "2025-03-03")

	got, err := f.engine.IncomeVsExpense(f.ctx, "u1", ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, Balance{TotalIncome: 150, TotalExpense: 30, NetBalance: 120}, got)
}

func TestIncomeVsExpenseEmpty(t *testing.T) {
	f := newFixture(t, time.Now())
	got, err := f.engine.IncomeVsExpense(f.ctx, "u1", ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, Balance{}, got)
}

func TestSpendingByCategoryEndDateInclusive(t *testing.T) {
	f := newFixture(t, time.Now())
	f.add(t, "u1", "expense", "Food", "10", "2025-03-31T23:59:59Z")
	f.add(t, "u1", "expense", "Food", "20", "2025-04-01T00:00:00Z")
	f.add(t, "u1", "expense", "Rent", "5", "2025-02-28T23:59:59Z")

	r, err := ledger.ParseDateRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	got, err := f.engine.SpendingByCategory(f.ctx, "u1", r)
	require.NoError(t, err)

	assert.Equal(t, CategoryTotals{{Category: "Food", Amount: 10}}, got)
}

func TestSpendingByCategoryOrderAndUncategorized(t *testing.T) {
	f := newFixture(t, time.Now())
	f.add(t, "u1", "expense", "Rent", "800", "2025-03-01")
	f.add(t, "u1", "expense", "Food", "0.1", "2025-03-02")
	f.add(t, "u1", "income", "Salary", "2000", "2025-03-02")
	f.add(t, "u1", "expense", "Food", "0.2", "2025-03-03")
	f.add(t, "u1", "expense", "Misc", "4", "2025-03-04")

	// Clear the category of the Misc entry to exercise the fallback label.
	list, err := f.ledger.List(f.ctx, "u1", ledger.DateRange{})
	require.NoError(t, err)
	_, err = f.ledger.Update(f.ctx, "u1", list[len(list)-1].ID, ledger.UpdateInput{Category: models.Null[string]()})
	require.NoError(t, err)

	got, err := f.engine.SpendingByCategory(f.ctx, "u1", ledger.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, CategoryTotals{
		{Category: "Rent", Amount: 800},
		{Category: "Food", Amount: 0.3},
		{Category: Uncategorized, Amount: 4},
	}, got)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, `{"Rent":800,"Food":0.3,"Uncategorized":4}`, string(body))

	v, ok := got.Get("Food")
	assert.True(t, ok)
	assert.Equal(t, 0.3, v)
}

func TestEmptyCategoryTotalsEncodeAsObject(t *testing.T) {
	body, err := json.Marshal(CategoryTotals{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(body))
}

func TestSpendingOverviewInMarch(t *testing.T) {
	f := newFixture(t, time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC))
	f.add(t, "u1", "expense", "Food", "40", "2025-01-15")
	f.add(t, "u1", "expense", "Food", "2", "2025-01-31T23:00:00Z")
	f.add(t, "u1", "income", "Salary", "1000", "2025-02-01")
	f.add(t, "u1", "expense", "Food", "7", "2025-03-01")
	f.add(t, "u1", "expense", "Food", "99", "2024-12-31")

	got, err := f.engine.SpendingOverview(f.ctx, "u1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, got.Labels)
	assert.Equal(t, []float64{42, 0, 7}, got.Data)
}

func TestSpendingOverviewCrossesYearBoundary(t *testing.T) {
	f := newFixture(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	f.add(t, "u1", "expense", "Food", "5", "2024-12-10")

	got, err := f.engine.SpendingOverview(f.ctx, "u1", DefaultOverviewMonths)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}, got.Labels)
	assert.Equal(t, []float64{0, 0, 0, 5, 0, 0}, got.Data)
}

// A window longer than a year repeats month names; buckets stay distinct.
func TestSpendingOverviewDuplicateLabels(t *testing.T) {
	f := newFixture(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	f.add(t, "u1", "expense", "Food", "1", "2024-03-10")
	f.add(t, "u1", "expense", "Food", "2", "2025-03-01")

	got, err := f.engine.SpendingOverview(f.ctx, "u1", 13)
	require.NoError(t, err)
	require.Len(t, got.Labels, 13)
	assert.Equal(t, "Mar", got.Labels[0])
	assert.Equal(t, "Mar", got.Labels[12])
	assert.Equal(t, 1.0, got.Data[0])
	assert.Equal(t, 2.0, got.Data[12])
}

func TestSpendingOverviewUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	f := newFixture(t, time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC))
	f.engine.loc = loc
	// 2025-03-01T02:00Z is still February at UTC-5.
	f.add(t, "u1", "expense", "Food", "9", "2025-03-01T02:00:00Z")

	got, err := f.engine.SpendingOverview(f.ctx, "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Feb"}, got.Labels)
	assert.Equal(t, []float64{9}, got.Data)
}

func TestSpendingOverviewRejectsBadWindow(t *testing.T) {
	f := newFixture(t, time.Now())
	for _, months := range []int{0, -1, MaxOverviewMonths + 1} {
		_, err := f.engine.SpendingOverview(f.ctx, "u1", months)
		assert.True(t, apperr.Is(err, apperr.KindValidation), months)
	}
}
