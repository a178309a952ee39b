// Package analytics derives spending summaries from a user's entries.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/ledger"
	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/money"
)

// Uncategorized labels expenses stored without a category.
const Uncategorized = "Uncategorized"

// Month window bounds for SpendingOverview.
const (
	DefaultOverviewMonths = 6
	MaxOverviewMonths     = 120
)

// EntrySource lists the entries of one owner inside a date range.
type EntrySource interface {
	List(ctx context.Context, ownerID string, r ledger.DateRange) ([]models.Entry, error)
}

// Balance compares income against expense.
type Balance struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetBalance   float64 `json:"netBalance"`
}

// Overview is monthly expense data shaped for a chart, oldest month first.
type Overview struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// Engine computes analytics. Month boundaries are taken in loc.
type Engine struct {
	entries EntrySource
	loc     *time.Location
	now     func() time.Time
}

// NewEngine builds an engine. A nil loc means UTC.
func NewEngine(entries EntrySource, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{entries: entries, loc: loc, now: time.Now}
}

// SpendingByCategory sums the owner's expenses per category.
func (e *Engine) SpendingByCategory(ctx context.Context, ownerID string, r ledger.DateRange) (CategoryTotals, error) {
	entries, err := e.entries.List(ctx, ownerID, r)
	if err != nil {
		return nil, err
	}

	var order []string
	sums := make(map[string]*money.Total)
	for _, entry := range entries {
		if entry.Type != models.EntryExpense {
			continue
		}
		category := entry.Category
		if category == "" {
			category = Uncategorized
		}
		sum, ok := sums[category]
		if !ok {
			sum = &money.Total{}
			sums[category] = sum
			order = append(order, category)
		}
		sum.Add(entry.Amount)
	}

	out := make(CategoryTotals, 0, len(order))
	for _, category := range order {
		out = append(out, CategoryTotal{Category: category, Amount: sums[category].Float64()})
	}
	return out, nil
}

// IncomeVsExpense totals both entry types in one pass.
func (e *Engine) IncomeVsExpense(ctx context.Context, ownerID string, r ledger.DateRange) (Balance, error) {
	entries, err := e.entries.List(ctx, ownerID, r)
	if err != nil {
		return Balance{}, err
	}

	var income, expense money.Total
	for _, entry := range entries {
		switch entry.Type {
		case models.EntryIncome:
			income.Add(entry.Amount)
		case models.EntryExpense:
			expense.Add(entry.Amount)
		}
	}
	return Balance{
		TotalIncome:  income.Float64(),
		TotalExpense: expense.Float64(),
		NetBalance:   money.Sub(income, expense),
	}, nil
}

// SpendingOverview buckets expenses into the last months calendar months,
// ending with the current one. Labels carry the month name only, so a window
// longer than a year repeats labels.
func (e *Engine) SpendingOverview(ctx context.Context, ownerID string, months int) (Overview, error) {
	if months < 1 || months > MaxOverviewMonths {
		return Overview{}, apperr.Validation(fmt.Sprintf("months must be between 1 and %d", MaxOverviewMonths))
	}
	entries, err := e.entries.List(ctx, ownerID, ledger.DateRange{})
	if err != nil {
		return Overview{}, err
	}

	now := e.now().In(e.loc)
	keys := make([]string, months)
	index := make(map[string]int, months)
	labels := make([]string, months)
	for i := 0; i < months; i++ {
		first := time.Date(now.Year(), now.Month()-time.Month(months-1-i), 1, 0, 0, 0, 0, e.loc)
		keys[i] = monthKey(first)
		index[keys[i]] = i
		labels[i] = first.Month().String()[:3]
	}

	sums := make([]money.Total, months)
	for _, entry := range entries {
		if entry.Type != models.EntryExpense {
			continue
		}
		if i, ok := index[monthKey(entry.Date.In(e.loc))]; ok {
			sums[i].Add(entry.Amount)
		}
	}

	data := make([]float64, months)
	for i := range sums {
		data[i] = sums[i].Float64()
	}
	return Overview{Labels: labels, Data: data}, nil
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
