package ledger

import (
	"strings"
	"time"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/models"
)

// DateRange is an optional inclusive range of calendar days. A zero bound is
// open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange reads the startDate and endDate query values. Empty values
// leave the bound open.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(start) != "" {
		t, err := models.ParseDate(start)
		if err != nil {
			return DateRange{}, apperr.Validation("Invalid startDate format")
		}
		r.Start = t
	}
	if strings.TrimSpace(end) != "" {
		t, err := models.ParseDate(end)
		if err != nil {
			return DateRange{}, apperr.Validation("Invalid endDate format")
		}
		r.End = t
	}
	return r, nil
}

// Contains reports whether t falls inside the range. The end bound is moved
// to the following day and compared strictly, so anything during the end
// day itself is included.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End.AddDate(0, 0, 1)) {
		return false
	}
	return true
}
