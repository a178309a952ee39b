package models

import (
	"strings"
	"time"
)

// EntryType is the direction of money for an entry.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// ParseEntryType normalizes s case-insensitively.
func ParseEntryType(s string) (EntryType, bool) {
	switch t := EntryType(strings.ToLower(strings.TrimSpace(s))); t {
	case EntryIncome, EntryExpense:
		return t, true
	default:
		return "", false
	}
}

// Entry is a single income or expense transaction owned by one user.
type Entry struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Type        EntryType  `json:"type"`
	Category    string     `json:"category"`
	Amount      float64    `json:"amount"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
