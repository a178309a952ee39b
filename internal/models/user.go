package models

import "time"

// User captures application-facing fields for an account. The password hash
// never leaves the server; see StoredUser for the persisted shape.
type User struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Username       string             `json:"username"`
	Email          *string            `json:"email"`
	PasswordHash   string             `json:"-"`
	PfpURL         string             `json:"pfpUrl,omitempty"`
	MonthlyBudget  *float64           `json:"monthlyBudget,omitempty"`
	MonthlyBudgets map[string]float64 `json:"monthlyBudgets,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      *time.Time         `json:"updatedAt,omitempty"`
}

// StoredUser is a User as written to the users collection.
type StoredUser struct {
	User
	Password string `json:"password"`
}

// NewStoredUser pairs u with its password hash for persistence.
func NewStoredUser(u User) StoredUser {
	return StoredUser{User: u, Password: u.PasswordHash}
}

// Account returns the user with the hash restored from the stored record.
func (s StoredUser) Account() User {
	u := s.User
	u.PasswordHash = s.Password
	return u
}

// HasEmail reports whether the user has a non-empty email equal to email.
func (u User) HasEmail(email string) bool {
	return u.Email != nil && *u.Email != "" && *u.Email == email
}
