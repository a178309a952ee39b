// Package auth registers and authenticates users and issues the bearer
// tokens the access guard verifies.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/logger"
	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/storage"
)

// Causes recorded on login failures. Callers only ever see "invalid credentials".
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordIncorrect = errors.New("password incorrect")
)

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Name     string
	Username string
	Password string
	Email    string
}

// Session is the result of a successful login.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Service owns the users collection for authentication purposes.
type Service struct {
	users  *storage.Collection[models.StoredUser]
	hasher Hasher
	tokens *TokenManager
	now    func() time.Time
}

// NewService constructs the auth service.
func NewService(store storage.RecordStore, hasher Hasher, tokens *TokenManager) *Service {
	return &Service{
		users:  storage.NewCollection[models.StoredUser](store, storage.Users),
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register validates in, hashes the password and appends the new user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	name := strings.TrimSpace(in.Name)
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if name == "" || username == "" || in.Password == "" {
		return models.User{}, apperr.Validation("Please provide name, username, and password")
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return models.User{}, apperr.Conflict("Username already exists")
		}
		if email != "" && u.HasEmail(email) {
			return models.User{}, apperr.Conflict("Email already in use by another account")
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if email != "" {
		user.Email = &email
	}
	if err := s.users.Append(ctx, models.NewStoredUser(user)); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords produce the same caller-facing error.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, apperr.Validation("Please provide username and password")
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return Session{}, err
	}
	var found *models.User
	for _, u := range users {
		if u.Username == username {
			acct := u.Account()
			found = &acct
			break
		}
	}
	if found == nil {
		logger.From(ctx).InfoContext(ctx, "login rejected", "username", username, logger.FieldError, ErrUserNotFound)
		return Session{}, apperr.Auth("Invalid credentials", ErrUserNotFound)
	}

	ok, err := s.hasher.Matches(found.PasswordHash, password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		logger.From(ctx).InfoContext(ctx, "login rejected", "username", username, logger.FieldError, ErrPasswordIncorrect)
		return Session{}, apperr.Auth("Invalid credentials", ErrPasswordIncorrect)
	}

	token, err := s.tokens.Generate(*found)
	if err != nil {
		return Session{}, err
	}
	return Session{User: *found, Token: token}, nil
}

// Logout is advisory: tokens are stateless and stay valid until expiry.
func (s *Service) Logout(context.Context) {}

// CurrentUser resolves the identity of a verified token to a stored user.
func (s *Service) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.ID == userID {
			return u.Account(), nil
		}
	}
	return models.User{}, apperr.NotFound("User not found in database")
}
