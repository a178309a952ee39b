package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hongminglow/budget-be/internal/apperr"
	"github.com/hongminglow/budget-be/internal/auth"
	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/logger"
)

const maxBodyBytes = 1 << 20

// Middleware wraps a handler, e.g. the bearer-token guard.
type Middleware func(http.Handler) http.Handler

func protected(guard Middleware, fn http.HandlerFunc) http.Handler {
	if guard == nil {
		return fn
	}
	return guard(fn)
}

// writeError maps err to a status code. Unclassified errors are logged and
// answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logger.From(r.Context()).ErrorContext(r.Context(), "request failed",
			logger.FieldMethod, r.Method,
			logger.FieldPath, r.URL.Path,
			logger.FieldError, err)
	}
	respond.Error(w, kind.Status(), apperr.Message(err))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("invalid JSON payload")
	}
	return nil
}

// identity returns the caller bound by the auth guard.
func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Not authorized, no token provided")
		return auth.Identity{}, false
	}
	return id, true
}
