package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/budget-be/internal/auth"
	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/logger"
)

// Messages returned by RequireAuth.
const (
	MsgNoToken      = "Not authorized, no token provided"
	MsgTokenInvalid = "Not authorized, token is invalid"
	MsgTokenExpired = "Not authorized, token has expired"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and binds the
// token's identity to the request context. It does not consult storage.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			id, err := tokens.Parse(token)
			if err != nil {
				msg := MsgTokenInvalid
				if errors.Is(err, auth.ErrTokenExpired) {
					msg = MsgTokenExpired
				}
				logger.From(r.Context()).DebugContext(r.Context(), "token rejected", logger.FieldError, err)
				respond.Error(w, http.StatusUnauthorized, msg)
				return
			}

			ctx := auth.WithIdentity(r.Context(), id)
			ctx = logger.With(ctx, logger.FieldUserID, id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
