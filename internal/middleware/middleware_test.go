package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/budget-be/internal/auth"
	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/logger"
	"github.com/hongminglow/budget-be/internal/models"
)

func whoami() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		respond.JSON(w, http.StatusOK, "ok", id)
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	good, err := tokens.Generate(models.User{ID: "u1", Username: "ana"})
	require.NoError(t, err)

	expired := auth.NewTokenManager("secret", "test", -time.Minute)
	stale, err := expired.Generate(models.User{ID: "u1", Username: "ana"})
	require.NoError(t, err)

	h := RequireAuth(tokens)(whoami())

	tests := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{"missing header", "", http.StatusUnauthorized, MsgNoToken},
		{"wrong scheme", "Basic " + good, http.StatusUnauthorized, MsgNoToken},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, MsgNoToken},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, MsgTokenInvalid},
		{"expired", "Bearer " + stale, http.StatusUnauthorized, MsgTokenExpired},
		{"valid", "Bearer " + good, http.StatusOK, "ok"},
		{"lowercase scheme", "bearer " + good, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, decode(t, rec).Message)
		})
	}
}

func TestRequireAuthBindsIdentity(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "test", time.Hour)
	good, err := tokens.Generate(models.User{ID: "u1", Username: "ana"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+good)
	rec := httptest.NewRecorder()
	RequireAuth(tokens)(whoami()).ServeHTTP(rec, req)

	assert.JSONEq(t, `{"code":200,"message":"ok","data":{"id":"u1","username":"ana"}}`, rec.Body.String())
}

func TestLoggingRecordsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Level: "info", Format: "json", Output: &buf})

	h := Logging(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.From(r.Context()).InfoContext(r.Context(), "inside")
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/goals/x", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inside, done map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inside))
	require.NoError(t, json.Unmarshal(lines[1], &done))
	assert.Equal(t, "req-42", inside[logger.FieldRequestID])
	assert.Equal(t, "WARN", done["level"])
	assert.Equal(t, float64(http.StatusNotFound), done[logger.FieldStatus])
	assert.Equal(t, "/api/goals/x", done[logger.FieldPath])
}

func TestLoggingGeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Output: &buf})
	rec := httptest.NewRecorder()
	Logging(base)(whoami()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Config{Output: &buf})
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Logging(base), Recover)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decode(t, rec).Message)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		h := CORS([]string{"https://app.example"})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://APP.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "https://APP.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin", func(t *testing.T) {
		h := CORS([]string{"https://app.example"})(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		h := CORS([]string{"*"})(next)
		req := httptest.NewRequest(http.MethodOptions, "/api/entries", nil)
		req.Header.Set("Origin", "https://any.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://any.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
