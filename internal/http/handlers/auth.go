package handlers

import (
	"net/http"

	"github.com/hongminglow/budget-be/internal/auth"
	"github.com/hongminglow/budget-be/internal/http/respond"
	"github.com/hongminglow/budget-be/internal/models/dto"
)

// AuthHandler owns register/login/logout/me.
type AuthHandler struct {
	svc   *auth.Service
	guard Middleware
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service, guard Middleware) *AuthHandler {
	return &AuthHandler{svc: svc, guard: guard}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.Handle("POST /api/auth/logout", protected(h.guard, h.handleLogout))
	mux.Handle("GET /api/auth/me", protected(h.guard, h.handleMe))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "User registered successfully", dto.UserResponse{User: user})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Login successful", dto.LoginResponse{Token: sess.Token, User: sess.User})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context())
	respond.JSON(w, http.StatusOK, "Logged out successfully. Please discard your token.", nil)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	user, err := h.svc.CurrentUser(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "OK", user)
}
