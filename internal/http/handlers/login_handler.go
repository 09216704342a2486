package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Luiz-campos3/Onway-Monitor/internal/http/middleware"
	"github.com/Luiz-campos3/Onway-Monitor/internal/service"
	"github.com/Luiz-campos3/Onway-Monitor/internal/session"
)

// NewLoginHandler handles POST /auth/login: the end-user credential check.
// Failures keep the session state untouched.
func NewLoginHandler(authService *service.AuthService, store session.Store) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := middleware.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing session")
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		user, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrBackendUnavailable):
				writeError(w, http.StatusServiceUnavailable, "connection failed")
			case errors.Is(err, service.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "invalid credentials")
			default:
				writeError(w, http.StatusInternalServerError, "failed to login")
			}
			return
		}

		state := sc.State
		if err := state.LoginSucceeded(*user); err != nil {
			writeError(w, http.StatusConflict, "invalid transition")
			return
		}
		if err := store.Save(r.Context(), sc.ID, state); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to persist session")
			return
		}

		writeJSON(w, http.StatusOK, stateBody(state))
	}
}

// NewAdminLoginHandler handles POST /auth/admin/login. The gate is the
// configured administrator credential pair; without it the administrative
// area stays closed.
func NewAdminLoginHandler(authService *service.AuthService, store session.Store) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := middleware.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing session")
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := authService.AdminLogin(r.Context(), req.Email, req.Password); err != nil {
			switch {
			case errors.Is(err, service.ErrAdminDisabled):
				writeError(w, http.StatusForbidden, "admin access not configured")
			case errors.Is(err, service.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "invalid credentials")
			default:
				writeError(w, http.StatusInternalServerError, "failed to login")
			}
			return
		}

		state := sc.State
		if err := state.AdminLoginSucceeded(); err != nil {
			writeError(w, http.StatusConflict, "invalid transition")
			return
		}
		if err := store.Save(r.Context(), sc.ID, state); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to persist session")
			return
		}

		writeJSON(w, http.StatusOK, stateBody(state))
	}
}
