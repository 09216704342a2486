package handlers

import (
	"errors"
	"net/http"

	"github.com/Luiz-campos3/Onway-Monitor/internal/http/middleware"
	"github.com/Luiz-campos3/Onway-Monitor/internal/service"
	"github.com/Luiz-campos3/Onway-Monitor/internal/session"
)

type stateResponse struct {
	Status session.Status `json:"status"`
	View   session.View   `json:"view"`
	User   interface{}    `json:"user,omitempty"`
}

func stateBody(st session.State) stateResponse {
	resp := stateResponse{Status: st.Status, View: st.View}
	if st.User != nil {
		resp.User = st.User
	}
	return resp
}

// NewSessionOpenHandler handles POST /session: opens a fresh session in the
// initial none/login state and returns its bearer token.
func NewSessionOpenHandler(store session.Store, tokens *service.TokenService) http.HandlerFunc {
	type response struct {
		Token     string         `json:"token"`
		TokenType string         `json:"token_type"`
		Status    session.Status `json:"status"`
		View      session.View   `json:"view"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := session.NewID()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to open session")
			return
		}

		state := session.NewState()
		if err := store.Save(r.Context(), id, state); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to open session")
			return
		}

		token, err := tokens.GenerateToken(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to open session")
			return
		}

		writeJSON(w, http.StatusCreated, response{
			Token:     token,
			TokenType: "Bearer",
			Status:    state.Status,
			View:      state.View,
		})
	}
}

// NewSessionStateHandler handles GET /session: reports the current state and,
// while user-logged, the session user.
func NewSessionStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := middleware.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing session")
			return
		}
		writeJSON(w, http.StatusOK, stateBody(sc.State))
	}
}

// newTransitionHandler builds the shared shape of the pure navigation
// endpoints: load state, apply one transition, persist, echo the new state.
func newTransitionHandler(store session.Store, apply func(*session.State) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := middleware.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing session")
			return
		}

		state := sc.State
		if err := apply(&state); err != nil {
			if errors.Is(err, session.ErrInvalidTransition) {
				writeError(w, http.StatusConflict, "invalid transition")
				return
			}
			writeError(w, http.StatusInternalServerError, "transition failed")
			return
		}

		if err := store.Save(r.Context(), sc.ID, state); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to persist session")
			return
		}
		writeJSON(w, http.StatusOK, stateBody(state))
	}
}

// NewAdminViewHandler handles POST /session/admin-view: navigation from the
// login view to the administrative login view.
func NewAdminViewHandler(store session.Store) http.HandlerFunc {
	return newTransitionHandler(store, func(s *session.State) error { return s.GoAdminLogin() })
}

// NewBackHandler handles POST /session/back: back navigation to the login view.
func NewBackHandler(store session.Store) http.HandlerFunc {
	return newTransitionHandler(store, func(s *session.State) error { return s.Back() })
}

// NewLogoutHandler handles POST /auth/logout from either logged-in status.
func NewLogoutHandler(store session.Store) http.HandlerFunc {
	return newTransitionHandler(store, func(s *session.State) error { return s.Logout() })
}
