package session

import (
	"errors"
	"fmt"

	"github.com/Luiz-campos3/Onway-Monitor/internal/models"
)

// Status is the three-valued authentication status of a session.
type Status string

// View is the pre-login view selector.
type View string

const (
	StatusNone        Status = "none"
	StatusUserLogged  Status = "user_logged"
	StatusAdminLogged Status = "admin_logged"

	ViewLogin      View = "login"
	ViewAdminLogin View = "admin_login"
)

// ErrInvalidTransition rejects any move outside the documented table.
var ErrInvalidTransition = errors.New("session: invalid state transition")

// State is the per-session navigation/authentication state machine. User is
// set only while Status is user_logged.
type State struct {
	Status Status              `json:"status"`
	View   View                `json:"view"`
	User   *models.SessionUser `json:"user,omitempty"`
}

// NewState returns the initial state, always none/login.
func NewState() State {
	return State{Status: StatusNone, View: ViewLogin}
}

// LoginSucceeded moves none/login to user_logged carrying the matched user.
func (s *State) LoginSucceeded(user models.SessionUser) error {
	if s.Status != StatusNone || s.View != ViewLogin {
		return s.invalid("login")
	}
	s.Status = StatusUserLogged
	s.User = &user
	return nil
}

// GoAdminLogin moves none/login to none/admin_login.
func (s *State) GoAdminLogin() error {
	if s.Status != StatusNone || s.View != ViewLogin {
		return s.invalid("admin navigation")
	}
	s.View = ViewAdminLogin
	return nil
}

// AdminLoginSucceeded moves none/admin_login to admin_logged.
func (s *State) AdminLoginSucceeded() error {
	if s.Status != StatusNone || s.View != ViewAdminLogin {
		return s.invalid("admin login")
	}
	s.Status = StatusAdminLogged
	s.View = ViewLogin
	return nil
}

// Back moves none/admin_login back to none/login.
func (s *State) Back() error {
	if s.Status != StatusNone || s.View != ViewAdminLogin {
		return s.invalid("back navigation")
	}
	s.View = ViewLogin
	return nil
}

// Logout moves user_logged or admin_logged back to none/login and destroys
// the session user.
func (s *State) Logout() error {
	if s.Status != StatusUserLogged && s.Status != StatusAdminLogged {
		return s.invalid("logout")
	}
	s.Status = StatusNone
	s.View = ViewLogin
	s.User = nil
	return nil
}

func (s *State) invalid(action string) error {
	return fmt.Errorf("%w: %s from %s/%s", ErrInvalidTransition, action, s.Status, s.View)
}
