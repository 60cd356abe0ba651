package auth

import (
	"errors"
	"log/slog"

	"github.com/mesh-intelligence/shipmgr/pkg/types"
)

// State is the login state of a Session.
type State int

// Session states. The only transition out of LoggedOut is a successful
// Login; Logout returns to LoggedOut. There is no expiry.
const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// Authenticator verifies credentials. types.UserTable satisfies it.
type Authenticator interface {
	Authenticate(username, password string) (*types.User, error)
}

// Session tracks who is logged in to an interactive surface.
type Session struct {
	auth   Authenticator
	logger *slog.Logger
	user   *types.User
}

// NewSession returns a LoggedOut session. A nil logger discards output.
func NewSession(a Authenticator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{auth: a, logger: logger}
}

// State returns the current state.
func (s *Session) State() State {
	if s.user == nil {
		return LoggedOut
	}
	return LoggedIn
}

// User returns the logged-in user, or nil.
func (s *Session) User() *types.User {
	return s.user
}

// Login authenticates and moves to LoggedIn. On failure the session stays
// (or becomes) LoggedOut and the error is returned unchanged.
func (s *Session) Login(username, password string) error {
	u, err := s.auth.Authenticate(username, password)
	if err != nil {
		s.user = nil
		if errors.Is(err, types.ErrInvalidCredentials) {
			s.logger.Warn("failed login attempt", "username", username)
		}
		return err
	}
	s.user = u
	s.logger.Info("user logged in", "username", u.Username)
	return nil
}

// Logout moves to LoggedOut. Idempotent.
func (s *Session) Logout() {
	if s.user != nil {
		s.logger.Info("user logged out", "username", s.user.Username)
	}
	s.user = nil
}

// Require returns the logged-in user or types.ErrNotLoggedIn.
func (s *Session) Require() (*types.User, error) {
	if s.user == nil {
		return nil, types.ErrNotLoggedIn
	}
	return s.user, nil
}
