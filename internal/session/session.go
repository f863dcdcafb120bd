// Package session holds the identity authenticated for the lifetime of the
// process. A Session is an explicit value; callers pass it to whatever needs
// to know who is logged in.
package session

import (
	"errors"

	"github.com/sadopc/pomo/internal/store"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoActiveSession  = errors.New("no active session")
)

// Session is either anonymous or authenticated as exactly one user.
// The zero value is anonymous and ready to use.
type Session struct {
	user *store.User
}

func New() *Session {
	return &Session{}
}

// LogIn replaces any current user; the last login wins.
func (s *Session) LogIn(u *store.User) {
	s.user = u
}

func (s *Session) LogOut() error {
	if s.user == nil {
		return ErrNoActiveSession
	}
	s.user = nil
	return nil
}

// RequireUser guards interval recording and stats.
func (s *Session) RequireUser() (*store.User, error) {
	if s.user == nil {
		return nil, ErrNotAuthenticated
	}
	return s.user, nil
}

func (s *Session) Current() (*store.User, bool) {
	return s.user, s.user != nil
}
