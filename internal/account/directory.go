package account

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sadopc/pomo/internal/store"
)

// Users is the part of the store the directory needs.
type Users interface {
	CreateUser(username, credential string) (*store.User, error)
	FindUserByCredentials(username, credential string) (*store.User, error)
}

// Directory creates and authenticates accounts. Credentials are compared
// exactly as stored.
type Directory struct {
	users Users
	log   zerolog.Logger
}

func NewDirectory(users Users, log zerolog.Logger) *Directory {
	return &Directory{
		users: users,
		log:   log.With().Str("component", "account").Logger(),
	}
}

// CreateAccount registers username. Usernames are case-sensitive.
func (d *Directory) CreateAccount(username, credential string) (*store.User, error) {
	u, err := d.users.CreateUser(username, credential)
	if errors.Is(err, store.ErrUsernameTaken) {
		d.log.Info().Str("username", username).Msg("signup rejected: duplicate username")
		return nil, fmt.Errorf("create account %q: %w", username, ErrDuplicateUsername)
	}
	if err != nil {
		d.log.Error().Err(err).Str("username", username).Msg("signup failed")
		return nil, fmt.Errorf("create account %q: %w", username, err)
	}
	d.log.Info().Int64("user_id", u.ID).Str("username", username).Msg("account created")
	return u, nil
}

func (d *Directory) Authenticate(username, credential string) (*store.User, error) {
	u, err := d.users.FindUserByCredentials(username, credential)
	if errors.Is(err, store.ErrNotFound) {
		d.log.Info().Str("username", username).Msg("authentication failed")
		return nil, fmt.Errorf("authenticate %q: %w", username, ErrInvalidCredentials)
	}
	if err != nil {
		d.log.Error().Err(err).Str("username", username).Msg("authentication lookup failed")
		return nil, fmt.Errorf("authenticate %q: %w", username, err)
	}
	return u, nil
}
