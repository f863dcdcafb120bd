// Package account resolves usernames and credentials to stored users.
//
// Errors returned by Directory wrap one of the sentinels below and should be
// matched with errors.Is:
//
//	switch {
//	case errors.Is(err, account.ErrInvalidCredentials):
//	    // wrong username or credential
//	case errors.Is(err, store.ErrPersistence):
//	    // database unavailable
//	}
package account

import "errors"

var (
	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials indicates no account matches both username and credential.
	ErrInvalidCredentials = errors.New("invalid username or credential")
)
