package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

type Credentials struct {
	Username string
	Password string
}

// newCredentialsForm builds the login form, or the signup form when confirm is
// set. Values are written into the returned Credentials.
func newCredentialsForm(title string, confirm bool, preset string) (*huh.Form, *Credentials, *string) {
	creds := &Credentials{Username: preset}
	repeat := new(string)

	fields := []huh.Field{
		huh.NewInput().Title("Username").Value(&creds.Username).Validate(requireNonBlank("username")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&creds.Password).Validate(requireNonBlank("password")),
	}
	if confirm {
		fields = append(fields, huh.NewInput().Title("Repeat password").EchoMode(huh.EchoModePassword).Value(repeat).
			Validate(func(s string) error {
				if s != creds.Password {
					return ErrPasswordMismatch
				}
				return nil
			}))
	}

	form := huh.NewForm(huh.NewGroup(fields...).Title(title)).WithShowErrors(true)
	return form, creds, repeat
}

// PromptCredentials asks for a username and password on the terminal.
func PromptCredentials(title string, confirm bool, presetUsername string) (Credentials, error) {
	form, creds, _ := newCredentialsForm(title, confirm, presetUsername)
	if err := form.Run(); err != nil {
		return Credentials{}, err
	}
	return *creds, nil
}

func requireNonBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
