package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/sadopc/pomo/internal/tui"
)

var errMissingCredentials = errors.New("missing credentials")

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptForm is a test seam for the signup form.
var promptForm = tui.PromptCredentials

// credentials resolves the username and password from flags, then the
// environment, then an interactive prompt. Signup prompts use the form with a
// repeated password.
func (a *app) credentials(signup bool) (string, string, error) {
	user, pass := a.cfg.Username, a.cfg.Password
	if user != "" && pass != "" {
		return user, pass, nil
	}
	if !a.opts.Interactive {
		return "", "", errMissingCredentials
	}

	if signup {
		creds, err := promptForm("Create account", true, user)
		if err != nil {
			return "", "", fmt.Errorf("signup form: %w", err)
		}
		return creds.Username, creds.Password, nil
	}

	var err error
	if user == "" {
		user, err = readLine(a.in, "Username: ", a.out)
		if err != nil {
			return "", "", fmt.Errorf("read username: %w", err)
		}
	}
	if pass == "" {
		pw, err := readSecret(a.out)
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		pass = string(pw)
	}
	if user == "" || pass == "" {
		return "", "", errMissingCredentials
	}
	return user, pass, nil
}

// readLine prints prompt and reads one trimmed line. A final line without a
// newline is accepted.
func readLine(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a password from the terminal without echo.
func readSecret(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
