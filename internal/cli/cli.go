// Package cli is the pomo command surface: it parses flags, resolves
// credentials and minutes, and drives the account directory, session and
// interval runner.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sadopc/pomo/internal/account"
	"github.com/sadopc/pomo/internal/clock"
	"github.com/sadopc/pomo/internal/config"
	"github.com/sadopc/pomo/internal/session"
	"github.com/sadopc/pomo/internal/stats"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/timer"
	"github.com/sadopc/pomo/internal/tui"
)

const usage = `Usage: pomo [flags] <command> [flags]

Commands:
  signup     create an account
  work       run a work interval (default 25 minutes)
  break      run a break interval (default 5 minutes)
  stats      show today's totals and the last seven days
  export     write your intervals to a CSV or JSON file
  settings   show settings, or set them with key=value arguments

Flags:
`

var errUsage = errors.New("usage")

// Options wires the process environment into a run.
type Options struct {
	Config *config.Config
	Log    zerolog.Logger
	Clock  clock.Clock
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Interactive is set when stdin and stdout are terminals.
	Interactive bool
	Width       int
	// Display replaces the countdown display chosen from Interactive.
	Display timer.Display
}

type flags struct {
	minutes  int
	goal     int
	username string
	password string
	csvLog   string
	dbPath   string
	format   string
	output   string

	set map[string]bool
}

func (f *flags) given(names ...string) bool {
	for _, n := range names {
		if f.set[n] {
			return true
		}
	}
	return false
}

func newFlagSet(f *flags, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pomo", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}

	fs.IntVar(&f.minutes, "m", 0, "interval length in minutes")
	fs.IntVar(&f.minutes, "minutes", 0, "interval length in minutes")
	fs.IntVar(&f.goal, "g", 0, "daily goal in work intervals (0 for none)")
	fs.IntVar(&f.goal, "goal", 0, "daily goal in work intervals (0 for none)")
	fs.StringVar(&f.username, "u", "", "username")
	fs.StringVar(&f.username, "user", "", "username")
	fs.StringVar(&f.password, "p", "", "password")
	fs.StringVar(&f.password, "password", "", "password")
	fs.StringVar(&f.csvLog, "csv", "", "append finished intervals to this CSV file")
	fs.StringVar(&f.dbPath, "db", "", "database path")
	fs.StringVar(&f.format, "format", "csv", "export format: csv or json")
	fs.StringVar(&f.output, "o", "", "export file (default pomo-export.<format>)")
	return fs
}

// parseArgs accepts flags both before and after the command.
func parseArgs(args []string, out io.Writer) (string, []string, *flags, error) {
	f := &flags{set: map[string]bool{}}
	fs := newFlagSet(f, out)

	if err := fs.Parse(args); err != nil {
		return "", nil, nil, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return "", nil, nil, errUsage
	}
	cmd := rest[0]

	var operands []string
	remaining := rest[1:]
	for len(remaining) > 0 {
		if err := fs.Parse(remaining); err != nil {
			return "", nil, nil, err
		}
		remaining = fs.Args()
		if len(remaining) > 0 {
			operands = append(operands, remaining[0])
			remaining = remaining[1:]
		}
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return cmd, operands, f, nil
}

type app struct {
	opts  Options
	cfg   config.Config
	flags *flags

	store *store.Store
	dir   *account.Directory
	stats *stats.Engine
	sess  *session.Session
	log   zerolog.Logger

	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

// Run executes one pomo command and returns the process exit code.
func Run(ctx context.Context, args []string, opts Options) int {
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	if opts.Stdin == nil {
		opts.Stdin = strings.NewReader("")
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	cmd, operands, f, err := parseArgs(args, opts.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}

	a := &app{
		opts:  opts,
		cfg:   *opts.Config,
		flags: f,
		log:   opts.Log.With().Str("command", cmd).Logger(),
		in:    bufio.NewReader(opts.Stdin),
		out:   opts.Stdout,
		err:   opts.Stderr,
	}
	a.applyFlags()

	handler, ok := a.commands()[cmd]
	if !ok {
		fmt.Fprintln(a.err, tui.ErrorMessage(fmt.Sprintf("unknown command %q", cmd)))
		fmt.Fprint(a.err, usage)
		return 1
	}

	if err := a.open(); err != nil {
		a.log.Error().Err(err).Str("db", a.cfg.DBPath).Msg("open store failed")
		fmt.Fprintln(a.err, tui.ErrorMessage(err.Error()))
		return 1
	}
	defer a.close()

	a.log.Debug().Strs("operands", operands).Msg("running command")
	if err := handler(ctx, operands); err != nil {
		a.report(err)
		return 1
	}
	return 0
}

func (a *app) commands() map[string]func(context.Context, []string) error {
	return map[string]func(context.Context, []string) error{
		"signup":   a.signup,
		"work":     a.work,
		"break":    a.takeBreak,
		"stats":    a.showStats,
		"export":   a.export,
		"settings": a.settings,
	}
}

func (a *app) applyFlags() {
	if a.flags.dbPath != "" {
		a.cfg.DBPath = a.flags.dbPath
	}
	if a.flags.csvLog != "" {
		a.cfg.CSVLogPath = a.flags.csvLog
	}
	if a.flags.username != "" {
		a.cfg.Username = a.flags.username
	}
	if a.flags.password != "" {
		a.cfg.Password = a.flags.password
	}
}

func (a *app) open() error {
	s, err := store.New(a.cfg.DBPath)
	if err != nil {
		return err
	}
	a.store = s
	a.dir = account.NewDirectory(s, a.log)
	a.stats = stats.NewEngine(s)
	a.sess = session.New()
	return nil
}

// close logs out any session and releases the store.
func (a *app) close() {
	if u, ok := a.sess.Current(); ok {
		if err := a.sess.LogOut(); err == nil {
			a.log.Debug().Str("username", u.Username).Msg("logged out")
		}
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close store")
	}
}

// report prints err in user terms.
func (a *app) report(err error) {
	var msg string
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		msg = "Invalid username or password."
	case errors.Is(err, account.ErrDuplicateUsername):
		msg = fmt.Sprintf("Username %q already exists.", a.cfg.Username)
	case errors.Is(err, errMissingCredentials):
		msg = "A username and password are required (use -u/-p, POMO_USER/POMO_PASSWORD, or run in a terminal)."
	case errors.Is(err, store.ErrPersistence):
		msg = "Could not save to the database: " + err.Error()
	case errors.Is(err, errUsage):
		msg = strings.TrimPrefix(err.Error(), errUsage.Error()+": ") + " (see pomo -h)"
	default:
		msg = err.Error()
	}
	fmt.Fprintln(a.err, tui.ErrorMessage(msg))
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintln(a.out, tui.Message(fmt.Sprintf(format, args...)))
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, strings.TrimSuffix(word, "s"))
}
