package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sadopc/pomo/internal/export"
	"github.com/sadopc/pomo/internal/stats"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/timer"
	"github.com/sadopc/pomo/internal/tui"
)

const (
	defaultWorkMinutes  = 25
	defaultBreakMinutes = 5
	defaultDailyGoal    = 4
)

// settingMinimums lists the settings that can be changed and their lowest
// accepted value.
var settingMinimums = map[string]int{
	"work_minutes":  1,
	"break_minutes": 1,
	"daily_goal":    0,
}

func (a *app) signup(_ context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("signup takes no arguments")
	}
	user, pass, err := a.credentials(true)
	if err != nil {
		return err
	}
	a.cfg.Username = user

	u, err := a.dir.CreateAccount(user, pass)
	if err != nil {
		return err
	}
	a.printf("User %q created.", u.Username)
	return nil
}

// login authenticates and opens the session. It is called once per command.
func (a *app) login() (*store.User, error) {
	user, pass, err := a.credentials(false)
	if err != nil {
		return nil, err
	}
	u, err := a.dir.Authenticate(user, pass)
	if err != nil {
		return nil, err
	}
	a.sess.LogIn(u)
	a.log = a.log.With().Int64("user_id", u.ID).Logger()
	a.log.Debug().Str("username", u.Username).Msg("logged in")
	return u, nil
}

func (a *app) work(ctx context.Context, args []string) error {
	return a.runInterval(ctx, args, store.Work)
}

func (a *app) takeBreak(ctx context.Context, args []string) error {
	return a.runInterval(ctx, args, store.Break)
}

// minutesFor resolves the interval length: flag, then config, then the
// settings table.
func (a *app) minutesFor(kind store.Kind) int {
	if a.flags.given("m", "minutes") {
		return a.flags.minutes
	}
	if kind == store.Work {
		if a.cfg.WorkMinutes > 0 {
			return a.cfg.WorkMinutes
		}
		return a.store.GetIntSetting("work_minutes", defaultWorkMinutes)
	}
	if a.cfg.BreakMinutes > 0 {
		return a.cfg.BreakMinutes
	}
	return a.store.GetIntSetting("break_minutes", defaultBreakMinutes)
}

func (a *app) dailyGoal() int {
	if a.flags.given("g", "goal") {
		return a.flags.goal
	}
	if a.cfg.DailyGoal > 0 {
		return a.cfg.DailyGoal
	}
	return a.store.GetIntSetting("daily_goal", defaultDailyGoal)
}

func (a *app) display(progress *stats.Progress) timer.Display {
	if a.opts.Display != nil {
		return a.opts.Display
	}
	if a.opts.Interactive {
		return &tui.CountdownDisplay{Clock: a.opts.Clock, Progress: progress}
	}
	return &timer.TextDisplay{Out: a.out, Clock: a.opts.Clock}
}

func (a *app) runInterval(ctx context.Context, args []string, kind store.Kind) error {
	if len(args) > 0 {
		return usageError("%s takes no arguments", strings.ToLower(kind.String()))
	}
	minutes, goal := a.minutesFor(kind), a.dailyGoal()
	if minutes <= 0 {
		return usageError("%v", timer.ErrInvalidMinutes)
	}
	if goal < 0 {
		return usageError("%v", timer.ErrInvalidGoal)
	}

	user, err := a.login()
	if err != nil {
		return err
	}
	today := store.DateOf(a.opts.Clock.Now())

	var before *stats.Progress
	if kind == store.Work && goal > 0 {
		p, err := a.stats.GoalProgress(user.ID, goal, today)
		if err != nil {
			a.log.Warn().Err(err).Msg("load goal progress")
		} else {
			before = &p
		}
	}

	runner := &timer.Runner{
		Display:  a.display(before),
		Notifier: timer.BellNotifier{Out: a.out},
		Recorder: a.store,
		Stats:    a.stats,
		Clock:    a.opts.Clock,
		Log:      a.log,
	}
	if a.cfg.CSVLogPath != "" {
		runner.Logbook = export.NewLogbook(a.cfg.CSVLogPath)
	}

	res, err := runner.Run(ctx, a.sess, timer.Request{Kind: kind, Minutes: minutes, Goal: goal})
	if errors.Is(err, timer.ErrAborted) {
		a.printf("%s session aborted, nothing was recorded.", kind)
		return nil
	}
	if err != nil {
		return err
	}

	a.printf("Recorded %s of %s.", plural(res.Interval.Minutes, "minute"), kind)
	if kind == store.Work {
		total, err := a.stats.DailyTotal(user.ID, store.Work, res.Interval.Day)
		if err != nil {
			a.log.Warn().Err(err).Msg("load daily total")
		} else {
			a.printf("Total work time today: %s.", plural(total, "minute"))
		}
	}
	if p := res.Progress; p != nil {
		if p.Reached {
			a.printf("Daily goal reached! (%d/%d)", p.Completed, p.Goal)
		} else {
			a.printf("Daily goal: %d/%d work intervals.", p.Completed, p.Goal)
		}
	}
	return nil
}

func (a *app) showStats(_ context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("stats takes no arguments")
	}
	goal := a.dailyGoal()
	if goal < 0 {
		return usageError("%v", timer.ErrInvalidGoal)
	}

	user, err := a.login()
	if err != nil {
		return err
	}
	today := store.DateOf(a.opts.Clock.Now())

	work, err := a.stats.DailyTotal(user.ID, store.Work, today)
	if err != nil {
		return err
	}
	brk, err := a.stats.DailyTotal(user.ID, store.Break, today)
	if err != nil {
		return err
	}
	week, err := a.stats.Week(user.ID, today)
	if err != nil {
		return err
	}

	view := tui.StatsView{
		Username:     user.Username,
		Today:        today,
		WorkMinutes:  work,
		BreakMinutes: brk,
		Week:         week,
		Width:        a.opts.Width,
	}
	if goal > 0 {
		p, err := a.stats.GoalProgress(user.ID, goal, today)
		if err != nil {
			return err
		}
		view.Progress = &p
	}

	a.printf("Total work time today: %s.", plural(work, "minute"))
	fmt.Fprintln(a.out, tui.RenderStats(view))
	return nil
}

func (a *app) export(_ context.Context, args []string) error {
	if len(args) > 0 {
		return usageError("export takes no arguments")
	}
	format := strings.ToLower(a.flags.format)
	if format != "csv" && format != "json" {
		return usageError("unknown export format %q", a.flags.format)
	}

	user, err := a.login()
	if err != nil {
		return err
	}
	intervals, err := a.store.ListIntervals(store.IntervalFilter{UserID: &user.ID})
	if err != nil {
		return err
	}

	path := a.flags.output
	if path == "" {
		path = "pomo-export." + format
	}
	if format == "json" {
		err = export.ToJSON(intervals, user.Username, path)
	} else {
		err = export.ToCSV(intervals, user.Username, path)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	a.log.Info().Str("path", path).Int("count", len(intervals)).Msg("exported intervals")
	a.printf("Exported %s to %s.", plural(len(intervals), "interval"), path)
	return nil
}

// settings lists the settings table. key=value arguments are validated and
// stored first; with no arguments on a terminal the settings form is shown.
func (a *app) settings(_ context.Context, args []string) error {
	updates := make([][2]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return usageError("settings expects key=value, got %q", arg)
		}
		lowest, known := settingMinimums[key]
		if !known {
			return usageError("unknown setting %q", key)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < lowest {
			return usageError("%s must be a whole number of at least %d", key, lowest)
		}
		updates = append(updates, [2]string{key, strconv.Itoa(n)})
	}

	if len(args) == 0 && a.opts.Interactive {
		err := tui.EditSettings(a.store)
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("settings form: %w", err)
		}
	}

	for _, u := range updates {
		if err := a.store.SetSetting(u[0], u[1]); err != nil {
			return fmt.Errorf("save setting %q: %w", u[0], err)
		}
		a.log.Info().Str("key", u[0]).Str("value", u[1]).Msg("setting updated")
	}

	all, err := a.store.GetAllSettings()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, tui.RenderSettings(all))
	return nil
}
