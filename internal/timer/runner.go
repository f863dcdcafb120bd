package timer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/pomo/internal/clock"
	"github.com/sadopc/pomo/internal/session"
	"github.com/sadopc/pomo/internal/stats"
	"github.com/sadopc/pomo/internal/store"
)

var (
	// ErrAborted means the countdown was interrupted; nothing was recorded.
	ErrAborted        = errors.New("interval aborted")
	ErrInvalidMinutes = errors.New("minutes must be positive")
	ErrInvalidGoal    = errors.New("goal must not be negative")
)

// Display shows a countdown and returns once d has elapsed. It returns
// ErrAborted (or ctx.Err()) when the user interrupts it.
type Display interface {
	Countdown(ctx context.Context, d time.Duration, label string) error
}

// Notifier signals the end of an interval.
type Notifier interface {
	Notify() error
}

type NotifierFunc func() error

func (f NotifierFunc) Notify() error { return f() }

// Recorder persists completed intervals.
type Recorder interface {
	SaveInterval(userID int64, start, end time.Time, minutes int, kind store.Kind) (int64, error)
}

// Logbook mirrors completed intervals to the plain-text log.
type Logbook interface {
	Append(iv store.Interval, username string) error
}

type Progress interface {
	GoalProgress(userID int64, goal int, today store.Date) (stats.Progress, error)
}

type Request struct {
	Kind    store.Kind
	Minutes int
	// Goal is the daily Work target; 0 means no goal.
	Goal int
}

type Result struct {
	Interval store.Interval
	// Progress is nil unless a Work interval ran with a goal.
	Progress *stats.Progress
}

type Runner struct {
	Display  Display
	Notifier Notifier
	Recorder Recorder
	Stats    Progress
	// Logbook is optional.
	Logbook Logbook
	Clock   clock.Clock
	Log     zerolog.Logger
}

// Run counts down one interval for the session's user and records it.
func (r *Runner) Run(ctx context.Context, sess *session.Session, req Request) (*Result, error) {
	user, err := sess.RequireUser()
	if err != nil {
		return nil, err
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("run interval: %w", store.ErrUnknownKind)
	}
	if req.Minutes <= 0 {
		return nil, fmt.Errorf("run %s interval: %w", req.Kind, ErrInvalidMinutes)
	}
	if req.Goal < 0 {
		return nil, fmt.Errorf("run %s interval: %w", req.Kind, ErrInvalidGoal)
	}

	log := r.Log.With().Int64("user_id", user.ID).Str("kind", req.Kind.String()).Logger()
	planned := time.Duration(req.Minutes) * time.Minute

	start := r.Clock.Now()
	log.Info().Int("minutes", req.Minutes).Msg("interval started")

	if err := r.Display.Countdown(ctx, planned, req.Kind.String()); err != nil {
		log.Warn().Err(err).Msg("interval aborted, not recorded")
		if errors.Is(err, ErrAborted) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAborted, err)
	}
	end := r.Clock.Now()

	if r.Notifier != nil {
		if err := r.Notifier.Notify(); err != nil {
			log.Warn().Err(err).Msg("notification failed")
		}
	}

	minutes := ElapsedMinutes(start, end, req.Minutes)
	id, err := r.Recorder.SaveInterval(user.ID, start, end, minutes, req.Kind)
	if err != nil {
		log.Error().Err(err).
			Time("start", start).
			Time("end", end).
			Int("minutes", minutes).
			Msg("interval lost: save failed")
		return nil, fmt.Errorf("record %s interval: %w", req.Kind, err)
	}

	res := &Result{Interval: store.Interval{
		ID:        id,
		UserID:    user.ID,
		StartTime: start,
		EndTime:   end,
		Minutes:   minutes,
		Kind:      req.Kind,
		Day:       store.DateOf(start),
	}}
	log.Info().Int64("interval_id", id).Int("minutes", minutes).Msg("interval recorded")

	if r.Logbook != nil {
		if err := r.Logbook.Append(res.Interval, user.Username); err != nil {
			log.Warn().Err(err).Msg("logbook append failed")
		}
	}

	if req.Kind == store.Work && req.Goal > 0 {
		p, err := r.Stats.GoalProgress(user.ID, req.Goal, store.DateOf(start))
		if err != nil {
			return res, fmt.Errorf("goal progress: %w", err)
		}
		res.Progress = &p
	}
	return res, nil
}

// ElapsedMinutes is the whole minutes between start and end. The requested
// minutes are used when no full minute was measured.
func ElapsedMinutes(start, end time.Time, requested int) int {
	measured := int(end.Sub(start) / time.Minute)
	if measured < 1 {
		return requested
	}
	return measured
}
