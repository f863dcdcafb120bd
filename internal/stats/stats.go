package stats

import (
	"fmt"

	"github.com/sadopc/pomo/internal/store"
)

// Source is the slice of the record store the engine reads from.
type Source interface {
	SumDuration(userID int64, kind store.Kind, day store.Date) (int, error)
	CountIntervals(userID int64, kind store.Kind, day store.Date) (int, error)
	GetDailySummary(userID int64, from, to store.Date) ([]store.DailySummary, error)
}

type Engine struct {
	src Source
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// Progress is the number of Work intervals completed today against a goal.
type Progress struct {
	Completed int
	Goal      int
	Reached   bool
}

// Day holds the minutes of each kind recorded on one date.
type Day struct {
	Date         store.Date
	WorkMinutes  int
	BreakMinutes int
	WorkCount    int
}

func (e *Engine) DailyTotal(userID int64, kind store.Kind, today store.Date) (int, error) {
	total, err := e.src.SumDuration(userID, kind, today)
	if err != nil {
		return 0, fmt.Errorf("daily total: %w", err)
	}
	return total, nil
}

// GoalProgress compares today's Work count with goal as given; a goal of 0 is
// reached immediately.
func (e *Engine) GoalProgress(userID int64, goal int, today store.Date) (Progress, error) {
	n, err := e.src.CountIntervals(userID, store.Work, today)
	if err != nil {
		return Progress{}, fmt.Errorf("goal progress: %w", err)
	}
	return Progress{Completed: n, Goal: goal, Reached: n >= goal}, nil
}

// Week returns the seven days ending with today, oldest first. Days without
// records are present with zero minutes.
func (e *Engine) Week(userID int64, today store.Date) ([]Day, error) {
	from := today.AddDays(-6)
	summaries, err := e.src.GetDailySummary(userID, from, today.AddDays(1))
	if err != nil {
		return nil, fmt.Errorf("week: %w", err)
	}

	days := make([]Day, 7)
	index := make(map[store.Date]int, 7)
	for i := range days {
		days[i].Date = from.AddDays(i)
		index[days[i].Date] = i
	}
	for _, s := range summaries {
		i, ok := index[s.Date]
		if !ok {
			continue
		}
		switch s.Kind {
		case store.Work:
			days[i].WorkMinutes += s.Minutes
			days[i].WorkCount += s.Count
		case store.Break:
			days[i].BreakMinutes += s.Minutes
		}
	}
	return days, nil
}
