package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/pomo/internal/store"
)

func setup(t *testing.T) (*store.Store, *Engine) {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, NewEngine(s)
}

func saveWork(t *testing.T, s *store.Store, userID int64, start time.Time, minutes int) {
	t.Helper()
	_, err := s.SaveInterval(userID, start, start.Add(time.Duration(minutes)*time.Minute), minutes, store.Work)
	require.NoError(t, err)
}

func TestDailyTotalAndGoalScenario(t *testing.T) {
	s, e := setup(t)
	alice, err := s.CreateUser("alice", "pw1")
	require.NoError(t, err)

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)
	today := store.DateOf(now)
	for i := 0; i < 3; i++ {
		saveWork(t, s, alice.ID, now.Add(time.Duration(i)*30*time.Minute), 25)
	}

	total, err := e.DailyTotal(alice.ID, store.Work, today)
	require.NoError(t, err)
	assert.Equal(t, 75, total)

	p, err := e.GoalProgress(alice.ID, 4, today)
	require.NoError(t, err)
	assert.Equal(t, Progress{Completed: 3, Goal: 4, Reached: false}, p)

	saveWork(t, s, alice.ID, now.Add(2*time.Hour), 25)
	p, err = e.GoalProgress(alice.ID, 4, today)
	require.NoError(t, err)
	assert.Equal(t, Progress{Completed: 4, Goal: 4, Reached: true}, p)
}

func TestDailyTotalNoRecords(t *testing.T) {
	s, e := setup(t)
	u, err := s.CreateUser("alice", "pw")
	require.NoError(t, err)

	total, err := e.DailyTotal(u.ID, store.Work, store.DateOf(time.Now()))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDailyTotalIsolatesUsers(t *testing.T) {
	s, e := setup(t)
	alice, _ := s.CreateUser("alice", "pw")
	bob, _ := s.CreateUser("bob", "pw")

	now := time.Now()
	saveWork(t, s, alice.ID, now, 25)
	saveWork(t, s, bob.ID, now, 50)
	saveWork(t, s, bob.ID, now, 50)

	total, err := e.DailyTotal(alice.ID, store.Work, store.DateOf(now))
	require.NoError(t, err)
	assert.Equal(t, 25, total)
}

func TestGoalProgressZeroGoal(t *testing.T) {
	s, e := setup(t)
	u, _ := s.CreateUser("alice", "pw")

	p, err := e.GoalProgress(u.ID, 0, store.DateOf(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, Progress{Completed: 0, Goal: 0, Reached: true}, p)
}

func TestGoalProgressIgnoresBreaks(t *testing.T) {
	s, e := setup(t)
	u, _ := s.CreateUser("alice", "pw")
	now := time.Now()
	_, err := s.SaveInterval(u.ID, now, now.Add(5*time.Minute), 5, store.Break)
	require.NoError(t, err)

	p, err := e.GoalProgress(u.ID, 1, store.DateOf(now))
	require.NoError(t, err)
	assert.Zero(t, p.Completed)
	assert.False(t, p.Reached)
}

func TestWeekZeroFilled(t *testing.T) {
	s, e := setup(t)
	u, _ := s.CreateUser("alice", "pw")

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)
	today := store.DateOf(now)
	saveWork(t, s, u.ID, now, 25)
	saveWork(t, s, u.ID, now.AddDate(0, 0, -3), 50)
	saveWork(t, s, u.ID, now.AddDate(0, 0, -10), 99) // outside the window
	_, err := s.SaveInterval(u.ID, now, now.Add(5*time.Minute), 5, store.Break)
	require.NoError(t, err)

	days, err := e.Week(u.ID, today)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, today.AddDays(-6), days[0].Date)
	assert.Equal(t, today, days[6].Date)
	assert.Equal(t, 25, days[6].WorkMinutes)
	assert.Equal(t, 1, days[6].WorkCount)
	assert.Equal(t, 5, days[6].BreakMinutes)
	assert.Equal(t, 50, days[3].WorkMinutes)

	total := 0
	for _, d := range days {
		total += d.WorkMinutes
	}
	assert.Equal(t, 75, total)
}
