package store

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPersistence wraps any failure of the underlying database.
	ErrPersistence = errors.New("persistence error")

	ErrNotFound        = errors.New("not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUnknownKind     = errors.New("unknown interval kind")
	ErrInvalidDuration = errors.New("duration must not be negative")
)

// Kind is the type of a timed interval.
type Kind int

const (
	Work Kind = iota + 1
	Break
)

func (k Kind) String() string {
	switch k {
	case Work:
		return "Work"
	case Break:
		return "Break"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k == Work || k == Break
}

// ParseKind accepts the stored spelling ("Work") and the command spelling ("work").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Work", "work":
		return Work, nil
	case "Break", "break":
		return Break, nil
	}
	return 0, fmt.Errorf("parse kind %q: %w", s, ErrUnknownKind)
}

const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays normalizes overflow, so Date{2024, 1, 31}.AddDays(1) is February 1st.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

func (d Date) Before(o Date) bool {
	return d.String() < o.String()
}

type User struct {
	ID         int64
	Username   string
	Credential string
	CreatedAt  time.Time
}

type Interval struct {
	ID        int64
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	Minutes   int
	Kind      Kind
	Day       Date
}

type Setting struct {
	Key   string
	Value string
}

// IntervalFilter is used to filter intervals in queries.
type IntervalFilter struct {
	UserID *int64
	Kind   *Kind
	From   *Date // inclusive
	To     *Date // exclusive
	Limit  int
}

// DailySummary represents aggregated minutes per kind per day.
type DailySummary struct {
	Date    Date
	Kind    Kind
	Minutes int
	Count   int
}
