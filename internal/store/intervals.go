package store

import (
	"fmt"
	"time"
)

// SaveInterval appends one completed interval and returns its id. The calendar
// day is taken from start in start's own location.
func (s *Store) SaveInterval(userID int64, start, end time.Time, minutes int, kind Kind) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("save interval: %w", ErrUnknownKind)
	}
	if minutes < 0 {
		return 0, fmt.Errorf("save interval: %w", ErrInvalidDuration)
	}
	res, err := s.db.Exec(
		`INSERT INTO intervals (user_id, start_time, end_time, duration_minutes, kind, day)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, start.Format(time.RFC3339), end.Format(time.RFC3339), minutes, kind.String(), DateOf(start).String(),
	)
	if err != nil {
		return 0, fmt.Errorf("save interval: %w: %w", ErrPersistence, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save interval: %w: %w", ErrPersistence, err)
	}
	return id, nil
}

// SumDuration returns the total minutes of the user's intervals of kind on day.
func (s *Store) SumDuration(userID int64, kind Kind, day Date) (int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM intervals
		WHERE user_id = ? AND kind = ? AND day = ?`,
		userID, kind.String(), day.String(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum duration: %w: %w", ErrPersistence, err)
	}
	return total, nil
}

// CountIntervals returns how many intervals of kind the user completed on day.
func (s *Store) CountIntervals(userID int64, kind Kind, day Date) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM intervals
		WHERE user_id = ? AND kind = ? AND day = ?`,
		userID, kind.String(), day.String(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count intervals: %w: %w", ErrPersistence, err)
	}
	return n, nil
}

func (s *Store) ListIntervals(f IntervalFilter) ([]Interval, error) {
	query := `SELECT id, user_id, start_time, end_time, duration_minutes, kind, day FROM intervals WHERE 1=1`
	var args []any

	if f.UserID != nil {
		query += ` AND user_id = ?`
		args = append(args, *f.UserID)
	}
	if f.Kind != nil {
		query += ` AND kind = ?`
		args = append(args, f.Kind.String())
	}
	if f.From != nil {
		query += ` AND day >= ?`
		args = append(args, f.From.String())
	}
	if f.To != nil {
		query += ` AND day < ?`
		args = append(args, f.To.String())
	}
	query += ` ORDER BY start_time DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list intervals: %w: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var iv Interval
		var startTime, endTime, kind, day string
		if err := rows.Scan(&iv.ID, &iv.UserID, &startTime, &endTime, &iv.Minutes, &kind, &day); err != nil {
			return nil, fmt.Errorf("scan interval: %w: %w", ErrPersistence, err)
		}
		iv.StartTime, _ = time.Parse(time.RFC3339, startTime)
		iv.EndTime, _ = time.Parse(time.RFC3339, endTime)
		iv.Kind, _ = ParseKind(kind)
		iv.Day, _ = ParseDate(day)
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

// GetDailySummary aggregates minutes per day and kind for from <= day < to.
func (s *Store) GetDailySummary(userID int64, from, to Date) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT day, kind, COALESCE(SUM(duration_minutes), 0), COUNT(*)
		FROM intervals
		WHERE user_id = ? AND day >= ? AND day < ?
		GROUP BY day, kind
		ORDER BY day, kind`,
		userID, from.String(), to.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		var day, kind string
		if err := rows.Scan(&day, &kind, &ds.Minutes, &ds.Count); err != nil {
			return nil, err
		}
		ds.Date, _ = ParseDate(day)
		ds.Kind, _ = ParseKind(kind)
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}
