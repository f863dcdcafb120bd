package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

func ToCSV(intervals []store.Interval, username, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "User", "Kind", "Day", "Start", "End", "Minutes", "Duration"}); err != nil {
		return err
	}

	for _, iv := range intervals {
		row := []string{
			strconv.FormatInt(iv.ID, 10),
			username,
			iv.Kind.String(),
			iv.Day.String(),
			iv.StartTime.Format(time.RFC3339),
			iv.EndTime.Format(time.RFC3339),
			strconv.Itoa(iv.Minutes),
			formatMinutes(iv.Minutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
