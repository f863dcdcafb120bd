package tui

import (
	"fmt"
	"time"
)

type tickMsg time.Time

// formatMinutes renders whole minutes as "45m" or "1h 15m".
func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}

func formatHours(mins int) string {
	return fmt.Sprintf("%.1fh", float64(mins)/60)
}
