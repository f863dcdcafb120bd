package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	User       string         `json:"user"`
	Count      int            `json:"count"`
	Intervals  []jsonInterval `json:"intervals"`
}

type jsonInterval struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Minutes   int    `json:"duration_minutes"`
	Duration  string `json:"duration"`
}

func ToJSON(intervals []store.Interval, username, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		User:       username,
		Count:      len(intervals),
		Intervals:  []jsonInterval{},
	}

	for _, iv := range intervals {
		export.Intervals = append(export.Intervals, jsonInterval{
			ID:        iv.ID,
			Kind:      iv.Kind.String(),
			Day:       iv.Day.String(),
			StartTime: iv.StartTime.Format(time.RFC3339),
			EndTime:   iv.EndTime.Format(time.RFC3339),
			Minutes:   iv.Minutes,
			Duration:  formatMinutes(iv.Minutes),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
