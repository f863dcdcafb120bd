package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

// Logbook is the plain-text session log: one CSV row per completed interval,
// appended as "finished_at,kind,minutes,user".
type Logbook struct {
	Path string
}

func NewLogbook(path string) *Logbook {
	return &Logbook{Path: path}
}

func (l *Logbook) Append(iv store.Interval, username string) error {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return fmt.Errorf("create logbook directory: %w", err)
	}
	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open logbook: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write([]string{
		iv.EndTime.Format(time.RFC3339),
		iv.Kind.String(),
		strconv.Itoa(iv.Minutes),
		username,
	})
	if err != nil {
		return fmt.Errorf("write logbook: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write logbook: %w", err)
	}
	return f.Close()
}
