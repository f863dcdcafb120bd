package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

func sampleData() []store.Interval {
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	return []store.Interval{
		{
			ID:        1,
			UserID:    1,
			StartTime: start,
			EndTime:   start.Add(25 * time.Minute),
			Minutes:   25,
			Kind:      store.Work,
			Day:       store.DateOf(start),
		},
		{
			ID:        2,
			UserID:    1,
			StartTime: start.Add(25 * time.Minute),
			EndTime:   start.Add(30 * time.Minute),
			Minutes:   5,
			Kind:      store.Break,
			Day:       store.DateOf(start),
		},
		{
			ID:        3,
			UserID:    1,
			StartTime: start.Add(time.Hour),
			EndTime:   start.Add(3 * time.Hour),
			Minutes:   120,
			Kind:      store.Work,
			Day:       store.DateOf(start),
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), "alice", path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"ID", "User", "Kind", "Day", "Start", "End", "Minutes", "Duration"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "1" || row[1] != "alice" || row[2] != "Work" {
		t.Fatalf("unexpected first row: %v", row)
	}
	if row[3] != "2026-10-18" {
		t.Fatalf("Day = %q, want 2026-10-18", row[3])
	}
	if row[4] != "2026-10-18T09:00:00Z" {
		t.Fatalf("Start = %q", row[4])
	}
	if row[6] != "25" || row[7] != "00:25" {
		t.Fatalf("Minutes/Duration = %q/%q", row[6], row[7])
	}

	if records[2][2] != "Break" {
		t.Fatalf("expected Break kind, got %q", records[2][2])
	}
	if records[3][7] != "02:00" {
		t.Fatalf("expected 02:00, got %q", records[3][7])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, "alice", path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "alice", "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(sampleData()[:1], `bob "the, builder"`, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if records[1][1] != `bob "the, builder"` {
		t.Fatalf("username not round-tripped: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), "alice", path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 || len(result.Intervals) != 3 {
		t.Fatalf("expected 3 intervals, got count=%d len=%d", result.Count, len(result.Intervals))
	}
	if result.User != "alice" {
		t.Fatalf("expected user alice, got %q", result.User)
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}

	iv := result.Intervals[0]
	if iv.Kind != "Work" || iv.Minutes != 25 || iv.Day != "2026-10-18" || iv.Duration != "00:25" {
		t.Fatalf("unexpected interval: %+v", iv)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, "alice", path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)
	if result.Count != 0 {
		t.Fatalf("expected count 0, got %d", result.Count)
	}
	if result.Intervals == nil {
		t.Fatal("intervals should be an empty array, not null")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, "alice", "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// Logbook
// ============================================================

func TestLogbookAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sessions.csv")
	lb := NewLogbook(path)

	for _, iv := range sampleData() {
		if err := lb.Append(iv, "alice"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(records))
	}
	want := []string{"2026-10-18T09:25:00Z", "Work", "25", "alice"}
	for i, v := range want {
		if records[0][i] != v {
			t.Fatalf("row[0][%d] = %q, want %q", i, records[0][i], v)
		}
	}
	if records[1][1] != "Break" || records[1][2] != "5" {
		t.Fatalf("unexpected break row: %v", records[1])
	}
}

func TestLogbookAppendKeepsExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.csv")
	if err := os.WriteFile(path, []byte("2026-10-17T10:00:00Z,Work,25,alice\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewLogbook(path).Append(sampleData()[0], "alice"); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
}

func TestLogbookBadPath(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the directory should be.
	blocker := filepath.Join(dir, "blocker")
	os.WriteFile(blocker, nil, 0o644)

	err := NewLogbook(filepath.Join(blocker, "sessions.csv")).Append(sampleData()[0], "alice")
	if err == nil {
		t.Fatal("expected error when the logbook directory cannot be created")
	}
}
