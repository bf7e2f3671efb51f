package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	runSuffix    = "-check.json"
	timestampFmt = "2006-01-02T15-04-05"
)

// LocalStorage implements Storage on the local filesystem. Runs live as
// timestamped JSON files under <baseDir>/runs.
type LocalStorage struct {
	baseDir string
}

// NewLocal creates a local storage instance rooted at baseDir.
func NewLocal(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// SaveRun stores a check run to disk.
func (s *LocalStorage) SaveRun(run *Run) error {
	runsDir := filepath.Join(s.baseDir, "runs")
	if err := os.MkdirAll(runsDir, 0o755); err != nil {
		return fmt.Errorf("create runs directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	path := filepath.Join(runsDir, run.Timestamp.Format(timestampFmt)+runSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// LoadRun loads the run stored at a specific timestamp.
func (s *LocalStorage) LoadRun(timestamp time.Time) (*Run, error) {
	path := filepath.Join(s.baseDir, "runs", timestamp.Format(timestampFmt)+runSuffix)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("run not found: %s", path)
		}
		return nil, fmt.Errorf("read run: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("unmarshal run: %w", err)
	}
	return &run, nil
}

// LatestRun retrieves the most recent run.
func (s *LocalStorage) LatestRun() (*Run, error) {
	timestamps, err := s.ListRuns()
	if err != nil {
		return nil, err
	}
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("no runs found")
	}
	return s.LoadRun(timestamps[len(timestamps)-1])
}

// LastNRuns retrieves up to the last n runs, oldest first. Runs that fail
// to load are skipped.
func (s *LocalStorage) LastNRuns(n int) ([]*Run, error) {
	timestamps, err := s.ListRuns()
	if err != nil {
		return nil, err
	}
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("no runs found")
	}

	start := len(timestamps) - n
	if start < 0 {
		start = 0
	}

	runs := make([]*Run, 0, len(timestamps)-start)
	for _, ts := range timestamps[start:] {
		run, err := s.LoadRun(ts)
		if err != nil {
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// ListRuns returns all stored run timestamps, oldest first.
func (s *LocalStorage) ListRuns() ([]time.Time, error) {
	runsDir := filepath.Join(s.baseDir, "runs")

	if _, err := os.Stat(runsDir); os.IsNotExist(err) {
		return []time.Time{}, nil
	}

	entries, err := os.ReadDir(runsDir)
	if err != nil {
		return nil, fmt.Errorf("read runs directory: %w", err)
	}

	var timestamps []time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), runSuffix) {
			continue
		}
		ts, err := time.Parse(timestampFmt, strings.TrimSuffix(entry.Name(), runSuffix))
		if err != nil {
			continue
		}
		timestamps = append(timestamps, ts)
	}

	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})
	return timestamps, nil
}

// Path returns the storage base directory.
func (s *LocalStorage) Path() string {
	return s.baseDir
}
