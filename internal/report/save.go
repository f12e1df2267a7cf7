package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileName returns the generated report name for the given time.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("report_%s.json", now.Format("20060102_150405"))
}

// SaveReport writes v as indented JSON to path and returns the path written.
// An empty path writes a timestamped file into dir.
func SaveReport(v any, path, dir string, now time.Time) (string, error) {
	if path == "" {
		path = filepath.Join(dir, DefaultFileName(now))
	}

	data, err := EncodeJSON(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if d := filepath.Dir(path); d != "." && d != "" {
		if err := os.MkdirAll(d, 0755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}
