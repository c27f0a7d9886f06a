package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"  WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"fatal", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoggerCarriesServiceAndComponentTags(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "mitti-mitra", "worker", "info")
	logger.Info("reading persisted", "reading_id", "r-1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if line["service"] != "mitti-mitra" || line["component"] != "worker" {
		t.Errorf("missing tags: %v", line)
	}
	if line["reading_id"] != "r-1" {
		t.Errorf("missing attr: %v", line)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "mitti-mitra", "", "warn")
	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("info line not filtered at warn level: %s", buf.String())
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("warn line missing")
	}
}
