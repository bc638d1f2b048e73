package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSONConsole(t *testing.T) {
	var buf bytes.Buffer
	l, c := New(Options{Level: "debug", Format: "json", Output: &buf})
	defer c.Close()

	l.With("component", "loop").Debug("frame", "n", 3)

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal: %v (%q)", err, buf.String())
	}
	if m["msg"] != "frame" {
		t.Errorf("msg = %v", m["msg"])
	}
	if m["component"] != "loop" {
		t.Errorf("component = %v", m["component"])
	}
	if m["n"] != float64(3) {
		t.Errorf("n = %v", m["n"])
	}
}

func TestNewFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Options{Level: "warn", Output: &buf})
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %q", buf.String())
	}
	l.Warn("kept")
	if !strings.Contains(buf.String(), "msg=kept") {
		t.Errorf("warn not written: %q", buf.String())
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veneer.log")
	var buf bytes.Buffer
	l, c := New(Options{Level: "info", Output: &buf, File: path})
	l.Info("to both", "k", "v")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !strings.Contains(buf.String(), "to both") {
		t.Errorf("console missing record: %q", buf.String())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var last string
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal file line %q: %v", last, err)
	}
	if m["k"] != "v" {
		t.Errorf("k = %v", m["k"])
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VENEER_LOG_LEVEL", "debug")
	t.Setenv("VENEER_LOG_FORMAT", "json")
	t.Setenv("VENEER_LOG_SOURCE", "TRUE")
	t.Setenv("VENEER_LOG_FILE", "")

	o := FromEnv()
	if o.Level != "debug" || o.Format != "json" || !o.AddSource || o.File != "" {
		t.Errorf("FromEnv() = %+v", o)
	}
}

func TestInitSetsShared(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Output: &buf})
	t.Cleanup(func() { Close() })

	WithComponent("assets").Info("loaded")
	if !strings.Contains(buf.String(), "component=assets") {
		t.Errorf("shared logger output = %q", buf.String())
	}
}
