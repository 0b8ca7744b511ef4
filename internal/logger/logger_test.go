package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func initBuffer(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(cfg, &buf)
	t.Cleanup(func() { Init(NewConfig(), nil) })
	return &buf
}

func TestLevels(t *testing.T) {
	buf := initBuffer(t, NewConfig())
	Debugf("hidden")
	Infof("shown %d", 1)
	Errorf("failed: %s", "x")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message logged at info level:\n%s", out)
	}
	for _, want := range []string{"shown 1", "failed: x", "level=ERROR", "logger_test.go:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTagFilters(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		logs   func()
		want   []string
		reject []string
	}{
		{
			name: "disabled tag",
			cfg:  Config{LogLevel: "debug", DisabledTags: []string{"Noisy"}},
			logs: func() {
				DebugTagf("noisy", "drop me")
				InfoTagf("other", "keep me")
				Infof("untagged")
			},
			want:   []string{"keep me", "untagged", "tag=other"},
			reject: []string{"drop me"},
		},
		{
			name: "enabled tags",
			cfg:  Config{LogLevel: "debug", EnabledTags: []string{"cmd"}},
			logs: func() {
				DebugTagf("cmd", "command ran")
				InfoTagf("event", "event fired")
				Infof("untagged")
			},
			want:   []string{"command ran"},
			reject: []string{"event fired", "untagged"},
		},
		{
			name: "disabled package",
			cfg:  Config{LogLevel: "debug", DisabledPackages: []string{"logger"}},
			logs: func() {
				Infof("from this package")
			},
			reject: []string{"from this package"},
		},
		{
			name: "enabled package",
			cfg:  Config{LogLevel: "debug", EnabledPackages: []string{"app"}},
			logs: func() {
				Infof("not the app")
			},
			reject: []string{"not the app"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := initBuffer(t, tt.cfg)
			tt.logs()
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, reject := range tt.reject {
				if strings.Contains(out, reject) {
					t.Errorf("output contains %q:\n%s", reject, out)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"WARNING", slog.LevelWarn, true},
		{"err", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOpenOutput(t *testing.T) {
	w, closeFn, err := OpenOutput(Config{})
	if err != nil || w == nil {
		t.Fatalf("OpenOutput(empty) = %v, %v", w, err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "logs", "docedit.log")
	w, closeFn, err = OpenOutput(Config{LogFilePath: path})
	if err != nil {
		t.Fatalf("OpenOutput(file) error: %v", err)
	}
	Init(Config{LogLevel: "info"}, w)
	t.Cleanup(func() { Init(NewConfig(), nil) })
	Infof("to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("log file content = %q", data)
	}
}
