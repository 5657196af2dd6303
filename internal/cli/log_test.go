package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"InfoAtInfo", LogInfo, func(l *log.Logger) { l.Info("serving") }, true},
		{"DebugAtInfo", LogInfo, func(l *log.Logger) { l.Debug("read word list") }, false},
		{"DebugAtDebug", LogDebug, func(l *log.Logger) { l.Debug("read word list") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo), log.InfoLevel)

	prog.done("rendered overlap graph", "format", "svg")

	out := buf.String()
	for _, want := range []string{"INFO", "rendered overlap graph", "format=svg", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestProgressDone_BelowLevel(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo), log.DebugLevel)

	prog.done("solved word list")

	if buf.Len() != 0 {
		t.Errorf("debug progress written at info level: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(&bytes.Buffer{}, LogInfo)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should fall back to log.Default()")
	}
}

func TestSolve_LogsThroughContext(t *testing.T) {
	isolate(t)
	data := writeFile(t, t.TempDir(), "words.txt", "aaxx\nxxyy\nyyzz\nzzaa")

	var logs bytes.Buffer
	if _, err := execute(t, New(&logs, LogDebug), "--mode", "single", data); err != nil {
		t.Fatalf("solve error: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"read word list", "solved word list", "items=4", "length=4", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestSolve_QuietAtInfo(t *testing.T) {
	isolate(t)
	data := writeFile(t, t.TempDir(), "words.txt", "aabb\nbbcc")

	var logs bytes.Buffer
	if _, err := execute(t, New(&logs, LogInfo), data); err != nil {
		t.Fatalf("solve error: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("solve logged at info level: %q", logs.String())
	}
}

func TestGraph_LogsRenderProgress(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	data := writeFile(t, dir, "words.txt", "aabb\nbbcc")

	var logs bytes.Buffer
	if _, err := execute(t, New(&logs, LogInfo), "graph", data, "-o", filepath.Join(dir, "graph.dot")); err != nil {
		t.Fatalf("graph error: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"rendered overlap graph", "format=dot", "bytes=", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("graph log missing %q:\n%s", want, out)
		}
	}
}
