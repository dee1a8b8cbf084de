package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("test", WARN, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Errorf("DEBUG should be filtered at WARN level")
	}
	if strings.Contains(out, "info message") {
		t.Errorf("INFO should be filtered at WARN level")
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("WARN should be logged at WARN level")
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("ERROR should be logged at WARN level")
	}
}

func TestLoggerContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("session", DEBUG, &buf)

	logger.WithContext("user_id", "guest-abc123").Info("identity changed")

	out := buf.String()
	if !strings.Contains(out, "[session]") {
		t.Errorf("expected component in output, got: %s", out)
	}
	if !strings.Contains(out, "user_id=guest-abc123") {
		t.Errorf("expected context field in output, got: %s", out)
	}
}

func TestLoggerWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("chat", DEBUG, &buf)
	child := parent.WithFields(map[string]interface{}{"conversation_id": "c1"})

	parent.Info("parent line")
	child.Info("child line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if strings.Contains(lines[0], "conversation_id") {
		t.Errorf("parent logger leaked child context: %s", lines[0])
	}
	if !strings.Contains(lines[1], "conversation_id=c1") {
		t.Errorf("child logger missing context: %s", lines[1])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		"info":    INFO,
		"WARN":    WARN,
		"error":   ERROR,
		"unknown": INFO,
		"":        INFO,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatterSanitizesControlCharacters(t *testing.T) {
	f := NewFormatter()
	entry := Entry{
		Timestamp: time.Now(),
		Level:     INFO,
		Component: "test",
		File:      "x.go",
		Line:      1,
		Message:   "bad\x00\x1bvalue",
	}

	out := f.Format(entry)
	if strings.ContainsRune(out, 0x00) || strings.ContainsRune(out, 0x1b) {
		t.Errorf("control characters not sanitized: %q", out)
	}
}

func TestFileWriterWritesAndRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	// 0 MB threshold makes every flush rotate
	fw, err := NewFileWriter(path, 0, 2)
	if err != nil {
		t.Fatalf("Failed to create file writer: %v", err)
	}

	if _, err := fw.Write([]byte("first line\n")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := fw.Flush(); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected rotated backup %s.1 to exist: %v", path, err)
	}

	if err := fw.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	// Writes after close are rejected
	if _, err := fw.Write([]byte("late\n")); err == nil {
		t.Errorf("expected write after close to fail")
	}
}

func TestMultiWriterFansOut(t *testing.T) {
	var a, b bytes.Buffer
	mw := NewMultiWriter(&a, &b)

	if _, err := mw.Write([]byte("hello")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if a.String() != "hello" || b.String() != "hello" {
		t.Errorf("expected both writers to receive data, got %q and %q", a.String(), b.String())
	}
}
