package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is a single structured log record
type Entry struct {
	Timestamp time.Time
	Level     Level
	Component string
	File      string
	Line      int
	Message   string
	Context   map[string]interface{}
}

// Formatter renders entries as single lines:
// [YYYY-MM-DD HH:MM:SS] LEVEL [component] file.go:line message key=value
type Formatter struct{}

// NewFormatter creates a formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders a log entry into a line of text
func (f *Formatter) Format(entry Entry) string {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(entry.Timestamp.Format("2006-01-02 15:04:05"))
	sb.WriteString("] ")

	sb.WriteString(entry.Level.String())
	sb.WriteString(" [")
	sb.WriteString(entry.Component)
	sb.WriteString("] ")

	sb.WriteString(entry.File)
	sb.WriteString(":")
	sb.WriteString(fmt.Sprintf("%d", entry.Line))
	sb.WriteString(" ")

	sb.WriteString(sanitize(entry.Message))

	// Context fields in stable order
	if len(entry.Context) > 0 {
		keys := make([]string, 0, len(entry.Context))
		for k := range entry.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(fmt.Sprintf("%v", entry.Context[k]))
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// sanitize strips control characters (except newline and tab) to prevent
// log injection
func sanitize(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		switch {
		case r == '\n' || r == '\t':
			sb.WriteRune(r)
		case r < 0x20:
			sb.WriteRune(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
