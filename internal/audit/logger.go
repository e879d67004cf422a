package audit

import (
	"fmt"
	"strings"
	"sync"
)

// Tag labels the pipeline stage or severity a line originates from.
type Tag string

const (
	TagSystem  Tag = "SYSTEM"
	TagParser  Tag = "OPENCLAW"
	TagPolicy  Tag = "ARMORCLAW"
	TagSuccess Tag = "SUCCESS"
	TagWarn    Tag = "WARN"
	TagError   Tag = "ERROR"
)

const violationMarker = "VIOLATION"

// Sink receives each line as soon as it is appended.
type Sink func(line string)

// Logger is an append-only, ordered audit trail. It is safe for concurrent
// use and never fails.
type Logger struct {
	mu    sync.Mutex
	lines []string
	sink  Sink
}

// NewLogger creates a Logger. sink may be nil.
func NewLogger(sink Sink) *Logger {
	return &Logger{sink: sink}
}

// Logf appends a formatted line labelled with tag.
func (l *Logger) Logf(tag Tag, format string, args ...any) {
	l.append(fmt.Sprintf("[%s] %s", tag, fmt.Sprintf(format, args...)))
}

// Violation appends a policy denial. The line carries the policy tag and the
// VIOLATION marker so consumers can highlight it.
func (l *Logger) Violation(rule, format string, args ...any) {
	l.append(fmt.Sprintf("[%s] %s (%s): %s", TagPolicy, violationMarker, rule, fmt.Sprintf(format, args...)))
}

func (l *Logger) append(line string) {
	line = strings.ReplaceAll(line, "\n", " ")

	l.mu.Lock()
	l.lines = append(l.lines, line)
	sink := l.sink
	l.mu.Unlock()

	if sink != nil {
		sink(line)
	}
}

// Lines returns a copy of the trail in append order.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines appended so far.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}
