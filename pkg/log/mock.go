package log

import (
	"strings"
	"sync"
)

// TestEntry represents a captured log entry for testing
type TestEntry struct {
	Level   Level
	Message string
	Fields  Fields
}

// TestLogger captures entries without producing output.
type TestLogger struct {
	mu      *sync.Mutex
	entries *[]TestEntry
	fields  Fields
	level   Level
}

// NewTestLogger creates a new TestLogger for use in unit tests
func NewTestLogger() *TestLogger {
	return &TestLogger{
		mu:      &sync.Mutex{},
		entries: &[]TestEntry{},
		fields:  Fields{},
		level:   DebugLevel,
	}
}

// GetEntries returns a copy of all captured log entries, including those
// written through child loggers.
func (l *TestLogger) GetEntries() []TestEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]TestEntry, len(*l.entries))
	copy(result, *l.entries)
	return result
}

// HasMessage reports whether any entry at the given level contains substr.
func (l *TestLogger) HasMessage(level Level, substr string) bool {
	for _, e := range l.GetEntries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func (l *TestLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *TestLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *TestLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *TestLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With returns a child logger sharing the same entry buffer.
func (l *TestLogger) With(fields ...Field) Logger {
	child := &TestLogger{
		mu:      l.mu,
		entries: l.entries,
		fields:  make(Fields, len(l.fields)+len(fields)),
		level:   l.level,
	}
	for k, v := range l.fields {
		child.fields[k] = v
	}
	for _, f := range fields {
		child.fields[f.Key] = f.Value
	}
	return child
}

func (l *TestLogger) WithComponent(component string) Logger {
	return l.With(Component(component))
}

func (l *TestLogger) SetLevel(level Level) { l.level = level }
func (l *TestLogger) GetLevel() Level      { return l.level }

func (l *TestLogger) log(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}
	all := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		all[k] = v
	}
	for _, f := range fields {
		all[f.Key] = f.Value
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, TestEntry{Level: level, Message: msg, Fields: all})
}
