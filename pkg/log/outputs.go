package log

import (
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes log entries to stderr or a custom writer.
type ConsoleOutput struct {
	mu     sync.Mutex
	writer io.Writer
}

// ConsoleOutputOption configures a ConsoleOutput.
type ConsoleOutputOption func(*ConsoleOutput)

// WithCustomWriter configures the ConsoleOutput to use a custom writer.
func WithCustomWriter(writer io.Writer) ConsoleOutputOption {
	return func(o *ConsoleOutput) {
		o.writer = writer
	}
}

// NewConsoleOutput creates a console output. Logs go to stderr by default so
// they never mix with command reports on stdout.
func NewConsoleOutput(options ...ConsoleOutputOption) *ConsoleOutput {
	o := &ConsoleOutput{}
	for _, option := range options {
		option(o)
	}
	return o
}

// Write writes the log entry to the console.
func (o *ConsoleOutput) Write(_ *Entry, formattedEntry []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	w := o.writer
	if w == nil {
		w = os.Stderr
	}
	_, err := w.Write(formattedEntry)
	return err
}
