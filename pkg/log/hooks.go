package log

import "strings"

// RedactedValue replaces the value of a redacted field.
const RedactedValue = "[REDACTED]"

// DefaultRedactedFields are always redacted by loggers built from a Config.
var DefaultRedactedFields = []string{"value", "secret", "token"}

// RedactionHook redacts sensitive values from log entries.
type RedactionHook struct {
	fields map[string]struct{}
}

// NewRedactionHook creates a new redaction hook. Field names match
// case-insensitively.
func NewRedactionHook(fields []string) *RedactionHook {
	h := &RedactionHook{fields: make(map[string]struct{}, len(fields))}
	for _, f := range fields {
		h.fields[strings.ToLower(f)] = struct{}{}
	}
	return h
}

// Fire replaces every matching field with RedactedValue.
func (h *RedactionHook) Fire(entry *Entry) error {
	for k := range entry.Fields {
		if _, ok := h.fields[strings.ToLower(k)]; ok {
			entry.Fields[k] = RedactedValue
		}
	}
	return nil
}
