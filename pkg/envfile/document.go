package envfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Rule is the comment line framing section titles.
const Rule = "==========================================="

// Entry is one KEY=VALUE line.
type Entry struct {
	Key   string
	Value string
}

// Section is a titled group of entries. An empty title renders the entries
// without a heading.
type Section struct {
	Title   string
	Entries []Entry
}

// Document is an env file to be written: a comment header and sections.
type Document struct {
	Header   []string
	Sections []Section
}

// Add appends a section. Sections without entries are dropped.
func (d *Document) Add(title string, entries ...Entry) {
	if len(entries) == 0 {
		return
	}
	d.Sections = append(d.Sections, Section{Title: title, Entries: entries})
}

// WriteTo renders the document. Values are written verbatim. Parse trims
// values and stops at line breaks, so a value with surrounding whitespace or
// a newline cannot be represented and is rejected.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	for _, line := range d.Header {
		writeComment(&buf, line)
	}
	if len(d.Header) > 0 {
		buf.WriteByte('\n')
	}

	for i, s := range d.Sections {
		if s.Title != "" {
			writeComment(&buf, Rule)
			writeComment(&buf, s.Title)
			writeComment(&buf, Rule)
		}
		for _, e := range s.Entries {
			if !validKey(e.Key) {
				return 0, fmt.Errorf("invalid key %q", e.Key)
			}
			if strings.ContainsAny(e.Value, "\r\n") {
				return 0, fmt.Errorf("value for %s contains a line break", e.Key)
			}
			if strings.TrimSpace(e.Value) != e.Value {
				return 0, fmt.Errorf("value for %s has leading or trailing whitespace", e.Key)
			}
			fmt.Fprintf(&buf, "%s=%s\n", e.Key, e.Value)
		}
		if i < len(d.Sections)-1 {
			buf.WriteByte('\n')
		}
	}

	return buf.WriteTo(w)
}

// validKey reports whether key survives a write/parse cycle unchanged.
func validKey(key string) bool {
	return key != "" &&
		strings.TrimSpace(key) == key &&
		!strings.HasPrefix(key, "#") &&
		!strings.ContainsAny(key, "=\r\n")
}

func writeComment(buf *bytes.Buffer, line string) {
	if line == "" {
		buf.WriteString("#\n")
		return
	}
	buf.WriteString("# ")
	buf.WriteString(line)
	buf.WriteByte('\n')
}

// Bytes renders the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the document to path, creating the parent directory when
// needed. The file is overwritten in place and left with mode 0600.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile keeps the mode of a file that already existed
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict permissions on %s: %w", path, err)
	}
	return nil
}
