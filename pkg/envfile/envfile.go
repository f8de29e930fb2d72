// Package envfile reads and writes the KEY=VALUE files used by WatchHub.
//
// The grammar is deliberately small: every line is trimmed, blank lines and
// lines starting with '#' are skipped, the first '=' separates key from value
// and both sides are trimmed again. There is no quoting, escaping or variable
// expansion, and the last occurrence of a key wins.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned by Read when the file does not exist.
var ErrNotFound = errors.New("env file not found")

const maxLineBytes = 1 << 20

// File is a parsed env file. Keys keep the order of their first appearance.
type File struct {
	Path   string
	keys   []string
	values map[string]string
}

// Parse reads env lines from r.
func Parse(r io.Reader) (*File, error) {
	f := &File{values: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		f.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read env lines: %w", err)
	}
	return f, nil
}

func parseLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

// Read parses the file at path. A missing file yields an error wrapping
// ErrNotFound.
func Read(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open env file: %w", err)
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Get returns the value for key and whether the key was present.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Value returns the value for key, or "" if absent.
func (f *File) Value(key string) string {
	return f.values[key]
}

// Set assigns key, keeping the key's original position if it already exists.
func (f *File) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Keys returns keys in first-seen order.
func (f *File) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Map returns a copy of the key/value mapping.
func (f *File) Map() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Len returns the number of distinct keys.
func (f *File) Len() int {
	return len(f.keys)
}
