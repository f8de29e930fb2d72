// Package secrets publishes WatchHub secrets to the Edge Function secret
// store and writes the functions env file.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrStoreUnavailable means the secret store could not be reached before
	// any work was done.
	ErrStoreUnavailable = errors.New("secret store unavailable")

	// ErrIncompleteConfig means a key the publisher cannot run without is
	// empty.
	ErrIncompleteConfig = errors.New("incomplete configuration")
)

// Store is a remote secret store.
type Store interface {
	// Name identifies the store in output.
	Name() string
	// Probe checks the store can be used. It is called once before anything
	// else happens.
	Probe(ctx context.Context) error
	// Set creates or replaces one secret.
	Set(ctx context.Context, name, value string) error
}

// Guide is implemented by stores that can tell the operator how to make
// them available.
type Guide interface {
	Guidance() []string
}

// Runner runs an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec. Arguments are passed as a vector,
// never through a shell.
type ExecRunner struct{}

// Run executes name with args and waits for it to finish.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
