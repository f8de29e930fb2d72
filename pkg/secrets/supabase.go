package secrets

import (
	"context"
	"fmt"
)

// SupabaseStore pushes secrets with the Supabase CLI.
type SupabaseStore struct {
	binary string
	runner Runner
}

// NewSupabaseStore returns a store invoking binary through runner. A nil
// runner uses ExecRunner.
func NewSupabaseStore(binary string, runner Runner) *SupabaseStore {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &SupabaseStore{binary: binary, runner: runner}
}

func (s *SupabaseStore) Name() string {
	return "Supabase CLI"
}

// Probe runs `<binary> --version`, discarding the output.
func (s *SupabaseStore) Probe(ctx context.Context) error {
	if _, err := s.runner.Run(ctx, s.binary, "--version"); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Set runs `<binary> secrets set NAME=VALUE`.
func (s *SupabaseStore) Set(ctx context.Context, name, value string) error {
	if _, err := s.runner.Run(ctx, s.binary, "secrets", "set", name+"="+value); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

func (s *SupabaseStore) Guidance() []string {
	return []string{
		"Install with: npm install -g supabase",
		"Or visit: https://supabase.com/docs/guides/cli",
	}
}
