package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/watchhub/envctl/internal/config"
	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/secrets"
)

type secretsOptions struct {
	store  string
	dryRun bool
}

// newStore is a small wrapper so tests can substitute the secret store.
var newStore = func(ctx context.Context, cfg *config.Config) (secrets.Store, error) {
	if cfg.Store == config.StoreAWS {
		return secrets.NewAWSStore(ctx, secrets.AWSConfig{
			Region:  cfg.AWS.Region,
			Profile: cfg.AWS.Profile,
			Prefix:  cfg.AWS.Prefix,
		})
	}
	return secrets.NewSupabaseStore(cfg.Supabase.Binary, secrets.ExecRunner{}), nil
}

func newSecretsCmd(a *app) *cobra.Command {
	opts := &secretsOptions{}

	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Publish the Edge Function secrets",
		Long: `Write supabase/.env and push every Edge Function secret to the store.

Values that are empty or still contain a your_ placeholder are skipped.
A failed push does not stop the others; the command exits non-zero if any
push failed.

Examples:
  # Push with the Supabase CLI
  envctl secrets

  # Show what would be pushed
  envctl secrets --dry-run

  # Push to AWS Secrets Manager instead
  envctl secrets --store aws`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSecrets(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.store, "store", "", "secret store to publish to (supabase, aws); overrides the config file")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate and print the plan without writing or pushing")

	return cmd
}

func (a *app) runSecrets(cmd *cobra.Command, opts *secretsOptions) error {
	ctx := cmd.Context()

	cfg := *a.cfg
	if opts.store != "" {
		cfg.Store = opts.store
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	store, err := newStore(ctx, &cfg)
	if err != nil {
		return err
	}

	pub := &secrets.Publisher{
		Store:            store,
		EnvPath:          cfg.EnvPath(),
		FunctionsEnvPath: cfg.FunctionsEnvPath(),
		Printer:          a.printer(cmd),
		DryRun:           opts.dryRun,
	}

	report, err := pub.Run(ctx)
	if err != nil {
		if errors.Is(err, secrets.ErrStoreUnavailable) ||
			errors.Is(err, envfile.ErrNotFound) ||
			errors.Is(err, secrets.ErrIncompleteConfig) {
			return &ExitError{Code: 1, Err: err}
		}
		return err
	}

	if code := report.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
