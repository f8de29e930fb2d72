package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/watchhub/envctl/pkg/cli/format"
	"github.com/watchhub/envctl/pkg/envfile"
	"github.com/watchhub/envctl/pkg/log"
	"github.com/watchhub/envctl/pkg/validate"
)

type checkOptions struct {
	output string
	watch  bool
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"validate"},
		Short:   "Validate the .env file",
		Long: `Check that every WatchHub environment variable is set.

Required variables that are missing fail the check. Required variables that
still hold placeholder values are reported as warnings.

Examples:
  # Validate ./.env
  envctl check

  # Validate another project
  envctl check --root ../watchhub

  # Machine-readable report
  envctl check --output json

  # Re-check on every save
  envctl check --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run the check whenever the .env file changes")

	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, opts *checkOptions) error {
	switch opts.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", opts.output)
	}

	p := a.printer(cmd)
	path := a.cfg.EnvPath()

	if !opts.watch {
		code, err := check(p, path, opts.output)
		if err != nil {
			return err
		}
		if code != 0 {
			return &ExitError{Code: code}
		}
		return nil
	}

	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	if _, err := check(p, path, opts.output); err != nil {
		logger.Warn("Check failed", log.Err(err))
	}
	return envfile.Watch(ctx, path, func() {
		p.Blank()
		p.Line(format.Muted, "── %s changed at %s ──", filepath.Base(path), time.Now().Format("15:04:05"))
		if _, err := check(p, path, opts.output); err != nil {
			logger.Warn("Check failed", log.Err(err))
		}
	})
}

// check validates the env file at path once and returns the exit status the
// result calls for.
func check(p *format.Printer, path, output string) (int, error) {
	f, err := envfile.Read(path)

	if output == "text" {
		validate.WriteBanner(p)
		if errors.Is(err, envfile.ErrNotFound) {
			validate.WriteMissingFile(p, filepath.Base(path))
			return 1, nil
		}
	}
	if err != nil {
		return 1, err
	}

	res := validate.Validate(f)
	switch output {
	case "json":
		err = validate.WriteJSON(p.Writer(), res)
	case "yaml":
		err = validate.WriteYAML(p.Writer(), res)
	default:
		validate.WriteText(p, res)
	}
	return res.ExitCode(), err
}
