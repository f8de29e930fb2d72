package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/watchhub/envctl/internal/config"
	"github.com/watchhub/envctl/pkg/cli/format"
	"github.com/watchhub/envctl/pkg/log"
	"github.com/watchhub/envctl/pkg/version"
)

type globalOptions struct {
	configFile string
	root       string
	verbose    bool
	noColor    bool
}

// app is the state shared by the subcommands once the root command has
// loaded the configuration.
type app struct {
	opts   globalOptions
	cfg    *config.Config
	logger log.Logger
}

// NewRootCmd builds the envctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "envctl",
		Short: "envctl - WatchHub environment tooling",
		Long: `envctl manages the WatchHub environment configuration.

It validates the .env file, builds it interactively and publishes the
Edge Function secrets to the provisioning store.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.configFile, "config", "", "config file (default is ./envctl.yaml or $HOME/.envctl/envctl.yaml)")
	flags.StringVar(&a.opts.root, "root", "", "project directory holding the .env file (default \".\")")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newCheckCmd(a))
	cmd.AddCommand(newSetupCmd(a))
	cmd.AddCommand(newSecretsCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// load reads the configuration and installs the logger in the command
// context.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.configFile)
	if err != nil {
		return err
	}
	if a.opts.root != "" {
		cfg.Root = a.opts.root
	}
	if a.opts.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.Log.Writer = cmd.ErrOrStderr()
	cfg.Log.DisableColors = a.opts.noColor || !format.ColorEnabled(cfg.Log.Writer)
	logger, err := log.ApplyConfig(&cfg.Log)
	if err != nil {
		return fmt.Errorf("invalid log configuration: %w", err)
	}
	log.SetDefaultLogger(logger)

	a.cfg = cfg
	a.logger = logger

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(log.WithLogger(ctx, logger))

	logger.Debug("Configuration loaded",
		log.Str("root", cfg.Root),
		log.Str("env_file", cfg.EnvPath()),
		log.Str("store", cfg.Store),
	)
	return nil
}

// printer returns a printer for the command's standard output.
func (a *app) printer(cmd *cobra.Command) *format.Printer {
	w := cmd.OutOrStdout()
	return format.NewPrinter(w, !a.opts.noColor && format.ColorEnabled(w))
}

// Execute runs envctl with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run executes the command line in args and returns the exit status.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return exitCode(root.ExecuteContext(ctx), stderr)
}
