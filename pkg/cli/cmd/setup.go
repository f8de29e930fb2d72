package cmd

import (
	"github.com/spf13/cobra"
	"github.com/watchhub/envctl/pkg/setup"
)

func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		Aliases: []string{"init"},
		Short:   "Create the .env file interactively",
		Long: `Walk through every WatchHub setting and write the .env file.

JWT_SECRET and ENCRYPTION_KEY are generated from a cryptographically secure
source. An existing .env file is only replaced after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &setup.Builder{
				Path:     a.cfg.EnvPath(),
				Prompter: setup.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				Printer:  a.printer(cmd),
			}
			_, err := b.Run(cmd.Context())
			return err
		},
	}
}
