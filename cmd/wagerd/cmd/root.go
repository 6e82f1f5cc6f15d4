// Package cmd holds the wagerd command tree.
package cmd

import (
	"fmt"

	"wager-settlement/config"
	"wager-settlement/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runtime is what every subcommand gets after the root has loaded config.
type runtime struct {
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
}

// NewRootCmd creates the wagerd root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "wagerd",
		Short:         "Wager settlement client",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			cfg, err := config.Load(rt.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			rt.cfg = cfg
			rt.log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&rt.configPath, "config", "", "path to a config file (default ./config.yaml)")

	rootCmd.AddCommand(
		newServeCmd(rt),
		newForceEndCmd(rt),
		newVerifyCmd(),
		newLedgerSimCmd(rt),
		newOperatorTokenCmd(rt),
	)
	return rootCmd
}

// printf writes to the command's output, ignoring write errors.
func printf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
