package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"innkeep/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var logLevel string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "innkeep",
		Short: "Innkeep is a guesthouse management API server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newMigrateCmd(cfg, &jsonOutput),
		newSeedCmd(cfg),
	)

	return cmd
}
