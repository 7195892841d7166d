package cmd

import (
	"fmt"
	"os"

	"triprecord/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "triprecord",
	Short: "Port operations trip record service",
	Long: `Triprecord tracks vessel visits, pilotage trips and billing charges.
Its core is the charge-to-trip reconciliation engine that merges the legacy
charge stream into the normalized trip store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level for readable CLI error reporting.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
