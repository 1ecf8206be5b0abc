package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/freightprint/internal/config"
)

// setupLogging configures the package logger from config and the --debug
// flag. Debug forces console output at debug level regardless of config.
func setupLogging(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loggingCfg := cfg.Logging
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
	}

	logger = config.ComponentLogger(loggingCfg.NewLogger(), "cli")
	logger.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}
