// Package cli implements the freightprint command line: the invocation
// boundary that turns flags into shipment requests, runs the calculation
// engine, and renders records and statistics.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/freightprint/internal/config"
)

// EnvUserID names the environment variable carrying the default user id.
const EnvUserID = "FREIGHTPRINT_USER"

// defaultUserID owns calculations when no user is configured. The engine
// only stamps ownership; authentication lives outside this tool.
const defaultUserID = "local"

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Set once by setupLogging

// NewRootCmd creates the root cobra command with the calculate, history,
// and stats subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "freightprint",
		Short:   "Shipment carbon footprint calculator",
		Long:    "freightprint estimates the carbon footprint, offset trees, and cost of freight shipments and keeps a per-user calculation history.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.freightprint/config.yaml)")
	cmd.PersistentFlags().String("db", "", "database file (overrides config)")
	cmd.PersistentFlags().String("user", "", "user id owning the calculations (default $"+EnvUserID+" or \"local\")")
	cmd.PersistentFlags().String("output", "table", "output format: table or json")

	cmd.AddCommand(newCalculateCmd(), newHistoryCmd(), newStatsCmd())

	return cmd
}

const rootCmdExample = `  # Calculate the footprint of a cooled truck shipment
  freightprint calculate --quantity 10 --unit-weight 2 --mode truck \
    --fuel diesel --fuel bev --cooled --origin "Hamburg" --destination "Warsaw"

  # Calculate with explicit coordinates instead of geocoding
  freightprint calculate --quantity 4 --unit-weight 1.5 --mode ship \
    --origin "Port A" --origin-lat 51.92 --origin-lon 4.47 \
    --destination "Port B" --dest-lat 1.35 --dest-lon 103.82

  # List the ten most recent calculations
  freightprint history --limit 10

  # Sort history by footprint, largest first
  freightprint history --sort footprint:desc

  # Delete a calculation
  freightprint history delete 01JH3ZS4Y1T9GQ6MD0V8EXAMPLE

  # Show aggregate statistics
  freightprint stats`

// loadConfig reads the configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// outputFormat validates the --output flag.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case "table", "json":
		return format, nil
	}
	return "", fmt.Errorf("invalid output format %q: use table or json", format)
}

// resolveUserID picks the calculation owner: --user flag, then the
// environment, then the local default.
func resolveUserID(cmd *cobra.Command) string {
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		return user
	}
	if user := os.Getenv(EnvUserID); user != "" {
		return user
	}
	return defaultUserID
}
