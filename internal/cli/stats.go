package cli

import (
	"github.com/spf13/cobra"
)

// newStatsCmd creates the "stats" command: aggregate statistics over the
// user's full calculation history, recomputed fresh on every call.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics for your calculations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.svc.Stats(cmd.Context(), a.userID)
			if err != nil {
				return err
			}

			if output == "json" {
				return renderJSON(cmd.OutOrStdout(), stats)
			}
			renderStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}
