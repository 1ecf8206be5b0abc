package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/freightprint/internal/cli/pagination"
)

// newHistoryCmd creates the "history" command group: listing the user's
// calculation records and deleting individual ones.
func newHistoryCmd() *cobra.Command {
	params := pagination.NewParams()
	var sortExpr string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past carbon footprint calculations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			field, order, err := pagination.ParseSort(sortExpr)
			if err != nil {
				return err
			}
			params.SortField = field
			params.SortOrder = order
			if err := params.Validate(); err != nil {
				return err
			}

			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.svc.History(cmd.Context(), a.userID, params.Limit, params.Offset)
			if err != nil {
				return err
			}
			records = pagination.SortRecords(records, params.SortField, params.SortOrder)

			if output == "json" {
				return renderJSON(cmd.OutOrStdout(), records)
			}
			renderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Limit, "limit", pagination.DefaultLimit, "maximum records to list")
	cmd.Flags().IntVar(&params.Offset, "offset", pagination.DefaultOffset, "records to skip")
	cmd.Flags().StringVar(&sortExpr, "sort", "", "sort by field[:order], fields: date, footprint, distance, weight, cost")

	cmd.AddCommand(newHistoryDeleteCmd())

	return cmd
}

// newHistoryDeleteCmd creates "history delete <id>".
func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a calculation record you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.svc.Delete(cmd.Context(), args[0], a.userID); err != nil {
				return err
			}
			cmd.Printf("Deleted calculation %s\n", args[0])
			return nil
		},
	}
}
