package cli

import (
	"fmt"
	"strings"

	"github.com/mekedron/swiggy-audit/internal/service/output"
	"github.com/spf13/cobra"
)

func newHistoryCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved scrape runs, newest first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return emitError(cmd, output.FormatTable, resolveClientLabel(flags.Client), flags.Output, "SWIGGY_INVALID_ARGUMENT", err.Error())
			}
			if deps.Snapshots == nil {
				return emitError(cmd, format, resolveClientLabel(flags.Client), flags.Output, "SWIGGY_CONFIG_ERROR", "snapshot store is not available")
			}

			runs, err := deps.Snapshots.History(cmd.Context(), limit)
			if err != nil {
				return emitError(cmd, format, resolveClientLabel(flags.Client), flags.Output, "SWIGGY_CONFIG_ERROR", err.Error())
			}

			if format == output.FormatTable {
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						fmt.Sprintf("%d", run.ID),
						run.Client,
						strings.Join(run.RestaurantIDs, ","),
						fmt.Sprintf("%d", run.ItemCount),
						fmt.Sprintf("%d", run.OfferCount),
						run.CreatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				text := output.RenderTable(
					fmt.Sprintf("Runs (%d)", len(runs)),
					[]string{"ID", "CLIENT", "RESTAURANTS", "ITEMS", "OFFERS", "CREATED"},
					rows,
				)
				return writeTable(cmd, text, flags.Output)
			}

			env := output.BuildEnvelope(resolveClientLabel(flags.Client), envelopeSource, map[string]any{
				"runs": runs,
			}, nil, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list.")
	return cmd
}
