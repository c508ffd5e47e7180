package cli

import (
	"fmt"

	"github.com/mekedron/swiggy-audit/internal/domain"
	"github.com/mekedron/swiggy-audit/internal/service/output"
	"github.com/spf13/cobra"
)

func newPreviewCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var resIDs string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Fetch menus and print normalized dishes and offers.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return emitError(cmd, output.FormatTable, resolveClientLabel(flags.Client), flags.Output, "SWIGGY_INVALID_ARGUMENT", err.Error())
			}

			scope, err := resolveScope(cmd.Context(), deps, flags, resIDs, format, cmd)
			if err != nil {
				return err
			}

			dishes, offers, warnings := scrapeMenus(cmd.Context(), deps, scope.IDs, flags.Verbose)

			if format == output.FormatTable {
				text := renderPreviewTables(dishes, offers, warnings)
				return writeTable(cmd, text, flags.Output)
			}

			env := output.BuildEnvelope(scope.Client, envelopeSource, map[string]any{
				"items":  dishes,
				"offers": offers,
			}, warnings, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&resIDs, "res-ids", "", "Comma-separated Swiggy restaurant ids.")
	return cmd
}

func renderPreviewTables(dishes []domain.Dish, offers []domain.Offer, warnings []string) string {
	dishRows := make([][]string, 0, len(dishes))
	for _, dish := range dishes {
		dishRows = append(dishRows, []string{
			dish.Restaurant,
			dish.Category,
			dish.Name,
			dish.FormatBasePrice(),
			dish.FormatFinalPrice(),
			dish.FormatFlashSale(),
			dish.FormatInStock(),
			dish.FormatVariants(),
		})
	}
	text := output.RenderTable(
		fmt.Sprintf("Dishes (%d)", len(dishes)),
		[]string{"RESTAURANT", "CATEGORY", "DISH", "BASE", "FINAL", "FLASH", "STOCK", "VARIANTS"},
		dishRows,
	)

	text += "\n\n" + renderOffersTable(offers)

	for _, warning := range warnings {
		text += "\nwarning: " + warning
	}
	return text
}

func renderOffersTable(offers []domain.Offer) string {
	offerRows := make([][]string, 0, len(offers))
	for _, offer := range offers {
		offerRows = append(offerRows, []string{offer.FormatTitle(), offer.FormatCode(), offer.Restaurant, offer.Discount})
	}
	return output.RenderTable(
		fmt.Sprintf("Offers (%d)", len(offers)),
		[]string{"TITLE", "CODE", "RESTAURANT", "DISCOUNT"},
		offerRows,
	)
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
