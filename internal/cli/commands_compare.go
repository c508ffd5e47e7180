package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mekedron/swiggy-audit/internal/domain"
	"github.com/mekedron/swiggy-audit/internal/service/extract"
	"github.com/mekedron/swiggy-audit/internal/service/output"
	"github.com/mekedron/swiggy-audit/internal/service/reference"
	"github.com/mekedron/swiggy-audit/internal/storage/snapshot"
	"github.com/spf13/cobra"
)

func newCompareOffersCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var resIDs string
	var referencePath string
	var referenceRun int64

	cmd := &cobra.Command{
		Use:   "compare-offers",
		Short: "Reconcile live offers against a reference file or saved run.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return emitError(cmd, output.FormatTable, resolveClientLabel(flags.Client), flags.Output, "SWIGGY_INVALID_ARGUMENT", err.Error())
			}

			hasFile := cmd.Flags().Changed("reference")
			hasRun := cmd.Flags().Changed("reference-run")
			if hasFile == hasRun {
				return emitError(
					cmd,
					format,
					resolveClientLabel(flags.Client),
					flags.Output,
					"SWIGGY_INVALID_ARGUMENT",
					"provide exactly one of --reference or --reference-run",
				)
			}

			scope, err := resolveScope(cmd.Context(), deps, flags, resIDs, format, cmd)
			if err != nil {
				return err
			}

			var referenceOffers []domain.Offer
			if hasFile {
				referenceOffers, err = loadReferenceFile(referencePath)
				if err != nil {
					return emitError(cmd, format, scope.Client, flags.Output, "INVALID_REFERENCE_FILE", "Invalid file format")
				}
			} else {
				if deps.Snapshots == nil {
					return emitError(cmd, format, scope.Client, flags.Output, "SWIGGY_CONFIG_ERROR", "snapshot store is not available")
				}
				referenceOffers, err = deps.Snapshots.RunOffers(cmd.Context(), referenceRun)
				if err != nil {
					if errors.Is(err, snapshot.ErrRunNotFound) {
						return emitError(cmd, format, scope.Client, flags.Output, "SWIGGY_INVALID_ARGUMENT", fmt.Sprintf("run %d not found", referenceRun))
					}
					return emitError(cmd, format, scope.Client, flags.Output, "SWIGGY_CONFIG_ERROR", err.Error())
				}
			}

			_, scraped, warnings := scrapeMenus(cmd.Context(), deps, scope.IDs, flags.Verbose)

			mismatches, err := extract.Reconcile(referenceOffers, scraped)
			if err != nil {
				if errors.Is(err, extract.ErrNoOffersScraped) {
					return emitError(cmd, format, scope.Client, flags.Output, "NO_OFFERS_SCRAPED", "No offers scraped")
				}
				return emitError(cmd, format, scope.Client, flags.Output, "SWIGGY_UPSTREAM_ERROR", err.Error())
			}

			if format == output.FormatTable {
				text := renderMismatchTable(mismatches, warnings)
				return writeTable(cmd, text, flags.Output)
			}

			env := output.BuildEnvelope(scope.Client, envelopeSource, map[string]any{
				"mismatches": mismatches,
			}, warnings, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&resIDs, "res-ids", "", "Comma-separated Swiggy restaurant ids.")
	cmd.Flags().StringVar(&referencePath, "reference", "", "CSV or TSV file with the expected offers.")
	cmd.Flags().Int64Var(&referenceRun, "reference-run", 0, "Saved run id whose offers act as the reference set.")
	return cmd
}

func loadReferenceFile(path string) ([]domain.Offer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	offers, err := reference.LoadOffers(f)
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func renderMismatchTable(mismatches []domain.Offer, warnings []string) string {
	rows := make([][]string, 0, len(mismatches))
	for _, offer := range mismatches {
		rows = append(rows, []string{offer.FormatTitle(), offer.FormatCode(), offer.Restaurant, offer.Discount})
	}
	text := output.RenderTable(
		fmt.Sprintf("Mismatched offers (%d)", len(mismatches)),
		[]string{"TITLE", "CODE", "RESTAURANT", "DISCOUNT"},
		rows,
	)
	for _, warning := range warnings {
		text += "\nwarning: " + warning
	}
	return text
}
