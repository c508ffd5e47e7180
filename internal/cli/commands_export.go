package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mekedron/swiggy-audit/internal/service/export"
	"github.com/mekedron/swiggy-audit/internal/service/extract"
	"github.com/mekedron/swiggy-audit/internal/service/output"
	"github.com/spf13/cobra"
)

func newExportCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var resIDs string
	var outDir string
	var save bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Scrape menus and write CSV workbook sheets to disk.",
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
			rows := extract.Flatten(dishes)

			sheets := []export.Sheet{}
			if len(rows) > 0 {
				sheets = append(sheets, export.MenuSheet(scope.Client, rows))
			}
			if len(offers) > 0 {
				sheets = append(sheets, export.OfferSheet(scope.Client, offers))
			}

			targetDir := outDir
			if !cmd.Flags().Changed("out") && scope.OutputDir != "" {
				targetDir = scope.OutputDir
			}
			base := export.Filename(export.RestaurantNames(rows), time.Now())
			files, err := export.WriteFiles(targetDir, base, sheets)
			if err != nil {
				return emitError(cmd, format, scope.Client, flags.Output, "SWIGGY_CONFIG_ERROR", err.Error())
			}
			if len(files) == 0 {
				warnings = append(warnings, "nothing scraped, no files written")
			}

			var runID int64
			saved := false
			if save {
				if deps.Snapshots == nil {
					return emitError(cmd, format, scope.Client, flags.Output, "SWIGGY_CONFIG_ERROR", "snapshot store is not available")
				}
				runID, err = deps.Snapshots.SaveRun(cmd.Context(), scope.Client, scope.IDs, len(rows), offers)
				if err != nil {
					return emitError(cmd, format, scope.Client, flags.Output, "SWIGGY_CONFIG_ERROR", err.Error())
				}
				saved = true
			}

			if format == output.FormatTable {
				lines := make([]string, 0, len(files)+len(warnings)+2)
				for _, file := range files {
					lines = append(lines, "wrote "+file)
				}
				lines = append(lines, fmt.Sprintf("%d rows, %d offers", len(rows), len(offers)))
				if saved {
					lines = append(lines, fmt.Sprintf("saved run %d", runID))
				}
				for _, warning := range warnings {
					lines = append(lines, "warning: "+warning)
				}
				return writeTable(cmd, strings.Join(lines, "\n"), flags.Output)
			}

			data := map[string]any{
				"files":  files,
				"items":  len(rows),
				"offers": len(offers),
			}
			if saved {
				data["run_id"] = runID
			}
			env := output.BuildEnvelope(scope.Client, envelopeSource, data, warnings, nil)
			return writeMachinePayload(cmd, env, format, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&resIDs, "res-ids", "", "Comma-separated Swiggy restaurant ids.")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory for generated CSV files.")
	cmd.Flags().BoolVar(&save, "save", false, "Record this run in the local snapshot store.")
	return cmd
}
