package cli

import (
	"fmt"
	"strings"

	"github.com/mekedron/swiggy-audit/internal/domain"
	"github.com/mekedron/swiggy-audit/internal/service/output"
	"github.com/spf13/cobra"
)

func newConfigureCommand(deps Dependencies) *cobra.Command {
	var clientName string
	var resIDs string
	var outputDir string
	var makeDefault bool
	var list bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Create and manage named client groups of restaurant ids.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				cfg, err := deps.Config.Load(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(cfg.Clients))
				for _, client := range cfg.Clients {
					rows = append(rows, []string{
						client.Name,
						formatBool(client.IsDefault),
						strings.Join(client.RestaurantIDs, ","),
					})
				}
				text := output.RenderTable(
					fmt.Sprintf("Clients (%s)", deps.Config.Path()),
					[]string{"NAME", "DEFAULT", "RESTAURANT IDS"},
					rows,
				)
				return writeTable(cmd, text, "")
			}

			ids := splitIDs(resIDs)
			if len(ids) == 0 {
				return fmt.Errorf("provide --res-ids to define the client group")
			}

			existingCfg, loadErr := deps.Config.Load(cmd.Context())
			if loadErr != nil {
				cfg := domain.Config{
					Clients: []domain.Client{
						{
							Name:          clientName,
							IsDefault:     true,
							RestaurantIDs: ids,
							OutputDir:     strings.TrimSpace(outputDir),
						},
					},
				}
				if err := deps.Config.Save(cmd.Context(), cfg); err != nil {
					return err
				}
				return writeTable(cmd, "🏁 Config was created successfully!", "")
			}

			index := findClientIndex(existingCfg, clientName)
			if index < 0 {
				existingCfg.Clients = append(existingCfg.Clients, domain.Client{Name: clientName})
				index = len(existingCfg.Clients) - 1
			}
			existingCfg.Clients[index].RestaurantIDs = ids
			if strings.TrimSpace(outputDir) != "" {
				existingCfg.Clients[index].OutputDir = strings.TrimSpace(outputDir)
			}
			if makeDefault {
				for i := range existingCfg.Clients {
					existingCfg.Clients[i].IsDefault = i == index
				}
			}
			if err := deps.Config.Save(cmd.Context(), existingCfg); err != nil {
				return err
			}
			return writeTable(cmd, "🏁 Config was updated successfully!", "")
		},
	}

	cmd.Flags().StringVar(&clientName, "client", "Default", "Client group name")
	cmd.Flags().StringVar(&resIDs, "res-ids", "", "Comma-separated Swiggy restaurant ids saved with the group.")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Optional default directory for export files of this group.")
	cmd.Flags().BoolVar(&makeDefault, "default", false, "Mark this client group as the default")
	cmd.Flags().BoolVar(&list, "list", false, "List configured client groups and exit")
	return cmd
}

func findClientIndex(cfg domain.Config, clientName string) int {
	trimmed := strings.TrimSpace(clientName)
	if trimmed != "" {
		for i, client := range cfg.Clients {
			if strings.EqualFold(strings.TrimSpace(client.Name), trimmed) {
				return i
			}
		}
	}
	return -1
}
