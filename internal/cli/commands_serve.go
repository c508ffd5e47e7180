package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mekedron/swiggy-audit/internal/server"
)

func newServeCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP facade for dashboard clients.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Missing .env is fine, env vars may come from the shell.
			_ = godotenv.Load()

			opts := server.OptionsFromEnv()
			if cmd.Flags().Changed("port") {
				opts.Port = port
			}
			return server.ListenAndServe(deps.Swiggy, opts)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().StringVar(&port, "port", "8000", "Listen port, overrides the PORT environment variable.")
	return cmd
}
