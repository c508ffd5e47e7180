package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	swiggygateway "github.com/mekedron/swiggy-audit/internal/gateway/swiggy"
	"github.com/mekedron/swiggy-audit/internal/service/output"
	"github.com/spf13/cobra"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format  string
	Client  string
	Output  string
	Verbose bool
}

const sharedGlobalFlagAnnotation = "swiggy_audit_shared_global"

const envelopeSource = "swiggy"

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	addSharedGlobalFlag(cmd, "format", func() {
		cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	})
	addSharedGlobalFlag(cmd, "client", func() {
		cmd.Flags().StringVar(&flags.Client, "client", "", "Named client group with saved restaurant ids.")
	})
	addSharedGlobalFlag(cmd, "output", func() {
		cmd.Flags().StringVar(&flags.Output, "output", "", "Also write rendered output to this file path.")
	})
	addSharedGlobalFlag(cmd, "verbose", func() {
		cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Enable verbose output (prints upstream request trace and detailed error diagnostics).")
	})
}

func addSharedGlobalFlag(cmd *cobra.Command, name string, register func()) {
	if cmd.Flags().Lookup(name) != nil {
		return
	}
	register()
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[sharedGlobalFlagAnnotation] = []string{"true"}
}

func resolveClientLabel(clientName string) string {
	client := strings.TrimSpace(clientName)
	if client == "" {
		return "Client"
	}
	return client
}

func parseOutputFormat(format string) (output.Format, error) {
	return output.ParseFormat(format)
}

func writeTable(cmd *cobra.Command, text string, outputPath string) error {
	if err := output.WriteOutput(cmd.OutOrStdout(), text, outputPath); err != nil {
		return err
	}
	return nil
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	if err := output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath); err != nil {
		return err
	}
	return nil
}

func emitError(
	cmd *cobra.Command,
	format output.Format,
	client string,
	outputPath string,
	code string,
	message string,
) error {
	if format == output.FormatTable {
		if err := output.WriteOutput(cmd.OutOrStdout(), message, outputPath); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(client, envelopeSource, nil, []string{}, map[string]any{
		"code":    code,
		"message": message,
	})
	if err := writeMachinePayload(cmd, env, format, outputPath); err != nil {
		return err
	}
	return &exitError{code: 1}
}

func emitUpstreamError(
	cmd *cobra.Command,
	format output.Format,
	client string,
	outputPath string,
	verbose bool,
	err error,
) error {
	if err == nil {
		err = swiggygateway.ErrUpstream
	}
	if verbose {
		return emitError(cmd, format, client, outputPath, "SWIGGY_UPSTREAM_ERROR", err.Error())
	}

	message := swiggygateway.ErrUpstream.Error() + " (use --verbose for details)"
	var upstreamErr *swiggygateway.UpstreamRequestError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode > 0 {
		message = fmt.Sprintf("%s (status %d, use --verbose for details)", swiggygateway.ErrUpstream.Error(), upstreamErr.StatusCode)
	}
	return emitError(cmd, format, client, outputPath, "SWIGGY_UPSTREAM_ERROR", message)
}

func fetchErrorMessage(err error, verbose bool) string {
	if err == nil {
		return swiggygateway.ErrUpstream.Error()
	}
	if verbose {
		return err.Error()
	}
	var upstreamErr *swiggygateway.UpstreamRequestError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", swiggygateway.ErrUpstream.Error(), upstreamErr.StatusCode)
	}
	return swiggygateway.ErrUpstream.Error()
}

func splitIDs(raw string) []string {
	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// scrapeScope stores the resolved restaurant ids for a command run plus the
// client group metadata that came with them.
type scrapeScope struct {
	IDs       []string
	Client    string
	OutputDir string
}

// resolveScope picks the restaurant ids for a command run. Explicit --res-ids
// wins; otherwise the named (or default) client group supplies the list.
func resolveScope(
	ctx context.Context,
	deps Dependencies,
	flags globalFlags,
	resIDs string,
	format output.Format,
	cmd *cobra.Command,
) (scrapeScope, error) {
	ids := splitIDs(resIDs)
	if len(ids) > 0 {
		return scrapeScope{IDs: ids, Client: resolveClientLabel(flags.Client)}, nil
	}

	if deps.Clients == nil {
		return scrapeScope{}, emitError(
			cmd,
			format,
			resolveClientLabel(flags.Client),
			flags.Output,
			"SWIGGY_INVALID_ARGUMENT",
			"--res-ids is required",
		)
	}
	client, err := deps.Clients.Find(ctx, flags.Client)
	if err != nil {
		return scrapeScope{}, emitError(
			cmd,
			format,
			resolveClientLabel(flags.Client),
			flags.Output,
			"SWIGGY_CONFIG_ERROR",
			err.Error(),
		)
	}
	if len(client.RestaurantIDs) == 0 {
		return scrapeScope{}, emitError(
			cmd,
			format,
			client.Name,
			flags.Output,
			"SWIGGY_INVALID_ARGUMENT",
			fmt.Sprintf("client %q has no restaurant ids; pass --res-ids or reconfigure the group", client.Name),
		)
	}
	return scrapeScope{IDs: client.RestaurantIDs, Client: client.Name, OutputDir: client.OutputDir}, nil
}
