package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mekedron/swiggy-audit/internal/domain"
	swiggygateway "github.com/mekedron/swiggy-audit/internal/gateway/swiggy"
	"github.com/mekedron/swiggy-audit/internal/service/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestCommandOptionsHideSharedGlobals(t *testing.T) {
	root := NewRootCommand(Dependencies{Version: "test"})

	preview, found := findCommand(root, "preview")
	if !found {
		t.Fatal("preview command not found")
	}
	for _, option := range commandOptions(preview) {
		if option.name == "format" || option.name == "client" || option.name == "output" || option.name == "verbose" {
			t.Fatalf("shared global option leaked into command-specific options: %s", option.name)
		}
	}
	hasResIDs := false
	for _, option := range commandOptions(preview) {
		if option.name == "res-ids" {
			hasResIDs = true
			break
		}
	}
	if !hasResIDs {
		t.Fatal("expected preview command to document its res-ids option")
	}
}

func TestRenderRootHelpIncludesGlobalSection(t *testing.T) {
	root := NewRootCommand(Dependencies{Version: "test"})
	buf := &bytes.Buffer{}
	renderRootHelp(buf, root)
	out := buf.String()
	if !strings.Contains(out, "global options") {
		t.Fatalf("expected global options in help output:\n%s", out)
	}
	if !strings.Contains(out, "--client") {
		t.Fatalf("expected client in help output:\n%s", out)
	}
	for _, command := range []string{"preview", "export", "compare-offers", "history", "serve", "configure"} {
		if !strings.Contains(out, command) {
			t.Fatalf("expected %s command in help output:\n%s", command, out)
		}
	}
}

type testVerboseTraceSetter struct {
	output io.Writer
}

func (s *testVerboseTraceSetter) SetVerboseOutput(out io.Writer) {
	s.output = out
}

func TestAttachVerboseHTTPTrace(t *testing.T) {
	cmd := &cobra.Command{}
	stderr := &bytes.Buffer{}
	cmd.SetErr(stderr)
	cmd.Flags().Bool("verbose", false, "test verbose")

	setter := &testVerboseTraceSetter{}
	attachVerboseHTTPTrace(cmd, setter)
	if setter.output != nil {
		t.Fatal("expected verbose trace sink to stay disabled when --verbose is false")
	}

	if err := cmd.Flags().Set("verbose", "true"); err != nil {
		t.Fatalf("set verbose flag: %v", err)
	}
	attachVerboseHTTPTrace(cmd, setter)
	if setter.output == nil {
		t.Fatal("expected verbose trace sink to be enabled")
	}
	if !strings.Contains(stderr.String(), "http trace enabled") {
		t.Fatalf("expected trace activation message, got %q", stderr.String())
	}
}

func TestEmitUpstreamErrorFormatting(t *testing.T) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	err := emitUpstreamError(
		cmd,
		output.FormatTable,
		"Client",
		"",
		false,
		&swiggygateway.UpstreamRequestError{StatusCode: 503},
	)
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("expected controlled exit error, got %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "status 503") || !strings.Contains(got, "use --verbose") {
		t.Fatalf("expected non-verbose status hint, got %q", got)
	}
}

func TestFetchErrorMessage(t *testing.T) {
	upstream := &swiggygateway.UpstreamRequestError{StatusCode: 429, Body: "slow down"}
	terse := fetchErrorMessage(upstream, false)
	if !strings.Contains(terse, "status 429") || strings.Contains(terse, "slow down") {
		t.Fatalf("expected terse message without body, got %q", terse)
	}
	verbose := fetchErrorMessage(upstream, true)
	if !strings.Contains(verbose, "slow down") {
		t.Fatalf("expected verbose message with body, got %q", verbose)
	}
}

func TestResolveScopePrefersExplicitIDs(t *testing.T) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	deps := Dependencies{Clients: &testClients{err: errors.New("should not be called")}}

	scope, err := resolveScope(context.Background(), deps, globalFlags{Client: "Acme"}, "1, 2 ,3", output.FormatTable, cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scope.IDs) != 3 || scope.IDs[1] != "2" {
		t.Fatalf("unexpected ids: %v", scope.IDs)
	}
	if scope.Client != "Acme" {
		t.Fatalf("expected explicit client label, got %q", scope.Client)
	}
}

func TestResolveScopeRejectsEmptyGroup(t *testing.T) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	deps := Dependencies{Clients: &testClients{client: domain.Client{Name: "Acme"}}}

	_, err := resolveScope(context.Background(), deps, globalFlags{Client: "Acme"}, "", output.FormatTable, cmd)
	if err == nil {
		t.Fatal("expected error for group without restaurant ids")
	}
	if !strings.Contains(buf.String(), "has no restaurant ids") {
		t.Fatalf("unexpected message: %q", buf.String())
	}
}

func TestResolveClientLabel(t *testing.T) {
	if got := resolveClientLabel(""); got != "Client" {
		t.Fatalf("expected Client fallback, got %q", got)
	}
	if got := resolveClientLabel(" Acme "); got != "Acme" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
}

func TestSplitIDs(t *testing.T) {
	ids := splitIDs(" 1, ,2,,3 ")
	if len(ids) != 3 || ids[0] != "1" || ids[2] != "3" {
		t.Fatalf("unexpected ids: %v", ids)
	}
	if got := splitIDs("  "); len(got) != 0 {
		t.Fatalf("expected empty result for blank input, got %v", got)
	}
}

func TestFlagHelpers(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.StringP("client", "c", "", "Client.")
	flag := flagSet.Lookup("client")
	if flag == nil {
		t.Fatal("client flag not found")
	}
	flag.Annotations = map[string][]string{cobra.BashCompOneRequiredFlag: {"true"}}

	token := flagToken(flag)
	if token != "--client/-c" {
		t.Fatalf("unexpected flag token: %q", token)
	}
	if !isFlagRequired(flag) {
		t.Fatal("expected required flag")
	}
	label := optionLabels(optionDoc{required: true, inherited: true})
	if label != " [required, global]" {
		t.Fatalf("unexpected option labels: %q", label)
	}
}

func findCommand(root *cobra.Command, path ...string) (*cobra.Command, bool) {
	current := root
	for _, segment := range path {
		next := current.Commands()
		found := false
		for _, cmd := range next {
			if cmd.Name() == segment {
				current = cmd
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return current, true
}
