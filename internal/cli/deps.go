package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/mekedron/swiggy-audit/internal/domain"
	swiggygateway "github.com/mekedron/swiggy-audit/internal/gateway/swiggy"
	"github.com/mekedron/swiggy-audit/internal/storage/snapshot"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// ClientResolver resolves named client groups.
type ClientResolver interface {
	Find(ctx context.Context, clientName string) (domain.Client, error)
}

// ConfigManager stores client group config payloads.
type ConfigManager interface {
	Path() string
	Load(ctx context.Context) (domain.Config, error)
	Save(ctx context.Context, cfg domain.Config) error
}

// SnapshotStore persists scrape runs for later comparison.
type SnapshotStore interface {
	SaveRun(ctx context.Context, client string, restaurantIDs []string, itemCount int, offers []domain.Offer) (int64, error)
	History(ctx context.Context, limit int) ([]snapshot.Run, error)
	RunOffers(ctx context.Context, runID int64) ([]domain.Offer, error)
}

// Dependencies wires runtime services.
type Dependencies struct {
	Swiggy    swiggygateway.API
	Clients   ClientResolver
	Config    ConfigManager
	Snapshots SnapshotStore
	Version   string
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
