package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mekedron/swiggy-audit/internal/cli"
	"github.com/mekedron/swiggy-audit/internal/config"
	swiggygateway "github.com/mekedron/swiggy-audit/internal/gateway/swiggy"
	"github.com/mekedron/swiggy-audit/internal/service/clients"
	"github.com/mekedron/swiggy-audit/internal/storage/snapshot"
)

var version = "dev"

const (
	defaultSwiggyHTTPMinInterval = 220 * time.Millisecond
	swiggyHTTPMinIntervalEnv     = "SWIGGY_HTTP_MIN_INTERVAL_MS"
	snapshotPathEnv              = "SWIGGY_AUDIT_SNAPSHOT_PATH"
)

func main() {
	store, err := config.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	snapshots, err := snapshot.Open(resolveSnapshotPath())
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	deps := cli.Dependencies{
		Swiggy: swiggygateway.NewClient(
			swiggygateway.WithRequestMinInterval(resolveSwiggyRequestMinInterval()),
		),
		Clients:   clients.NewResolver(store),
		Config:    store,
		Snapshots: snapshots,
		Version:   version,
	}

	exitCode := cli.Execute(context.Background(), os.Args[1:], deps, os.Stdout, os.Stderr)
	_ = snapshots.Close()
	os.Exit(exitCode)
}

func resolveSwiggyRequestMinInterval() time.Duration {
	raw := strings.TrimSpace(os.Getenv(swiggyHTTPMinIntervalEnv))
	if raw == "" {
		return defaultSwiggyHTTPMinInterval
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return defaultSwiggyHTTPMinInterval
	}
	return time.Duration(ms) * time.Millisecond
}

func resolveSnapshotPath() string {
	if raw := strings.TrimSpace(os.Getenv(snapshotPathEnv)); raw != "" {
		return raw
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "snapshots.db"
	}
	dir := filepath.Join(home, ".swiggy-audit")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "snapshots.db")
}
