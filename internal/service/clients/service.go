// Package clients resolves named client groups from local configuration.
package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mekedron/swiggy-audit/internal/domain"
)

var (
	// ErrDefaultClientNotFound indicates config has no default client group.
	ErrDefaultClientNotFound = errors.New("no default client found")
	// ErrClientNotFound indicates requested client group does not exist.
	ErrClientNotFound = errors.New("client not found")
)

// Loader provides config payloads.
type Loader interface {
	Load(ctx context.Context) (domain.Config, error)
}

// Resolver resolves client group names.
type Resolver struct {
	loader Loader
}

// NewResolver creates a client resolver.
func NewResolver(loader Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Find resolves explicit client names or defaults.
func (r *Resolver) Find(ctx context.Context, clientName string) (domain.Client, error) {
	cfg, err := r.loader.Load(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	if strings.TrimSpace(clientName) == "" {
		for _, client := range cfg.Clients {
			if client.IsDefault {
				return client, nil
			}
		}
		return domain.Client{}, ErrDefaultClientNotFound
	}

	want := strings.ToLower(strings.TrimSpace(clientName))
	for _, client := range cfg.Clients {
		if strings.ToLower(client.Name) == want {
			return client, nil
		}
	}
	available := make([]string, 0, len(cfg.Clients))
	for _, client := range cfg.Clients {
		available = append(available, client.Name)
	}
	return domain.Client{}, fmt.Errorf("%w: %s (available: %s)", ErrClientNotFound, want, strings.Join(available, ", "))
}
