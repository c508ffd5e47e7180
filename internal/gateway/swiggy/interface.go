package swiggy

import "context"

// API describes the Swiggy upstream operations used by the CLI and server.
type API interface {
	MenuPage(ctx context.Context, restaurantID string) (map[string]any, error)
}
