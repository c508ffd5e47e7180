// Package server exposes the scrape pipeline over HTTP for dashboard use.
package server

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/rs/cors"

	"github.com/mekedron/swiggy-audit/internal/gateway/swiggy"
)

// Options stores listener settings.
type Options struct {
	Port           string
	AllowedOrigins []string
}

// OptionsFromEnv reads PORT and ALLOWED_ORIGINS with local-dev defaults.
func OptionsFromEnv() Options {
	opts := Options{
		Port:           os.Getenv("PORT"),
		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
	}
	if opts.Port == "" {
		opts.Port = "8000"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	return opts
}

func splitOrigins(raw string) []string {
	origins := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}

// Handler builds the full CORS-wrapped route set.
func Handler(api swiggy.API, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /swiggy/preview", previewHandler(api))
	mux.HandleFunc("GET /swiggy/download", downloadHandler(api))
	mux.HandleFunc("POST /swiggy/compare-offers", compareOffersHandler(api))

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

// ListenAndServe runs the facade until the listener fails.
func ListenAndServe(api swiggy.API, opts Options) error {
	log.Printf("Server starting on port %s", opts.Port)
	return http.ListenAndServe(":"+opts.Port, Handler(api, opts))
}
