package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mekedron/swiggy-audit/internal/domain"
	"github.com/mekedron/swiggy-audit/internal/gateway/swiggy"
	"github.com/mekedron/swiggy-audit/internal/service/export"
	"github.com/mekedron/swiggy-audit/internal/service/extract"
	"github.com/mekedron/swiggy-audit/internal/service/reference"
)

const maxReferenceUploadBytes = 10 << 20

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func previewHandler(api swiggy.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := splitIDs(r.URL.Query().Get("res_id"))
		if len(ids) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "res_id is required"})
			return
		}
		dishes, offers := scrapeAll(r.Context(), api, ids)
		writeJSON(w, http.StatusOK, map[string]any{"items": dishes, "offers": offers})
	}
}

func downloadHandler(api swiggy.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := splitIDs(r.URL.Query().Get("res_id"))
		if len(ids) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "res_id is required"})
			return
		}
		dishes, offers := scrapeAll(r.Context(), api, ids)
		rows := extract.Flatten(dishes)

		sheets := []export.Sheet{}
		if len(rows) > 0 {
			sheets = append(sheets, export.MenuSheet("Client", rows))
		}
		if len(offers) > 0 {
			sheets = append(sheets, export.OfferSheet("Client", offers))
		}

		filename := export.Filename(export.RestaurantNames(rows), time.Now()) + ".zip"
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := export.Archive(w, sheets); err != nil {
			log.Println("download archive error:", err)
		}
	}
}

func compareOffersHandler(api swiggy.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := splitIDs(r.URL.Query().Get("res_id"))
		if len(ids) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "res_id is required"})
			return
		}

		if err := r.ParseMultipartForm(maxReferenceUploadBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid file format"})
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid file format"})
			return
		}
		defer func() {
			_ = file.Close()
		}()

		referenceOffers, err := reference.LoadOffers(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid file format"})
			return
		}

		_, scraped := scrapeAll(r.Context(), api, ids)
		mismatches, err := extract.Reconcile(referenceOffers, scraped)
		if err != nil {
			if errors.Is(err, extract.ErrNoOffersScraped) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "No offers scraped"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "comparison failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"mismatches": mismatches})
	}
}

// scrapeAll fetches every identifier, skipping the ones that fail upstream.
func scrapeAll(ctx context.Context, api swiggy.API, ids []string) ([]domain.Dish, []domain.Offer) {
	dishes := []domain.Dish{}
	offers := []domain.Offer{}
	for _, id := range ids {
		doc, err := api.MenuPage(ctx, id)
		if err != nil {
			log.Printf("Error fetching %s: %v", id, err)
			continue
		}
		dishes = append(dishes, extract.ParseMenu(doc)...)
		offers = append(offers, extract.ParseOffers(doc)...)
	}
	return dishes, offers
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

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("encode response error:", err)
	}
}
