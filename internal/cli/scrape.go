package cli

import (
	"context"
	"fmt"

	"github.com/mekedron/swiggy-audit/internal/domain"
	"github.com/mekedron/swiggy-audit/internal/service/extract"
)

// scrapeMenus fetches every restaurant id and normalizes dishes and offers.
// A failed fetch degrades to an empty document plus a warning so one bad
// identifier never sinks the whole run.
func scrapeMenus(
	ctx context.Context,
	deps Dependencies,
	ids []string,
	verbose bool,
) ([]domain.Dish, []domain.Offer, []string) {
	dishes := []domain.Dish{}
	offers := []domain.Offer{}
	warnings := []string{}
	for _, id := range ids {
		doc, err := deps.Swiggy.MenuPage(ctx, id)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Error fetching %s: %s", id, fetchErrorMessage(err, verbose)))
			continue
		}
		dishes = append(dishes, extract.ParseMenu(doc)...)
		offers = append(offers, extract.ParseOffers(doc)...)
	}
	return dishes, offers, warnings
}
