package extract

import "github.com/mekedron/swiggy-audit/internal/domain"

const imageBaseURL = "https://media-assets.swiggy.com/swiggy/image/upload/"

// parseItem normalizes one item info node. An empty node yields an empty
// slice so callers can concatenate results without branching.
func parseItem(info map[string]any, rctx domain.RestaurantContext, categoryTitle string) []domain.Dish {
	if len(info) == 0 {
		return nil
	}

	image := ""
	if imageID := stringFromAny(info["imageId"]); imageID != "" {
		image = imageBaseURL + imageID
	}

	category := categoryTitle
	if category == "" {
		category = stringFromAny(info["category"])
	}

	base := basePrice(info)
	final := finalPrice(info)

	return []domain.Dish{{
		ResID:       rctx.ID,
		Restaurant:  rctx.Name,
		Subzone:     rctx.Subzone,
		Category:    category,
		Name:        stringFromAny(info["name"]),
		Description: stringFromAny(info["description"]),
		BasePrice:   base,
		FinalPrice:  final,
		FlashSale:   flashSale(base, final),
		InStock:     truthy(info["inStock"]),
		Image:       image,
		Variants:    parseVariants(info),
	}}
}
