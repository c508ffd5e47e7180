package extract

import "github.com/mekedron/swiggy-audit/internal/domain"

const (
	defaultOfferTitle     = "Offer"
	offerImagePlaceholder = "https://via.placeholder.com/120?text=No+Logo"
)

// ParseOffers re-derives restaurant identity and collects offers from every
// card. Three shapes are probed per card and all hits are concatenated: a
// styled grid container, a direct offer list, and offer lists one level down
// in nested sub-cards.
func ParseOffers(doc map[string]any) []domain.Offer {
	rctx := restaurantContext(doc)
	offers := []domain.Offer{}

	for _, rawCard := range documentCards(doc) {
		card := toMap(toMap(toMap(rawCard)["card"])["card"])
		if card == nil {
			continue
		}

		candidates := []any{}
		candidates = append(candidates, toSlice(toMap(toMap(card["gridElements"])["infoWithStyle"])["offers"])...)
		candidates = append(candidates, toSlice(card["offers"])...)
		for _, rawNested := range toSlice(card["cards"]) {
			nested := toMap(toMap(toMap(rawNested)["card"])["card"])
			candidates = append(candidates, toSlice(nested["offers"])...)
		}

		for _, rawOffer := range candidates {
			info := toMap(toMap(rawOffer)["info"])
			offers = append(offers, buildOffer(info, rctx))
		}
	}

	return offers
}

func buildOffer(info map[string]any, rctx domain.RestaurantContext) domain.Offer {
	title := stringFromAny(info["header"])
	if title == "" {
		title = defaultOfferTitle
	}
	image := stringFromAny(info["offerLogo"])
	if image == "" {
		image = offerImagePlaceholder
	}
	return domain.Offer{
		// Offer rows never saw the numeric id upstream; the name doubles as
		// the identifier here.
		ResID:       rctx.Name,
		Restaurant:  rctx.Name,
		Subzone:     rctx.Subzone,
		Title:       title,
		Code:        stringFromAny(info["couponCode"]),
		Description: stringFromAny(info["description"]),
		Discount:    stringFromAny(info["discountType"]),
		Image:       image,
	}
}
