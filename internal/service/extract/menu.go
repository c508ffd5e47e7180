// Package extract normalizes raw menu-page documents into flat dish, offer
// and export rows. Every traversal step is total: missing keys, wrong types
// and half-shaped cards degrade to empty results instead of errors.
package extract

import "github.com/mekedron/swiggy-audit/internal/domain"

// ParseMenu walks one raw document and normalizes every dish it can reach,
// preserving category and document order.
func ParseMenu(doc map[string]any) []domain.Dish {
	rctx := restaurantContext(doc)
	dishes := []domain.Dish{}

	for _, rawCard := range menuGroupCards(doc) {
		card := toMap(toMap(toMap(rawCard)["card"])["card"])
		if card == nil {
			continue
		}

		categories := toSlice(card["categories"])
		if len(categories) > 0 {
			for _, rawCategory := range categories {
				category := toMap(rawCategory)
				title := stringFromAny(category["title"])
				for _, rawItem := range toSlice(category["itemCards"]) {
					info := toMap(toMap(toMap(rawItem)["card"])["info"])
					dishes = append(dishes, parseItem(info, rctx, title)...)
				}
			}
			continue
		}

		// Flat layouts carry itemCards directly on the card; the card title
		// acts as the implicit category.
		title := stringFromAny(card["title"])
		for _, rawItem := range toSlice(card["itemCards"]) {
			itemCard := toMap(toMap(rawItem)["card"])
			info := toMap(itemCard["info"])
			if info == nil {
				info = toMap(toMap(itemCard["card"])["info"])
			}
			dishes = append(dishes, parseItem(info, rctx, title)...)
		}
	}

	return dishes
}

// menuGroupCards returns the first populated regular-menu card group.
func menuGroupCards(doc map[string]any) []any {
	for _, rawCard := range documentCards(doc) {
		group := toSlice(toMap(toMap(toMap(toMap(rawCard)["groupedCard"])["cardGroupMap"])["REGULAR"])["cards"])
		if len(group) > 0 {
			return group
		}
	}
	return nil
}
