package extract

import "github.com/mekedron/swiggy-audit/internal/domain"

func documentCards(doc map[string]any) []any {
	return toSlice(toMap(doc["data"])["cards"])
}

// restaurantContext scans cards in document order and stops at the first
// restaurant info node exposing a non-empty name. Multi-outlet payloads keep
// first-match-wins; the scan is repeated per parser so the two pipelines stay
// fault-isolated.
func restaurantContext(doc map[string]any) domain.RestaurantContext {
	for _, rawCard := range documentCards(doc) {
		info := toMap(toMap(toMap(toMap(rawCard)["card"])["card"])["info"])
		if info == nil {
			continue
		}
		name := stringFromAny(info["name"])
		if name == "" {
			continue
		}
		return domain.RestaurantContext{
			ID:      stringFromAny(info["id"]),
			Name:    name,
			Subzone: stringFromAny(coalesce(info["areaName"], info["subzoneName"])),
		}
	}
	return domain.RestaurantContext{}
}
