package extract

import "github.com/mekedron/swiggy-audit/internal/domain"

func parseVariants(info map[string]any) []domain.Variant {
	variants := []domain.Variant{}
	for _, rawGroup := range toSlice(toMap(info["variantsV2"])["variantGroups"]) {
		group := toMap(rawGroup)
		if group == nil {
			continue
		}
		groupName := stringFromAny(group["name"])
		for _, rawVariation := range toSlice(group["variations"]) {
			variation := toMap(rawVariation)
			if variation == nil {
				continue
			}
			enabled := true
			if value, ok := variation["isEnabled"]; ok {
				enabled = truthy(value)
			}
			variants = append(variants, domain.Variant{
				Group:     groupName,
				Name:      stringFromAny(variation["name"]),
				PriceAdd:  variantPriceAdd(variation),
				InStock:   boolPtrFromAny(variation["inStock"]),
				IsDefault: truthy(variation["default"]),
				IsEnabled: enabled,
			})
		}
	}
	return variants
}
