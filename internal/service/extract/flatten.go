package extract

import "github.com/mekedron/swiggy-audit/internal/domain"

// Flatten expands dishes into one row per variant, or a single row with nil
// variant fields when a dish has none. Total row count is always
// sum(max(1, len(variants))). Input dishes are never mutated.
func Flatten(dishes []domain.Dish) []domain.FlatRow {
	rows := []domain.FlatRow{}
	for _, dish := range dishes {
		if len(dish.Variants) == 0 {
			rows = append(rows, flatRow(dish, nil))
			continue
		}
		for _, variant := range dish.Variants {
			v := variant
			rows = append(rows, flatRow(dish, &v))
		}
	}
	return rows
}

func flatRow(dish domain.Dish, variant *domain.Variant) domain.FlatRow {
	row := domain.FlatRow{
		ResID:       dish.ResID,
		Restaurant:  dish.Restaurant,
		Subzone:     dish.Subzone,
		Category:    dish.Category,
		Name:        dish.Name,
		Description: dish.Description,
		BasePrice:   dish.BasePrice,
		FinalPrice:  dish.FinalPrice,
		FlashSale:   dish.FlashSale,
		InStock:     dish.InStock,
		Image:       dish.Image,
	}
	if variant == nil {
		return row
	}
	group := variant.Group
	name := variant.Name
	priceAdd := variant.PriceAdd
	isDefault := variant.IsDefault
	row.VariantGroup = &group
	row.VariantName = &name
	row.VariantPriceAdd = &priceAdd
	row.VariantInStock = variant.InStock
	row.VariantIsDefault = &isDefault
	return row
}
