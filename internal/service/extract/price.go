package extract

// Dish prices arrive in minor units; variant deltas arrive in rupees already.
// The asymmetry is the upstream convention for add-on pricing, keep it.
const dishPriceDivisor = 100

func basePrice(info map[string]any) float64 {
	raw, ok := numberFromAny(info["price"])
	if !ok || raw == 0 {
		raw, _ = numberFromAny(info["defaultPrice"])
	}
	return round2(raw / dishPriceDivisor)
}

func finalPrice(info map[string]any) *float64 {
	raw, ok := numberFromAny(info["finalPrice"])
	if !ok || raw == 0 {
		return nil
	}
	v := round2(raw / dishPriceDivisor)
	return &v
}

func flashSale(base float64, final *float64) bool {
	return final != nil && *final < base
}

func variantPriceAdd(variation map[string]any) float64 {
	raw, ok := numberFromAny(variation["price"])
	if !ok || raw == 0 {
		raw, _ = numberFromAny(variation["defaultPrice"])
	}
	return round2(float64(int64(raw)))
}
