package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPrice renders a 2-decimal price value.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatBasePrice renders the dish base price.
func (d Dish) FormatBasePrice() string {
	return FormatPrice(d.BasePrice)
}

// FormatFinalPrice renders the flash-sale price.
func (d Dish) FormatFinalPrice() string {
	if d.FinalPrice == nil {
		return "-"
	}
	return FormatPrice(*d.FinalPrice)
}

// FormatFlashSale renders the flash-sale flag for legacy tables.
func (d Dish) FormatFlashSale() string {
	if d.FlashSale {
		return "ON"
	}
	return "OFF"
}

// FormatInStock renders stock status.
func (d Dish) FormatInStock() string {
	if d.InStock {
		return "yes"
	}
	return "no"
}

// FormatVariants renders a compact variant summary.
func (d Dish) FormatVariants() string {
	if len(d.Variants) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(d.Variants))
	for _, v := range d.Variants {
		parts = append(parts, fmt.Sprintf("%s/%s", v.Group, v.Name))
	}
	return strings.Join(parts, ", ")
}

// FormatCode renders the coupon code.
func (o Offer) FormatCode() string {
	if strings.TrimSpace(o.Code) == "" {
		return "-"
	}
	return o.Code
}

// FormatTitle renders offer title with subzone attribution.
func (o Offer) FormatTitle() string {
	if strings.TrimSpace(o.Subzone) == "" {
		return o.Title
	}
	return fmt.Sprintf("%s (%s)", o.Title, o.Subzone)
}
