package domain

// RestaurantContext stores restaurant identity scanned from one menu document.
// All fields stay empty when the document exposes no restaurant info card.
type RestaurantContext struct {
	ID      string `json:"res_id" yaml:"res_id"`
	Name    string `json:"restaurant" yaml:"restaurant"`
	Subzone string `json:"subzone" yaml:"subzone"`
}

// Variant stores one priced variation inside a dish variant group.
type Variant struct {
	Group     string  `json:"variant_group" yaml:"variant_group"`
	Name      string  `json:"variant_name" yaml:"variant_name"`
	PriceAdd  float64 `json:"variant_price_add" yaml:"variant_price_add"`
	InStock   *bool   `json:"variant_inStock" yaml:"variant_instock"`
	IsDefault bool    `json:"variant_isDefault" yaml:"variant_isdefault"`
	IsEnabled bool    `json:"variant_isEnabled" yaml:"variant_isenabled"`
}

// Dish stores one normalized menu item.
type Dish struct {
	ResID       string    `json:"res_id" yaml:"res_id"`
	Restaurant  string    `json:"restaurant" yaml:"restaurant"`
	Subzone     string    `json:"subzone" yaml:"subzone"`
	Category    string    `json:"category" yaml:"category"`
	Name        string    `json:"dish_name" yaml:"dish_name"`
	Description string    `json:"description" yaml:"description"`
	BasePrice   float64   `json:"base_price" yaml:"base_price"`
	FinalPrice  *float64  `json:"final_price" yaml:"final_price"`
	FlashSale   bool      `json:"flashSale" yaml:"flashSale"`
	InStock     bool      `json:"inStock" yaml:"in_stock"`
	Image       string    `json:"image,omitempty" yaml:"image,omitempty"`
	Variants    []Variant `json:"variants" yaml:"variants"`
}

// Offer stores one normalized promotional offer.
type Offer struct {
	ResID       string `json:"res_id" yaml:"res_id"`
	Restaurant  string `json:"restaurant" yaml:"restaurant"`
	Subzone     string `json:"subzone" yaml:"subzone"`
	Title       string `json:"title" yaml:"title"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Discount    string `json:"discount" yaml:"discount"`
	Image       string `json:"image" yaml:"image"`
}

// FlatRow stores one dish-or-variant expanded for tabular export. Variant
// fields are nil when the source dish carried no variants.
type FlatRow struct {
	ResID            string   `json:"res_id" yaml:"res_id"`
	Restaurant       string   `json:"restaurant" yaml:"restaurant"`
	Subzone          string   `json:"subzone" yaml:"subzone"`
	Category         string   `json:"category" yaml:"category"`
	Name             string   `json:"dish_name" yaml:"dish_name"`
	Description      string   `json:"description" yaml:"description"`
	BasePrice        float64  `json:"base_price" yaml:"base_price"`
	FinalPrice       *float64 `json:"final_price" yaml:"final_price"`
	FlashSale        bool     `json:"flashSale" yaml:"flashSale"`
	InStock          bool     `json:"inStock" yaml:"in_stock"`
	Image            string   `json:"image,omitempty" yaml:"image,omitempty"`
	VariantGroup     *string  `json:"variant_group" yaml:"variant_group"`
	VariantName      *string  `json:"variant_name" yaml:"variant_name"`
	VariantPriceAdd  *float64 `json:"variant_price_add" yaml:"variant_price_add"`
	VariantInStock   *bool    `json:"variant_inStock" yaml:"variant_instock"`
	VariantIsDefault *bool    `json:"variant_isDefault" yaml:"variant_isdefault"`
}
