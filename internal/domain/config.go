package domain

// Client stores one named group of restaurant ids.
type Client struct {
	Name          string   `json:"name"`
	IsDefault     bool     `json:"is_default"`
	RestaurantIDs []string `json:"restaurant_ids"`
	OutputDir     string   `json:"output_dir,omitempty"`
}

// Config stores all local client groups.
type Config struct {
	Clients []Client `json:"clients"`
}
