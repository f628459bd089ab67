package models

// ServiceCatalogEntry represents a bookable recovery service.
type ServiceCatalogEntry struct {
	ID              string   `json:"identifier"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           float64  `json:"price"`
	IsActive        bool     `json:"isActive"`
	Features        []string `json:"features,omitempty"`
}
