package models

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Stock       int     `json:"stock"`
	Available   bool    `json:"available"`
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Stock       int     `json:"stock"`
	Available   bool    `json:"available"`
}
