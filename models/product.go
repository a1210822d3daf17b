package models

import "time"

// Product represents a storefront product
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Sizes       []string  `json:"sizes"`
	Stock       int       `json:"stock"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultSizes are assigned to products created without explicit sizes
var DefaultSizes = []string{"S", "M", "L", "XL"}

// DefaultStock is the stock assigned to new products
const DefaultStock = 50

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Sizes       []string `json:"sizes,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	IsFeatured  bool     `json:"isFeatured"`
}

// Validate reports whether the required fields are present
func (r CreateProductRequest) Validate() bool {
	return r.Name != "" && r.Price > 0 && r.Image != "" && r.Slug != ""
}

// UpdateProductRequest represents a partial product update; nil fields are left untouched
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	IsFeatured  *bool    `json:"isFeatured,omitempty"`
}
