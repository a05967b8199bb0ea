package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Product validation errors.
var (
	ErrEmptyProductID      = errors.New("product ID cannot be empty")
	ErrEmptyProductName    = errors.New("product name cannot be empty")
	ErrProductNameTooLong  = errors.New("product name must be at most 100 characters long")
	ErrNegativePrice       = errors.New("product price cannot be negative")
	ErrNegativeStock       = errors.New("product stock cannot be negative")
	ErrCategoryTooLong     = errors.New("product category must be at most 50 characters long")
	ErrProductNotAvailable = errors.New("product is not available")
	ErrInsufficientStock   = errors.New("not enough stock")
)

// Product represents an item in the store catalog.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduct creates a new active Product with a generated ID and timestamps.
// Returns an error if validation fails.
func NewProduct(name, description string, price float64, stock int, category, imageURL string) (*Product, error) {
	now := time.Now().UTC()
	product := &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		ImageURL:    imageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks if the Product has valid data.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProductID
	}

	switch {
	case p.Name == "":
		return ErrEmptyProductName
	case len(p.Name) > 100:
		return ErrProductNameTooLong
	}

	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if len(p.Category) > 50 {
		return ErrCategoryTooLong
	}

	return nil
}
