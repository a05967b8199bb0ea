package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct("Widget", "A fine widget", 19.99, 5, "Tools", "https://example.com/w.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if product.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if !product.IsActive {
		t.Error("Expected new product to be active")
	}
	if product.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
}

func TestProductValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Product)
		wantErr  error
	}{
		{"empty name", func(p *Product) { p.Name = "" }, ErrEmptyProductName},
		{"long name", func(p *Product) { p.Name = strings.Repeat("x", 101) }, ErrProductNameTooLong},
		{"negative price", func(p *Product) { p.Price = -1 }, ErrNegativePrice},
		{"negative stock", func(p *Product) { p.Stock = -1 }, ErrNegativeStock},
		{"long category", func(p *Product) { p.Category = strings.Repeat("c", 51) }, ErrCategoryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := Product{
				ID:    uuid.New(),
				Name:  "Widget",
				Price: 1,
				Stock: 1,
			}
			tt.mutate(&product)
			if err := product.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
