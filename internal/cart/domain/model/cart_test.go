package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartItem_Normalize_FillsFallbacks(t *testing.T) {
	item := CartItem{
		ID:        "item-1",
		ProductID: 7,
		Quantity:  3,
		Name:      "EV Scooter",
		Price:     1200,
		ImageURL:  "https://cdn.example.com/scooter.jpg",
	}

	item.Normalize()

	assert.Equal(t, 3600.0, item.Total)
	assert.Equal(t, "EV Scooter", item.Product.Name)
	assert.Equal(t, 1200.0, item.Product.Price)
	assert.Equal(t, "https://cdn.example.com/scooter.jpg", item.Product.ImageURL)
	assert.Equal(t, []string{"https://cdn.example.com/scooter.jpg"}, item.Product.Images)
	assert.Equal(t, "Standard Model", item.Product.Model)
	assert.Equal(t, "Electric Vehicle", item.Product.Category)
}

func TestCartItem_Normalize_KeepsBackendValues(t *testing.T) {
	item := CartItem{
		ID:       "item-1",
		Quantity: 2,
		Name:     "fallback name",
		Price:    100,
		Total:    180, // discounted line total from the backend
		Product: Product{
			Name:     "Real Name",
			Price:    90,
			ImageURL: "https://cdn.example.com/real.jpg",
			Images:   []string{"a.jpg", "b.jpg"},
			Model:    "X-500",
			Category: "Scooters",
		},
	}

	item.Normalize()

	assert.Equal(t, 180.0, item.Total)
	assert.Equal(t, "Real Name", item.Product.Name)
	assert.Equal(t, 90.0, item.Product.Price)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, item.Product.Images)
	assert.Equal(t, "X-500", item.Product.Model)
	assert.Equal(t, "Scooters", item.Product.Category)
}

func TestNormalizeItems_NilBecomesEmpty(t *testing.T) {
	items := NormalizeItems(nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCartFolds(t *testing.T) {
	items := []CartItem{
		{Quantity: 2, Total: 2000},
		{Quantity: 1, Total: 500},
	}

	assert.Equal(t, 3, ItemsCount(items))
	assert.Equal(t, 2500.0, Total(items))
	assert.Equal(t, 2500.0, Subtotal(items))

	assert.Equal(t, 0, ItemsCount(nil))
	assert.Equal(t, 0.0, Total(nil))
}
