package model

// Product carries the denormalized product snapshot attached to a cart line.
type Product struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url"`
	Images      []string `json:"images"`
	Model       string   `json:"model"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
}

// CartItem is one line of the remote cart. The backend is inconsistent about
// which fields it fills in, so every item is normalized after decoding.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Total     float64 `json:"total"`
	Product   Product `json:"product"`
}

const (
	defaultModel    = "Standard Model"
	defaultCategory = "Electric Vehicle"
)

// Normalize fills the gaps the backend leaves: a missing line total is
// recomputed from price and quantity, and the product snapshot falls back to
// the item-level fields.
func (i *CartItem) Normalize() {
	if i.Total == 0 {
		i.Total = i.Price * float64(i.Quantity)
	}
	if i.Product.Name == "" {
		i.Product.Name = i.Name
	}
	if i.Product.Price == 0 {
		i.Product.Price = i.Price
	}
	if i.Product.ImageURL == "" {
		i.Product.ImageURL = i.ImageURL
	}
	if len(i.Product.Images) == 0 {
		i.Product.Images = []string{i.ImageURL}
	}
	if i.Product.Model == "" {
		i.Product.Model = defaultModel
	}
	if i.Product.Category == "" {
		i.Product.Category = defaultCategory
	}
}

// NormalizeItems normalizes a slice in place and returns it. A nil slice
// becomes an empty one so callers always render a list.
func NormalizeItems(items []CartItem) []CartItem {
	if items == nil {
		return []CartItem{}
	}
	for idx := range items {
		items[idx].Normalize()
	}
	return items
}

// ItemsCount returns the total number of units across all lines.
func ItemsCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Total returns the sum of the line totals.
func Total(items []CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Total
	}
	return total
}

// Subtotal is the cart total before shipping; they are the same figure here,
// kept separate so a tax line can slot in later.
func Subtotal(items []CartItem) float64 {
	return Total(items)
}
