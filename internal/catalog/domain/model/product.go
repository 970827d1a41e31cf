package model

// ProductColor is a selectable color option for a product.
type ProductColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is a catalog entry as the backend reports it.
type Product struct {
	ID             int                    `json:"id,omitempty"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          float64                `json:"price"`
	OriginalPrice  float64                `json:"original_price,omitempty"`
	Category       string                 `json:"category"`
	Model          string                 `json:"model"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	IdealFor       []string               `json:"ideal_for,omitempty"`
	Colors         []ProductColor         `json:"colors,omitempty"`
	InStock        bool                   `json:"in_stock"`
	Featured       bool                   `json:"featured"`
	Images         []string               `json:"images,omitempty"`
}

// Filters narrows a product listing. Zero values mean "no filter".
type Filters struct {
	Search   string
	Category string
}
