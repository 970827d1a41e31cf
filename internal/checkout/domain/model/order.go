package model

// ShippingInfo is the shipping form submitted at checkout.
type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Province  string `json:"province"`
	ZipCode   string `json:"zipCode"`
}

// Payment methods accepted at checkout. Card payments are wired but not yet
// available; the backend gateway integration is pending.
const (
	PaymentCashOnDelivery = "cod"
	PaymentCard           = "card"
)

// PaymentMethodAvailable reports whether the method can currently be used.
func PaymentMethodAvailable(method string) bool {
	return method == PaymentCashOnDelivery
}

// ValidPaymentMethod reports whether the method is known at all.
func ValidPaymentMethod(method string) bool {
	return method == PaymentCashOnDelivery || method == PaymentCard
}

// OrderLine is one line of an order submission payload.
type OrderLine struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Color     string  `json:"color,omitempty"`
}

// OrderDraft is the payload submitted to the backend to place an order.
type OrderDraft struct {
	Items         []OrderLine  `json:"items"`
	ShippingInfo  ShippingInfo `json:"shipping_info"`
	PaymentMethod string       `json:"payment_method"`
	Subtotal      float64      `json:"subtotal"`
	ShippingFee   float64      `json:"shipping_fee"`
	Total         float64      `json:"total"`
}

// OrderItem is one line of a placed order as the backend reports it.
type OrderItem struct {
	ID       int     `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Product  struct {
		Name        string   `json:"name"`
		Images      []string `json:"images"`
		Description string   `json:"description"`
	} `json:"product"`
}

// Order is a placed order.
type Order struct {
	ID                int         `json:"id"`
	OrderNumber       string      `json:"order_number"`
	Status            string      `json:"status"`
	Total             float64     `json:"total"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
	Items             []OrderItem `json:"items"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	Address           string      `json:"address"`
	City              string      `json:"city"`
	PostalCode        string      `json:"postal_code"`
	PaymentMethod     string      `json:"payment_method"`
	TrackingNumber    string      `json:"tracking_number,omitempty"`
	EstimatedDelivery string      `json:"estimated_delivery,omitempty"`
	OrderNotes        string      `json:"order_notes,omitempty"`
	AdminNotes        string      `json:"admin_notes,omitempty"`
}

// TrackingEvent is one entry of an order's tracking timeline.
type TrackingEvent struct {
	ID          int    `json:"id"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Timestamp   string `json:"timestamp"`
	AdminNotes  string `json:"admin_notes,omitempty"`
}

// PlacedOrder is the checkout result: the order plus whether the cart was
// actually cleared afterwards. When CartCleared is false the order still went
// through and the UI should warn instead of fail.
type PlacedOrder struct {
	Order       *Order `json:"order"`
	CartCleared bool   `json:"cart_cleared"`
}
