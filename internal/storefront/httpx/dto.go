package httpx

import "encoding/json"

type MenuItemResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

type AddCartItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity *int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
	Tax       string             `json:"tax"`
	Total     string             `json:"total"`
}

type CartLineResponse struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type PlaceOrderRequest struct {
	CustomerName string `json:"customer_name"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customer_name"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	ItemCount    int                 `json:"item_count"`
	Subtotal     string              `json:"subtotal"`
	Tax          string              `json:"tax"`
	Total        string              `json:"total"`
	PlacedAt     string              `json:"placed_at"`
}

type OrderItemResponse struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrderCountResponse struct {
	Count int `json:"count"`
}

type CheckoutLogResponse struct {
	OrderID string                     `json:"order_id"`
	Status  string                     `json:"status"`
	Entries []CheckoutLogEntryResponse `json:"entries"`
}

type CheckoutLogEntryResponse struct {
	Status    string          `json:"status"`
	Step      string          `json:"step,omitempty"`
	Errors    json.RawMessage `json:"errors"`
	TraceID   string          `json:"trace_id,omitempty"`
	UpdatedAt string          `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
