package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type OrderItemDTO struct {
	ProductID string  `json:"product_id"`
	VendorID  string  `json:"vendor_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderDTO struct {
	ID        string         `json:"id"`
	BuyerID   string         `json:"buyer_id"`
	Items     []OrderItemDTO `json:"items"`
	Total     float64        `json:"total"`
	Status    string         `json:"status"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

type CreateOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

// CreateOrderRequest with no items checks out the caller's cart.
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type ListOrdersResponse struct {
	Orders []OrderDTO `json:"orders"`
}

type CartItemDTO struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
	AddedAt   string  `json:"added_at"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

type CartResponse struct {
	Items []CartItemDTO `json:"items"`
	Total float64       `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
