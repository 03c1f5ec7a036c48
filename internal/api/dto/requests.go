package dto

// QuantityUpdateRequest is the body for POST /api/cart/quantity.
type QuantityUpdateRequest struct {
	Key      string `json:"key"`
	Quantity int    `json:"quantity"`
}

// RemoveItemRequest is the body for POST /api/cart/remove.
type RemoveItemRequest struct {
	Key string `json:"key"`
}
