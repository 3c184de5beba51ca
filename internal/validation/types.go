package validation

// PlaceOrderRequest is the payload for POST /api/place_order.
type PlaceOrderRequest struct {
	CustomerID int64 `json:"customer_id" validate:"required,gt=0"` // customers table id
	ProductID  int64 `json:"product_id" validate:"required,gt=0"`  // products table id
	Quantity   int   `json:"quantity" validate:"required,gt=0"`    // units to order; must be a positive integer
}
