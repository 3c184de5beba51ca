package main

// OrderPlacedEvent is the payload sent from API -> SQS -> worker.
type OrderPlacedEvent struct {
	OrderID       int64  `json:"order_id"`
	CustomerID    int64  `json:"customer_id"`
	ProductID     int64  `json:"product_id"`
	TotalPrice    string `json:"total_price"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
