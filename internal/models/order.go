package models

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// CanCancel reports whether a customer may still cancel the order.
func (s OrderStatus) CanCancel() bool {
	return s == OrderPending
}

type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code"`
}

// Order is created at checkout and never mutated client-side
// afterwards; status transitions are owned by the backend.
type Order struct {
	OrderID         string          `json:"order_id"`
	UserID          string          `json:"user_id"`
	Items           []CartItem      `json:"items"`
	DeliveryAddress DeliveryAddress `json:"delivery_address"`
	TotalAmount     float64         `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

type CreateOrderRequest struct {
	UserID          string          `json:"user_id"`
	Items           []CartItem      `json:"items"`
	DeliveryAddress DeliveryAddress `json:"delivery_address"`
	TotalAmount     float64         `json:"total_amount"`
}

type UpdateOrderStatusRequest struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

type OrderStats struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}
