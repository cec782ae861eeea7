package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderDelivering     OrderStatus = "DELIVERING"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
	OrderReturned       OrderStatus = "RETURNED"
)

var orderStatuses = map[OrderStatus]bool{
	OrderPending: true, OrderPendingPayment: true, OrderConfirmed: true, OrderPreparing: true,
	OrderDelivering: true, OrderDelivered: true, OrderCancelled: true, OrderReturned: true,
}

func (s OrderStatus) Valid() bool {
	return orderStatuses[s]
}

// Cancellable reports whether a customer may still cancel or re-address the order.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderPendingPayment || s == OrderConfirmed
}

type OrderItem struct {
	ID        int64           `json:"id"`
	BookID    int64           `json:"bookId"`
	BookTitle string          `json:"bookTitle"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID           int64           `json:"id"`
	UserID       string          `json:"userId"`
	UserName     string          `json:"userName"`
	Status       OrderStatus     `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Address      string          `json:"address"`
	CreatedAt    time.Time       `json:"createdAt"`
	Active       bool            `json:"active"`
	CancelReason string          `json:"cancelReason,omitempty"`
	OrderItems   []OrderItem     `json:"orderItems"`
	Payment      *Payment        `json:"payment,omitempty"`
}

type CreateOrderRequest struct {
	Address string `json:"address"`
}

type UpdateOrderRequest struct {
	Status       OrderStatus `json:"status"`
	CancelReason string      `json:"cancelReason,omitempty"`
}

type ChangeAddressRequest struct {
	Address string `json:"address"`
}
