package models

import "github.com/shopspring/decimal"

type CartItem struct {
	ID        int64           `json:"id"`
	BookID    int64           `json:"bookId"`
	BookTitle string          `json:"bookTitle"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Cart struct {
	UserID    string     `json:"userId"`
	CartItems []CartItem `json:"cartItems"`
	Active    bool       `json:"active"`
}

type AddToCartRequest struct {
	BookID int64 `json:"bookId"`
}

type CartQuantityRequest struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}
