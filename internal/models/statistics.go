package models

import "github.com/shopspring/decimal"

type TopCustomer struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	Name       string          `json:"name"`
	Image      string          `json:"image,omitempty"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

type TopBook struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image,omitempty"`
	TotalSold int64  `json:"totalSold"`
}

// SeriesPoint is one day of the sales or orders series.
type SeriesPoint struct {
	Date        Date            `json:"date"`
	TotalSales  decimal.Decimal `json:"totalSales,omitempty"`
	TotalOrders int64           `json:"totalOrders,omitempty"`
}

type OrderStatusCounts struct {
	Pending    int64 `json:"pending"`
	Confirmed  int64 `json:"confirmed"`
	Processing int64 `json:"processing"`
	Delivering int64 `json:"delivering"`
	Delivered  int64 `json:"delivered"`
	Cancelled  int64 `json:"cancelled"`
}

// Dashboard holds every figure of the admin statistics screen.
type Dashboard struct {
	TotalRevenue   decimal.Decimal   `json:"totalRevenue"`
	TotalOrders    int64             `json:"totalOrders"`
	TotalCustomers int64             `json:"totalCustomers"`
	TopCustomers   []TopCustomer     `json:"topCustomers"`
	TopBooks       []TopBook         `json:"topBooks"`
	SalesOverTime  []SeriesPoint     `json:"salesOverTime"`
	OrdersOverTime []SeriesPoint     `json:"ordersOverTime"`
	OrderStatuses  OrderStatusCounts `json:"orderStatuses"`
}
