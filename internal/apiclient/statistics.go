package apiclient

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var out decimal.Decimal
	return out, c.getJSON(ctx, "/statistics/total-revenue", &out)
}

func (c *Client) TotalOrders(ctx context.Context) (int64, error) {
	var out int64
	return out, c.getJSON(ctx, "/statistics/total-orders", &out)
}

func (c *Client) TotalCustomers(ctx context.Context) (int64, error) {
	var out int64
	return out, c.getJSON(ctx, "/statistics/total-customers", &out)
}

func (c *Client) TopCustomers(ctx context.Context) ([]models.TopCustomer, error) {
	var out []models.TopCustomer
	return out, c.getJSON(ctx, "/statistics/top-5-customers", &out)
}

func (c *Client) TopBooks(ctx context.Context) ([]models.TopBook, error) {
	var out []models.TopBook
	return out, c.getJSON(ctx, "/statistics/top-5-books", &out)
}

func (c *Client) SalesOverTime(ctx context.Context) ([]models.SeriesPoint, error) {
	var out []models.SeriesPoint
	return out, c.getJSON(ctx, "/statistics/sales-over-time", &out)
}

func (c *Client) OrdersOverTime(ctx context.Context) ([]models.SeriesPoint, error) {
	var out []models.SeriesPoint
	return out, c.getJSON(ctx, "/statistics/orders-over-time", &out)
}

func (c *Client) OrderStatusCounts(ctx context.Context) (models.OrderStatusCounts, error) {
	var out models.OrderStatusCounts
	return out, c.getJSON(ctx, "/statistics/orders-status", &out)
}
