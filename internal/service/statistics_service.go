package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/concurrency"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

type StatisticsBackend interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	TotalOrders(ctx context.Context) (int64, error)
	TotalCustomers(ctx context.Context) (int64, error)
	TopCustomers(ctx context.Context) ([]models.TopCustomer, error)
	TopBooks(ctx context.Context) ([]models.TopBook, error)
	SalesOverTime(ctx context.Context) ([]models.SeriesPoint, error)
	OrdersOverTime(ctx context.Context) ([]models.SeriesPoint, error)
	OrderStatusCounts(ctx context.Context) (models.OrderStatusCounts, error)
}

// Dashboard fetches every statistic at once; any one failing fails the screen.
func Dashboard(ctx context.Context, b StatisticsBackend) (models.Dashboard, error) {
	var d models.Dashboard
	err := concurrency.Joined(ctx,
		concurrency.Fetch(&d.TotalRevenue, b.TotalRevenue),
		concurrency.Fetch(&d.TotalOrders, b.TotalOrders),
		concurrency.Fetch(&d.TotalCustomers, b.TotalCustomers),
		concurrency.Fetch(&d.TopCustomers, b.TopCustomers),
		concurrency.Fetch(&d.TopBooks, b.TopBooks),
		concurrency.Fetch(&d.SalesOverTime, b.SalesOverTime),
		concurrency.Fetch(&d.OrdersOverTime, b.OrdersOverTime),
		concurrency.Fetch(&d.OrderStatuses, b.OrderStatusCounts),
	)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}
	return d, nil
}
