package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

type fakeStats struct{ failTopBooks bool }

func (fakeStats) TotalRevenue(context.Context) (decimal.Decimal, error) { return dec("1234.5"), nil }
func (fakeStats) TotalOrders(context.Context) (int64, error) { return 40, nil }
func (fakeStats) TotalCustomers(context.Context) (int64, error) { return 12, nil }
func (fakeStats) TopCustomers(context.Context) ([]models.TopCustomer, error) {
	return []models.TopCustomer{{ID: "u1"}}, nil
}
func (f fakeStats) TopBooks(context.Context) ([]models.TopBook, error) {
	if f.failTopBooks {
		return nil, errors.New("statistics down")
	}
	return []models.TopBook{{ID: 1}}, nil
}
func (fakeStats) SalesOverTime(context.Context) ([]models.SeriesPoint, error) { return nil, nil }
func (fakeStats) OrdersOverTime(context.Context) ([]models.SeriesPoint, error) { return nil, nil }
func (fakeStats) OrderStatusCounts(context.Context) (models.OrderStatusCounts, error) {
	return models.OrderStatusCounts{Pending: 3, Delivered: 30}, nil
}

func TestDashboard(t *testing.T) {
	d, err := Dashboard(context.Background(), fakeStats{})
	require.NoError(t, err)
	assert.True(t, d.TotalRevenue.Equal(dec("1234.5")))
	assert.Equal(t, int64(40), d.TotalOrders)
	assert.Equal(t, int64(12), d.TotalCustomers)
	assert.Len(t, d.TopCustomers, 1)
	assert.Equal(t, int64(30), d.OrderStatuses.Delivered)
}

func TestDashboardFailsAsOne(t *testing.T) {
	_, err := Dashboard(context.Background(), fakeStats{failTopBooks: true})
	assert.ErrorContains(t, err, "statistics down")
}
