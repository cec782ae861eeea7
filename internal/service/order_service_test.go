package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

type fakeOrderBackend struct {
	orders    []models.Order
	cancelled []int64
	addressed map[int64]string
	updates   []models.UpdateOrderRequest
}

func (f *fakeOrderBackend) GetOrder(_ context.Context, id int64) (models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, errors.New("not found")
}

func (f *fakeOrderBackend) MyOrders(context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeOrderBackend) UpdateOrder(_ context.Context, id int64, req models.UpdateOrderRequest) (models.Order, error) {
	f.updates = append(f.updates, req)
	return models.Order{ID: id, Status: req.Status}, nil
}

func (f *fakeOrderBackend) CancelMyOrder(_ context.Context, id int64) (models.Order, error) {
	f.cancelled = append(f.cancelled, id)
	return models.Order{ID: id, Status: models.OrderCancelled}, nil
}

func (f *fakeOrderBackend) ChangeMyOrderAddress(_ context.Context, id int64, address string) (models.Order, error) {
	if f.addressed == nil {
		f.addressed = map[int64]string{}
	}
	f.addressed[id] = address
	return models.Order{ID: id, Address: address}, nil
}

func orderFixture() *fakeOrderBackend {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &fakeOrderBackend{orders: []models.Order{
		{ID: 1, Status: models.OrderDelivered, CreatedAt: day, TotalAmount: decimal.NewFromInt(10)},
		{ID: 2, Status: models.OrderPending, CreatedAt: day.AddDate(0, 0, 2)},
		{ID: 3, Status: models.OrderConfirmed, CreatedAt: day.AddDate(0, 0, 1)},
	}}
}

func TestMyOrdersNewestFirst(t *testing.T) {
	got, err := NewOrderService(orderFixture()).MyOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestCancelOnlyOpenOrders(t *testing.T) {
	backend := orderFixture()
	svc := NewOrderService(backend)
	ctx := context.Background()

	_, err := svc.Cancel(ctx, 1)
	assert.ErrorIs(t, err, ErrOrderLocked)

	_, err = svc.Cancel(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	o, err := svc.Cancel(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, o.Status)
	assert.Equal(t, []int64{3}, backend.cancelled)
}

func TestChangeAddress(t *testing.T) {
	backend := orderFixture()
	svc := NewOrderService(backend)
	ctx := context.Background()

	_, err := svc.ChangeAddress(ctx, 2, "   ")
	assert.ErrorIs(t, err, ErrAddressRequired)

	_, err = svc.ChangeAddress(ctx, 1, "Elsewhere")
	assert.ErrorIs(t, err, ErrOrderLocked)

	_, err = svc.ChangeAddress(ctx, 2, " 5 New Rd ")
	require.NoError(t, err)
	assert.Equal(t, "5 New Rd", backend.addressed[2])
}

func TestUpdateStatusRequiresCancelReason(t *testing.T) {
	backend := orderFixture()
	svc := NewOrderService(backend)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 2, models.UpdateOrderRequest{Status: models.OrderCancelled})
	assert.True(t, IsValidation(err))

	_, err = svc.UpdateStatus(ctx, 2, models.UpdateOrderRequest{Status: "LOST"})
	assert.True(t, IsValidation(err))

	_, err = svc.UpdateStatus(ctx, 2, models.UpdateOrderRequest{Status: models.OrderCancelled, CancelReason: "customer request"})
	require.NoError(t, err)
	assert.Len(t, backend.updates, 1)
}
