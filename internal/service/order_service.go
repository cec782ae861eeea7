package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

var ErrOrderLocked = errors.New("order: it can no longer be changed")

type OrderBackend interface {
	GetOrder(ctx context.Context, id int64) (models.Order, error)
	MyOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrder(ctx context.Context, id int64, req models.UpdateOrderRequest) (models.Order, error)
	CancelMyOrder(ctx context.Context, id int64) (models.Order, error)
	ChangeMyOrderAddress(ctx context.Context, id int64, address string) (models.Order, error)
}

type OrderService struct {
	backend OrderBackend
}

func NewOrderService(backend OrderBackend) *OrderService {
	return &OrderService{backend: backend}
}

// MyOrders lists the customer's orders, newest first.
func (s *OrderService) MyOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.backend.MyOrders(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return orders, nil
}

// MyOrder finds id among the caller's own orders.
func (s *OrderService) MyOrder(ctx context.Context, id int64) (models.Order, error) {
	orders, err := s.backend.MyOrders(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
}

func (s *OrderService) Cancel(ctx context.Context, id int64) (models.Order, error) {
	o, err := s.MyOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !o.Status.Cancellable() {
		return models.Order{}, fmt.Errorf("cancel order %d in status %s: %w", id, o.Status, ErrOrderLocked)
	}
	return s.backend.CancelMyOrder(ctx, id)
}

func (s *OrderService) ChangeAddress(ctx context.Context, id int64, address string) (models.Order, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.Order{}, ErrAddressRequired
	}
	o, err := s.MyOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !o.Status.Cancellable() {
		return models.Order{}, fmt.Errorf("re-address order %d in status %s: %w", id, o.Status, ErrOrderLocked)
	}
	return s.backend.ChangeMyOrderAddress(ctx, id, address)
}

func ValidateOrderUpdate(req models.UpdateOrderRequest) error {
	var v models.ValidationErrors
	if !req.Status.Valid() {
		v.Add("status", "unknown order status")
	}
	if req.Status == models.OrderCancelled && strings.TrimSpace(req.CancelReason) == "" {
		v.Add("cancelReason", "a reason is required to cancel an order")
	}
	return v.Err()
}

// UpdateStatus is the back-office status change.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, req models.UpdateOrderRequest) (models.Order, error) {
	if err := ValidateOrderUpdate(req); err != nil {
		return models.Order{}, err
	}
	return s.backend.UpdateOrder(ctx, id, req)
}
