package service

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakePromotionBackend struct {
	promotions []models.Promotion
	subs       map[int64][]models.SubCategory
	created    []models.CreatePromotionRequest
	updated    []models.UpdatePromotionRequest
}

func (f *fakePromotionBackend) ListPromotions(context.Context) ([]models.Promotion, error) {
	return f.promotions, nil
}

func (f *fakePromotionBackend) ListActivePromotions(context.Context) ([]models.Promotion, error) {
	return f.byActive(true), nil
}

func (f *fakePromotionBackend) ListInactivePromotions(context.Context) ([]models.Promotion, error) {
	return f.byActive(false), nil
}

func (f *fakePromotionBackend) byActive(active bool) []models.Promotion {
	var out []models.Promotion
	for _, p := range f.promotions {
		if p.Active == active {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakePromotionBackend) GetPromotion(_ context.Context, id int64) (models.Promotion, error) {
	for _, p := range f.promotions {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Promotion{}, errors.New("promotion not found")
}

func (f *fakePromotionBackend) PromotionSubCategories(_ context.Context, id int64) ([]models.SubCategory, error) {
	subs, ok := f.subs[id]
	if !ok {
		return nil, errors.New("no sub-categories assigned")
	}
	return subs, nil
}

func (f *fakePromotionBackend) CreatePromotion(_ context.Context, req models.CreatePromotionRequest) (models.Promotion, error) {
	f.created = append(f.created, req)
	return models.Promotion{ID: 99, Content: req.Content, Percentage: req.Percentage}, nil
}

func (f *fakePromotionBackend) UpdatePromotion(_ context.Context, id int64, req models.UpdatePromotionRequest) (models.Promotion, error) {
	f.updated = append(f.updated, req)
	return models.Promotion{ID: id}, nil
}

func (f *fakePromotionBackend) SetPromotionActive(context.Context, int64, bool) error { return nil }

type staticLoader struct{ snap pricing.Snapshot }

func (l staticLoader) Load(context.Context) (pricing.Snapshot, error) { return l.snap, nil }

type fakeCart struct {
	view    cart.View
	cleared bool
}

func (c *fakeCart) View(context.Context) cart.View { return c.view }
func (c *fakeCart) Clear() { c.cleared = true }

type fakeCheckoutBackend struct {
	mu        sync.Mutex
	orderErr  error
	orders    []string
	payments  []models.PaymentRequest
	vnpay     []models.VNPayURLRequest
	txn       models.TransactionStatus
	markedIDs []int64
}

func (f *fakeCheckoutBackend) CreateOrder(_ context.Context, address string) (models.Order, error) {
	if f.orderErr != nil {
		return models.Order{}, f.orderErr
	}
	f.mu.Lock()
	f.orders = append(f.orders, address)
	f.mu.Unlock()
	return models.Order{ID: 7, Address: address, Status: models.OrderPending}, nil
}

func (f *fakeCheckoutBackend) CreatePaymentRecord(_ context.Context, req models.PaymentRequest) (models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, req)
	return models.Payment{ID: 70, OrderID: req.OrderID, Method: req.Method, Amount: req.Amount, Status: models.PaymentPending}, nil
}

func (f *fakeCheckoutBackend) CreateVNPayURL(_ context.Context, req models.VNPayURLRequest) (models.VNPayURLResponse, error) {
	f.vnpay = append(f.vnpay, req)
	return models.VNPayURLResponse{URL: "https://sandbox.vnpayment.vn/pay?x=1", Status: "OK"}, nil
}

func (f *fakeCheckoutBackend) VNPayReturn(context.Context, url.Values) (models.TransactionStatus, error) {
	return f.txn, nil
}

func (f *fakeCheckoutBackend) MarkPaymentDone(_ context.Context, id int64) (models.Payment, error) {
	f.markedIDs = append(f.markedIDs, id)
	return models.Payment{ID: id, Status: models.PaymentSuccess}, nil
}
