package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func selectedCart(total string) *fakeCart {
	return &fakeCart{view: cart.View{
		Items: []cart.Line{{BookID: 1, Quantity: 2, Selected: true, StockQuantity: 5}},
		Total: dec(total),
	}}
}

func TestCheckoutCOD(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	c := selectedCart("60")
	svc := NewCheckoutService(backend, dec("25000"), nil)

	res, err := svc.Checkout(context.Background(), c, CheckoutRequest{Address: " 1 Main St "})
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", res.Order.Address)
	assert.Empty(t, res.PaymentURL)
	assert.True(t, c.cleared)

	require.Len(t, backend.payments, 1)
	assert.Equal(t, models.PaymentCOD, backend.payments[0].Method)
	assert.True(t, backend.payments[0].Amount.Equal(dec("60")))
	assert.Empty(t, backend.vnpay)
}

func TestCheckoutVNPayConvertsToDong(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc := NewCheckoutService(backend, dec("25000"), nil)

	res, err := svc.Checkout(context.Background(), selectedCart("12.34"), CheckoutRequest{Address: "x", Method: models.PaymentVNPay})
	require.NoError(t, err)
	assert.NotEmpty(t, res.PaymentURL)
	require.Len(t, backend.vnpay, 1)
	assert.Equal(t, int64(308500), backend.vnpay[0].AmountInVND)
}

func TestCheckoutRejects(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc := NewCheckoutService(backend, dec("25000"), nil)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, selectedCart("10"), CheckoutRequest{Address: "  "})
	assert.ErrorIs(t, err, ErrAddressRequired)

	_, err = svc.Checkout(ctx, &fakeCart{}, CheckoutRequest{Address: "x"})
	assert.ErrorIs(t, err, ErrNothingSelected)

	_, err = svc.Checkout(ctx, selectedCart("10"), CheckoutRequest{Address: "x", Method: "CARD"})
	assert.ErrorIs(t, err, ErrUnknownMethod)

	assert.Empty(t, backend.payments)
}

func TestCheckoutRefusesPartialSelection(t *testing.T) {
	ctx := context.Background()
	for name, extra := range map[string]cart.Line{
		"unselected":   {BookID: 2, Quantity: 5, Selected: false, StockQuantity: 9},
		"out of stock": {BookID: 3, Quantity: 1, Selected: false, StockQuantity: 0},
	} {
		t.Run(name, func(t *testing.T) {
			backend := &fakeCheckoutBackend{}
			c := selectedCart("15")
			c.view.Items = append(c.view.Items, extra)

			_, err := NewCheckoutService(backend, dec("25000"), nil).Checkout(ctx, c, CheckoutRequest{Address: "x"})
			assert.ErrorIs(t, err, ErrUnselectedLines)
			assert.False(t, c.cleared)
			assert.Empty(t, backend.orders)
			assert.Empty(t, backend.payments)
		})
	}
}

func TestCheckoutKeepsCartWhenOrderFails(t *testing.T) {
	backend := &fakeCheckoutBackend{orderErr: errors.New("out of stock")}
	c := selectedCart("10")
	_, err := NewCheckoutService(backend, dec("25000"), nil).Checkout(context.Background(), c, CheckoutRequest{Address: "x"})
	assert.Error(t, err)
	assert.False(t, c.cleared)
	assert.Empty(t, backend.payments)
}

func vnpParams(code string) url.Values {
	return url.Values{
		"vnp_Amount":        {"1500000"},
		"vnp_BankCode":      {"NCB"},
		"vnp_BankTranNo":    {"VNP14226112"},
		"vnp_PayDate":       {"20240115103000"},
		"vnp_OrderInfo":     {"Thanh toan don hang:12345678"},
		"vnp_ResponseCode":  {code},
		"vnp_TransactionNo": {"14226112"},
		"vnp_TxnRef":        {"12345678"},
	}
}

func TestParseVNPayReturn(t *testing.T) {
	r := ParseVNPayReturn(vnpParams("00"))
	assert.True(t, r.Success)
	assert.True(t, r.Amount.Equal(dec("15000")))
	assert.Equal(t, "2024-01-15 10:30:00", r.PayDate)
	assert.Equal(t, "NCB", r.BankCode)

	r = ParseVNPayReturn(vnpParams("24"))
	assert.False(t, r.Success)
}

func TestCompleteVNPay(t *testing.T) {
	ctx := context.Background()

	backend := &fakeCheckoutBackend{txn: models.TransactionStatus{Status: "OK", Success: true}}
	out, err := NewCheckoutService(backend, dec("25000"), nil).CompleteVNPay(ctx, vnpParams("00"), 70)
	require.NoError(t, err)
	require.NotNil(t, out.Payment)
	assert.Equal(t, []int64{70}, backend.markedIDs)

	backend = &fakeCheckoutBackend{txn: models.TransactionStatus{Status: "NOT OK"}}
	out, err = NewCheckoutService(backend, dec("25000"), nil).CompleteVNPay(ctx, vnpParams("24"), 70)
	require.NoError(t, err)
	assert.Nil(t, out.Payment)
	assert.Empty(t, backend.markedIDs)

	backend = &fakeCheckoutBackend{txn: models.TransactionStatus{Success: true}}
	_, err = NewCheckoutService(backend, dec("25000"), nil).CompleteVNPay(ctx, vnpParams("00"), 0)
	assert.ErrorIs(t, err, ErrNoPendingPayment)
}
