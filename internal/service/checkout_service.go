package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

var (
	ErrNothingSelected  = errors.New("checkout: select at least one item")
	ErrAddressRequired  = errors.New("checkout: address is required")
	ErrUnknownMethod    = errors.New("checkout: unknown payment method")
	ErrNoPendingPayment = errors.New("checkout: no payment is waiting for the gateway")
	// The backend orders the whole server cart, so every line must be payable.
	ErrUnselectedLines = errors.New("checkout: remove unselected or out-of-stock items before placing the order")
)

// CheckoutBackend is the part of the API an order placement calls.
type CheckoutBackend interface {
	CreateOrder(ctx context.Context, address string) (models.Order, error)
	CreatePaymentRecord(ctx context.Context, req models.PaymentRequest) (models.Payment, error)
	CreateVNPayURL(ctx context.Context, req models.VNPayURLRequest) (models.VNPayURLResponse, error)
	VNPayReturn(ctx context.Context, params url.Values) (models.TransactionStatus, error)
	MarkPaymentDone(ctx context.Context, paymentID int64) (models.Payment, error)
}

// Cart is what checkout needs from the session's cart.
type Cart interface {
	View(ctx context.Context) cart.View
	Clear()
}

type CheckoutRequest struct {
	Address string               `json:"address"`
	Method  models.PaymentMethod `json:"method"`
}

type CheckoutResult struct {
	Order      models.Order    `json:"order"`
	Payment    models.Payment  `json:"payment"`
	PaymentURL string          `json:"paymentUrl,omitempty"`
	Total      decimal.Decimal `json:"total"`
}

type CheckoutService struct {
	backend CheckoutBackend
	vndRate decimal.Decimal
	log     *zap.Logger
}

func NewCheckoutService(backend CheckoutBackend, vndRate decimal.Decimal, log *zap.Logger) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutService{backend: backend, vndRate: vndRate, log: log}
}

// Checkout places an order for c, whose lines must all be selected and in
// stock. The order is created
// first, then its payment record; a VNPay payment also gets a gateway URL.
// The cart is cleared once the order exists.
func (s *CheckoutService) Checkout(ctx context.Context, c Cart, req CheckoutRequest) (CheckoutResult, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return CheckoutResult{}, ErrAddressRequired
	}
	if req.Method == "" {
		req.Method = models.PaymentCOD
	}
	if req.Method != models.PaymentCOD && req.Method != models.PaymentVNPay {
		return CheckoutResult{}, fmt.Errorf("%w %q", ErrUnknownMethod, req.Method)
	}

	view := c.View(ctx)
	if len(view.SelectedLines()) == 0 {
		return CheckoutResult{}, ErrNothingSelected
	}
	for _, l := range view.Items {
		if !l.Selected || l.OutOfStock() {
			return CheckoutResult{}, ErrUnselectedLines
		}
	}

	order, err := s.backend.CreateOrder(ctx, address)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("create order: %w", err)
	}
	c.Clear()

	res := CheckoutResult{Order: order, Total: view.Total}
	res.Payment, err = s.backend.CreatePaymentRecord(ctx, models.PaymentRequest{
		OrderID: order.ID,
		Method:  req.Method,
		Amount:  view.Total,
	})
	if err != nil {
		return res, fmt.Errorf("create payment for order %d: %w", order.ID, err)
	}

	if req.Method == models.PaymentVNPay {
		resp, err := s.backend.CreateVNPayURL(ctx, models.VNPayURLRequest{
			Amount:      view.Total,
			AmountInVND: ToVND(view.Total, s.vndRate),
		})
		if err != nil {
			return res, fmt.Errorf("create vnpay url for order %d: %w", order.ID, err)
		}
		res.PaymentURL = resp.URL
	}

	s.log.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("method", string(req.Method)),
		zap.String("total", view.Total.String()),
	)
	return res, nil
}

// ToVND converts a shop price to whole dong.
func ToVND(amount, rate decimal.Decimal) int64 {
	return amount.Mul(rate).Round(0).IntPart()
}

const vnpDateLayout = "20060102150405"

// ParseVNPayReturn reads the gateway's redirect parameters. vnp_Amount is in
// hundredths of a dong.
func ParseVNPayReturn(q url.Values) models.VNPayReturn {
	r := models.VNPayReturn{
		TxnRef:        q.Get("vnp_TxnRef"),
		ResponseCode:  q.Get("vnp_ResponseCode"),
		TransactionNo: q.Get("vnp_TransactionNo"),
		BankCode:      q.Get("vnp_BankCode"),
		BankTranNo:    q.Get("vnp_BankTranNo"),
		OrderInfo:     q.Get("vnp_OrderInfo"),
		PayDate:       q.Get("vnp_PayDate"),
		Amount:        decimal.Zero,
	}
	r.Success = r.ResponseCode == "00"
	if a, err := decimal.NewFromString(q.Get("vnp_Amount")); err == nil {
		r.Amount = a.Div(hundred)
	}
	if t, err := time.Parse(vnpDateLayout, r.PayDate); err == nil {
		r.PayDate = t.Format(time.DateTime)
	}
	return r
}

// VNPayOutcome is what the payment result screen shows.
type VNPayOutcome struct {
	Return      models.VNPayReturn       `json:"return"`
	Transaction models.TransactionStatus `json:"transaction"`
	Payment     *models.Payment          `json:"payment,omitempty"`
}

// CompleteVNPay forwards the gateway's return to the backend and, when both
// agree the payment went through, marks paymentID done.
func (s *CheckoutService) CompleteVNPay(ctx context.Context, q url.Values, paymentID int64) (VNPayOutcome, error) {
	out := VNPayOutcome{Return: ParseVNPayReturn(q)}

	status, err := s.backend.VNPayReturn(ctx, q)
	if err != nil {
		return out, fmt.Errorf("verify vnpay return: %w", err)
	}
	out.Transaction = status
	if !out.Return.Success || !status.Success {
		s.log.Info("vnpay payment not completed",
			zap.String("response_code", out.Return.ResponseCode),
			zap.String("txn_ref", out.Return.TxnRef),
		)
		return out, nil
	}

	if paymentID == 0 {
		return out, ErrNoPendingPayment
	}
	p, err := s.backend.MarkPaymentDone(ctx, paymentID)
	if err != nil {
		return out, fmt.Errorf("mark payment %d done: %w", paymentID, err)
	}
	out.Payment = &p
	return out, nil
}
