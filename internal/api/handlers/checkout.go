package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/api/middleware"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
	"github.com/Cheertaboi/bookverse-storefront/internal/session"
)

type CheckoutHandler struct {
	carts    *CartHandler
	checkout *service.CheckoutService
	sessions *session.Manager
	log      *zap.Logger
}

func NewCheckoutHandler(carts *CartHandler, checkout *service.CheckoutService, sessions *session.Manager, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, checkout: checkout, sessions: sessions, log: log}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ctx := r.Context()
	var res service.CheckoutResult
	var placeErr error
	_, err := h.sessions.Update(ctx, middleware.SessionID(ctx), func(s *session.Session) error {
		res, placeErr = h.checkout.Checkout(ctx, h.carts.service(s), req)
		if res.Order.ID == 0 {
			// Nothing was placed; leave the session as it was.
			return placeErr
		}
		if res.Payment.Method == models.PaymentVNPay && res.Payment.ID != 0 {
			s.PendingPaymentID = res.Payment.ID
		}
		return nil
	})
	if err == nil {
		err = placeErr
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// VNPayReturn handles GET /api/payments/vnpay-return, the gateway's redirect
// back to the shop.
func (h *CheckoutHandler) VNPayReturn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var out service.VNPayOutcome
	_, err := h.sessions.Update(ctx, middleware.SessionID(ctx), func(s *session.Session) error {
		var err error
		out, err = h.checkout.CompleteVNPay(ctx, r.URL.Query(), s.PendingPaymentID)
		if err != nil {
			return err
		}
		if out.Payment != nil {
			s.PendingPaymentID = 0
		}
		return nil
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
