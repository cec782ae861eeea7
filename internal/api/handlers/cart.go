package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/api/middleware"
	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/session"
)

// CartSettings are the cart rules that come from configuration.
type CartSettings struct {
	Pricing          cart.Pricing
	OutOfStockNotice time.Duration
	Location         *time.Location
}

type CartHandler struct {
	api      *apiclient.Client
	promos   cart.PromotionSource
	sessions *session.Manager
	settings CartSettings
	log      *zap.Logger
}

func NewCartHandler(api *apiclient.Client, promos cart.PromotionSource, sessions *session.Manager, settings CartSettings, log *zap.Logger) *CartHandler {
	return &CartHandler{api: api, promos: promos, sessions: sessions, settings: settings, log: log}
}

func (h *CartHandler) service(s *session.Session) *cart.Service {
	return cart.NewService(&s.Cart, h.api, h.promos, h.sessions.SelectionSink(s.ID), cart.Options{
		SignedIn:         s.SignedIn(time.Now()),
		Role:             s.Claims.Role,
		Pricing:          h.settings.Pricing,
		OutOfStockNotice: h.settings.OutOfStockNotice,
		Location:         h.settings.Location,
		Log:              h.log,
	})
}

// withCart runs fn against the session's cart under the session lock. The
// session is saved only when fn succeeds; the response is the cart view.
func (h *CartHandler) withCart(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, c *cart.Service) error) {
	ctx := r.Context()
	var view cart.View
	_, err := h.sessions.Update(ctx, middleware.SessionID(ctx), func(s *session.Session) error {
		c := h.service(s)
		if err := fn(ctx, c); err != nil {
			return err
		}
		view = c.View(ctx)
		return nil
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func noop(context.Context, *cart.Service) error { return nil }

// View handles GET /api/cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, noop)
}

type addItemBody struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
}

// Add handles POST /api/cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body addItemBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if body.BookID <= 0 {
		writeError(w, r, h.log, badRequest("bookId is required"))
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	h.withCart(w, r, func(ctx context.Context, c *cart.Service) error {
		return c.Add(ctx, body.BookID, body.Quantity)
	})
}

type quantityBody struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity handles PUT /api/cart/items/{bookId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "bookId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body quantityBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.withCart(w, r, func(ctx context.Context, c *cart.Service) error {
		_, err := c.UpdateQuantity(ctx, id, body.Quantity)
		return err
	})
}

// Remove handles DELETE /api/cart/items/{bookId}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "bookId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.withCart(w, r, func(ctx context.Context, c *cart.Service) error {
		return c.Remove(ctx, id)
	})
}

// ToggleSelect handles POST /api/cart/items/{bookId}/toggle
func (h *CartHandler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "bookId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.withCart(w, r, func(ctx context.Context, c *cart.Service) error {
		return c.ToggleSelect(ctx, id)
	})
}

// ToggleSelectAll handles POST /api/cart/select-all
func (h *CartHandler) ToggleSelectAll(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(ctx context.Context, c *cart.Service) error {
		c.ToggleSelectAll(ctx)
		return nil
	})
}

// RemoveSelected handles DELETE /api/cart/selected
func (h *CartHandler) RemoveSelected(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(ctx context.Context, c *cart.Service) error {
		_, err := c.RemoveSelected(ctx)
		return err
	})
}

// Clear handles DELETE /api/cart. Only the local copy is dropped; the next
// view reloads the server cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, err := h.sessions.Update(ctx, middleware.SessionID(ctx), func(s *session.Session) error {
		h.service(s).Clear()
		return nil
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
