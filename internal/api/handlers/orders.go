package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
	api    *apiclient.Client
	log    *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, api *apiclient.Client, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, api: api, log: log}
}

// MyOrders handles GET /api/orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.MyOrders(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// MyOrder handles GET /api/orders/{id}
func (h *OrderHandler) MyOrder(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	o, err := h.orders.MyOrder(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Cancel handles PUT /api/orders/{id}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	o, err := h.orders.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// ChangeAddress handles PUT /api/orders/{id}/address
func (h *OrderHandler) ChangeAddress(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body models.ChangeAddressRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	o, err := h.orders.ChangeAddress(r.Context(), id, body.Address)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// List handles GET /api/admin/orders, optionally ?status=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		orders []models.Order
		err    error
	)
	if st := models.OrderStatus(r.URL.Query().Get("status")); st != "" {
		if !st.Valid() {
			writeError(w, r, h.log, badRequest("unknown order status"))
			return
		}
		orders, err = h.api.OrdersByStatus(r.Context(), st)
	} else {
		orders, err = h.api.ListOrders(r.Context())
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/admin/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	o, err := h.api.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// UpdateStatus handles PUT /api/admin/orders/{id}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req models.UpdateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	o, err := h.orders.UpdateStatus(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
