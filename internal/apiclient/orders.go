package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, address string) (models.Order, error) {
	var out models.Order
	return out, c.sendJSON(ctx, http.MethodPost, "/orders/create", models.CreateOrderRequest{Address: address}, &out)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	return out, c.getJSON(ctx, "/orders", &out)
}

func (c *Client) OrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var out []models.Order
	return out, c.getJSON(ctx, "/orders/status/"+url.PathEscape(string(status)), &out)
}

func (c *Client) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	var out models.Order
	return out, c.getJSON(ctx, fmt.Sprintf("/orders/%d", id), &out)
}

func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	return out, c.getJSON(ctx, "/orders/myOrders", &out)
}

func (c *Client) UpdateOrder(ctx context.Context, id int64, req models.UpdateOrderRequest) (models.Order, error) {
	var out models.Order
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/orders/update/%d", id), req, &out)
}

func (c *Client) CancelMyOrder(ctx context.Context, id int64) (models.Order, error) {
	var out models.Order
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/orders/myOrders/cancel/%d", id), nil, &out)
}

func (c *Client) ChangeMyOrderAddress(ctx context.Context, id int64, address string) (models.Order, error) {
	var out models.Order
	req := models.ChangeAddressRequest{Address: address}
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/orders/myOrders/change-address/%d", id), req, &out)
}
