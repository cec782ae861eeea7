package apiclient

import (
	"context"
	"net/http"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) MyCart(ctx context.Context) (models.Cart, error) {
	var out models.Cart
	return out, c.getJSON(ctx, "/cart/myCart", &out)
}

func (c *Client) AddOneToCart(ctx context.Context, bookID int64) error {
	return c.sendJSON(ctx, http.MethodPost, "/cart/add-one", models.AddToCartRequest{BookID: bookID}, nil)
}

func (c *Client) AddMultipleToCart(ctx context.Context, bookID int64, quantity int) error {
	req := models.CartQuantityRequest{BookID: bookID, Quantity: quantity}
	return c.sendJSON(ctx, http.MethodPost, "/cart/add-multiple", req, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, bookID int64, quantity int) error {
	req := models.CartQuantityRequest{BookID: bookID, Quantity: quantity}
	return c.sendJSON(ctx, http.MethodPut, "/cart/update-item", req, nil)
}

func (c *Client) ClearCartItem(ctx context.Context, bookID int64) error {
	return c.sendJSON(ctx, http.MethodPut, "/cart/clear-an-item", models.AddToCartRequest{BookID: bookID}, nil)
}
