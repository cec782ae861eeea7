package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	return out, c.getJSON(ctx, "/promotions", &out)
}

func (c *Client) ListActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	return out, c.getJSON(ctx, "/promotions/active", &out)
}

func (c *Client) ListInactivePromotions(ctx context.Context) ([]models.Promotion, error) {
	var out []models.Promotion
	return out, c.getJSON(ctx, "/promotions/inactive", &out)
}

func (c *Client) GetPromotion(ctx context.Context, id int64) (models.Promotion, error) {
	var out models.Promotion
	return out, c.getJSON(ctx, fmt.Sprintf("/promotions/%d", id), &out)
}

// PromotionSubCategories lists the sub-categories a promotion applies to.
func (c *Client) PromotionSubCategories(ctx context.Context, id int64) ([]models.SubCategory, error) {
	var out []models.SubCategory
	return out, c.getJSON(ctx, fmt.Sprintf("/promotions/%d/sub-categories", id), &out)
}

func (c *Client) CreatePromotion(ctx context.Context, req models.CreatePromotionRequest) (models.Promotion, error) {
	var out models.Promotion
	return out, c.sendJSON(ctx, http.MethodPost, "/promotions/create", req, &out)
}

func (c *Client) UpdatePromotion(ctx context.Context, id int64, req models.UpdatePromotionRequest) (models.Promotion, error) {
	var out models.Promotion
	req.ID = id
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/promotions/update/%d", id), req, &out)
}

func (c *Client) SetPromotionActive(ctx context.Context, id int64, active bool) error {
	return c.sendJSON(ctx, http.MethodPut, togglePath("/promotions", id, active), nil, nil)
}
