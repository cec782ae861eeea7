package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) ListSupCategories(ctx context.Context) ([]models.SupCategory, error) {
	var out []models.SupCategory
	return out, c.getJSON(ctx, "/sup-categories", &out)
}

func (c *Client) ListActiveSupCategories(ctx context.Context) ([]models.SupCategory, error) {
	var out []models.SupCategory
	return out, c.getJSON(ctx, "/sup-categories/active", &out)
}

func (c *Client) CreateSupCategory(ctx context.Context, req models.SupCategoryRequest) (models.SupCategory, error) {
	var out models.SupCategory
	return out, c.sendJSON(ctx, http.MethodPost, "/sup-categories/create", req, &out)
}

func (c *Client) UpdateSupCategory(ctx context.Context, id int64, req models.SupCategoryRequest) (models.SupCategory, error) {
	var out models.SupCategory
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/sup-categories/update/%d", id), req, &out)
}

func (c *Client) SetSupCategoryActive(ctx context.Context, id int64, active bool) error {
	return c.sendJSON(ctx, http.MethodPut, togglePath("/sup-categories", id, active), nil, nil)
}

func (c *Client) ListSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	var out []models.SubCategory
	return out, c.getJSON(ctx, "/sub-categories", &out)
}

func (c *Client) ListActiveSubCategories(ctx context.Context) ([]models.SubCategory, error) {
	var out []models.SubCategory
	return out, c.getJSON(ctx, "/sub-categories/active", &out)
}

func (c *Client) GetSubCategory(ctx context.Context, id int64) (models.SubCategory, error) {
	var out models.SubCategory
	return out, c.getJSON(ctx, fmt.Sprintf("/sub-categories/%d", id), &out)
}

func (c *Client) CreateSubCategory(ctx context.Context, req models.SubCategoryRequest) (models.SubCategory, error) {
	var out models.SubCategory
	return out, c.sendJSON(ctx, http.MethodPost, "/sub-categories/create", req, &out)
}

func (c *Client) UpdateSubCategory(ctx context.Context, id int64, req models.SubCategoryRequest) (models.SubCategory, error) {
	var out models.SubCategory
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/sub-categories/update/%d", id), req, &out)
}

func (c *Client) SetSubCategoryActive(ctx context.Context, id int64, active bool) error {
	return c.sendJSON(ctx, http.MethodPut, togglePath("/sub-categories", id, active), nil, nil)
}

func togglePath(base string, id int64, active bool) string {
	if active {
		return fmt.Sprintf("%s/active/%d", base, id)
	}
	return fmt.Sprintf("%s/inactive/%d", base, id)
}
