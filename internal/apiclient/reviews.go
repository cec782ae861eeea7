package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) ListAllReviews(ctx context.Context) ([]models.BookReviews, error) {
	var out []models.BookReviews
	return out, c.getJSON(ctx, "/reviews", &out)
}

func (c *Client) BookReviews(ctx context.Context, bookID int64) ([]models.Review, error) {
	var out []models.Review
	return out, c.getJSON(ctx, fmt.Sprintf("/reviews/%d", bookID), &out)
}

func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest) (models.Review, error) {
	var out models.Review
	return out, c.sendJSON(ctx, http.MethodPost, "/reviews/create", req, &out)
}

func (c *Client) UpdateReview(ctx context.Context, req models.ReviewRequest) (models.Review, error) {
	var out models.Review
	return out, c.sendJSON(ctx, http.MethodPut, "/reviews/update", req, &out)
}

func (c *Client) DeleteMyReview(ctx context.Context, bookID int64) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/reviews/myReview/%d", bookID), nil, nil)
}

func (c *Client) DeleteReviewAsStaff(ctx context.Context, bookID int64, req models.AdminDeleteReviewRequest) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/reviews/deleteByAdminStaff/%d", bookID), req, nil)
}

func (c *Client) IsReviewed(ctx context.Context, bookID int64) (bool, error) {
	var out bool
	return out, c.getJSON(ctx, fmt.Sprintf("/reviews/is-reviewed/%d", bookID), &out)
}
