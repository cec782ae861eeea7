package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) ListAuthors(ctx context.Context) ([]models.Author, error) {
	var out []models.Author
	return out, c.getJSON(ctx, "/authors", &out)
}

func (c *Client) GetAuthor(ctx context.Context, id int64) (models.Author, error) {
	var out models.Author
	return out, c.getJSON(ctx, fmt.Sprintf("/authors/%d", id), &out)
}

func (c *Client) ListPublishers(ctx context.Context) ([]models.Publisher, error) {
	var out []models.Publisher
	return out, c.getJSON(ctx, "/publishers", &out)
}

func (c *Client) GetPublisher(ctx context.Context, id int64) (models.Publisher, error) {
	var out models.Publisher
	return out, c.getJSON(ctx, fmt.Sprintf("/publishers/%d", id), &out)
}

func (c *Client) ListActivePublishers(ctx context.Context) ([]models.Publisher, error) {
	var out []models.Publisher
	return out, c.getJSON(ctx, "/publishers/active", &out)
}

func (c *Client) ListInactivePublishers(ctx context.Context) ([]models.Publisher, error) {
	var out []models.Publisher
	return out, c.getJSON(ctx, "/publishers/inactive", &out)
}

func (c *Client) CreatePublisher(ctx context.Context, req models.PublisherRequest) (models.Publisher, error) {
	var out models.Publisher
	return out, c.sendJSON(ctx, http.MethodPost, "/publishers/create", req, &out)
}

func (c *Client) UpdatePublisher(ctx context.Context, id int64, req models.PublisherRequest) (models.Publisher, error) {
	var out models.Publisher
	return out, c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/publishers/update/%d", id), req, &out)
}

func (c *Client) SetPublisherActive(ctx context.Context, id int64, active bool) error {
	return c.sendJSON(ctx, http.MethodPut, togglePath("/publishers", id, active), nil, nil)
}
