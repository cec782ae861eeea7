package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var out []models.Book
	return out, c.getJSON(ctx, "/books", &out)
}

func (c *Client) ListActiveBooks(ctx context.Context) ([]models.Book, error) {
	var out []models.Book
	return out, c.getJSON(ctx, "/books/active", &out)
}

func (c *Client) ListInactiveBooks(ctx context.Context) ([]models.Book, error) {
	var out []models.Book
	return out, c.getJSON(ctx, "/books/inactive", &out)
}

func (c *Client) RandomBooks(ctx context.Context, limit int) ([]models.Book, error) {
	var out []models.Book
	return out, c.getJSON(ctx, "/books/active/random?limit="+strconv.Itoa(limit), &out)
}

func (c *Client) TopSellingBooks(ctx context.Context) ([]models.Book, error) {
	var out []models.Book
	return out, c.getJSON(ctx, "/books/active/top-selling", &out)
}

// GetBook accepts both the enveloped and the bare book body.
func (c *Client) GetBook(ctx context.Context, id int64) (models.Book, error) {
	var out models.Book
	return out, c.getJSON(ctx, fmt.Sprintf("/books/%d", id), &out)
}

func (c *Client) CreateBook(ctx context.Context, form models.BookForm) (models.Book, error) {
	var out models.Book
	fields, files := bookParts(form)
	return out, c.sendMultipart(ctx, http.MethodPost, "/books/create", fields, files, &out)
}

func (c *Client) UpdateBook(ctx context.Context, id int64, form models.BookForm) (models.Book, error) {
	var out models.Book
	fields, files := bookParts(form)
	return out, c.sendMultipart(ctx, http.MethodPut, fmt.Sprintf("/books/update/%d", id), fields, files, &out)
}

func (c *Client) ActivateBook(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/books/active/%d", id), nil, nil)
}

func (c *Client) DeactivateBook(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/books/inactive/%d", id), nil, nil)
}

func bookParts(f models.BookForm) (map[string]string, []formFile) {
	fields := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			fields[k] = v
		}
	}
	setID := func(k string, v int64) {
		if v != 0 {
			fields[k] = strconv.FormatInt(v, 10)
		}
	}
	set("title", f.Title)
	set("description", f.Description)
	if f.Price != nil {
		fields["price"] = f.Price.String()
	}
	setID("authorId", f.AuthorID)
	setID("publisherId", f.PublisherID)
	setID("categoryId", f.CategoryID)
	if f.StockQuantity != nil {
		fields["stockQuantity"] = strconv.Itoa(*f.StockQuantity)
	}
	set("publishedDate", f.PublishedDate)
	if f.Active != nil {
		fields["active"] = strconv.FormatBool(*f.Active)
	}

	var files []formFile
	if f.Image != nil {
		name := f.ImageName
		if name == "" {
			name = "image"
		}
		files = append(files, formFile{field: "image", name: name, r: f.Image})
	} else {
		set("imageUrl", f.ImageURL)
	}
	return fields, files
}
