package service

import (
	"time"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

// ValidateBookForm checks an admin book form. Creating needs every required
// field; an update checks only what it sets.
func ValidateBookForm(f models.BookForm, create bool) error {
	var v models.ValidationErrors
	if create {
		if f.Title == "" {
			v.Add("title", "title is required")
		}
		if f.Price == nil {
			v.Add("price", "price is required")
		}
		if f.CategoryID == 0 {
			v.Add("categoryId", "category is required")
		}
		if f.AuthorID == 0 {
			v.Add("authorId", "author is required")
		}
		if f.PublisherID == 0 {
			v.Add("publisherId", "publisher is required")
		}
		if f.StockQuantity == nil {
			v.Add("stockQuantity", "stock quantity is required")
		}
	}
	if f.Price != nil && !f.Price.IsPositive() {
		v.Add("price", "price must be greater than 0")
	}
	if f.StockQuantity != nil && *f.StockQuantity < 0 {
		v.Add("stockQuantity", "stock quantity cannot be negative")
	}
	if f.PublishedDate != "" {
		if _, err := time.Parse(time.DateOnly, f.PublishedDate); err != nil {
			v.Add("publishedDate", "published date must be YYYY-MM-DD")
		}
	}
	return v.Err()
}
