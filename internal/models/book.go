package models

import (
	"io"

	"github.com/shopspring/decimal"
)

type Book struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    int64           `json:"categoryId"`
	CategoryName  string          `json:"categoryName,omitempty"`
	AuthorID      int64           `json:"authorId,omitempty"`
	AuthorName    string          `json:"authorName,omitempty"`
	PublisherID   int64           `json:"publisherId,omitempty"`
	PublisherName string          `json:"publisherName,omitempty"`
	Image         string          `json:"image,omitempty"`
	PublishedDate Date            `json:"publishedDate"`
	Active        bool            `json:"active"`
}

func (b Book) InStock() bool {
	return b.StockQuantity > 0
}

// BookForm carries the admin create/update fields. Zero values are left out
// of the multipart body on update.
type BookForm struct {
	Title         string
	Description   string
	Price         *decimal.Decimal
	AuthorID      int64
	PublisherID   int64
	CategoryID    int64
	StockQuantity *int
	PublishedDate string
	Active        *bool
	ImageURL      string
	ImageName     string
	Image         io.Reader
}

type Author struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Bio    string `json:"bio,omitempty"`
	Image  string `json:"image,omitempty"`
	Active bool   `json:"active"`
}

type Publisher struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Image   string `json:"image,omitempty"`
	Active  bool   `json:"active"`
}

type PublisherRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}
