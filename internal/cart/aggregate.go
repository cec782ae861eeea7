package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

const PlaceholderImage = "/img/book/placeholder-book.jpg"

// Pricing holds the shipping rules.
type Pricing struct {
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		ShippingFee:           decimal.NewFromInt(5),
		FreeShippingThreshold: decimal.NewFromInt(50),
	}
}

// Line is a cart item enriched with live book data.
type Line struct {
	BookID        int64             `json:"bookId"`
	Quantity      int               `json:"quantity"`
	Selected      bool              `json:"selected"`
	Title         string            `json:"title"`
	Image         string            `json:"image"`
	CategoryName  string            `json:"categoryName,omitempty"`
	StockQuantity int               `json:"stockQuantity"`
	Price         decimal.Decimal   `json:"price"`
	OriginalPrice decimal.Decimal   `json:"originalPrice"`
	Discount      *pricing.Discount `json:"discount,omitempty"`
	Known         bool              `json:"-"`
}

func (l Line) OutOfStock() bool {
	return l.StockQuantity <= 0
}

// View is the derived cart: lines plus totals over the selected, in-stock lines.
type View struct {
	Items             []Line          `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	PromotionDiscount decimal.Decimal `json:"promotionDiscount"`
	ShippingFee       decimal.Decimal `json:"shippingFee"`
	Total             decimal.Decimal `json:"total"`
	SelectedCount     int             `json:"selectedCount"`
	TotalCount        int             `json:"totalCount"`
	Notices           []Notice        `json:"notices,omitempty"`
}

// SelectedLines returns the lines that count toward checkout.
func (v View) SelectedLines() []Line {
	var out []Line
	for _, l := range v.Items {
		if l.Selected {
			out = append(out, l)
		}
	}
	return out
}

// Aggregate enriches items with books and table and computes the totals.
// Books missing from the map render as out-of-stock placeholders. Lines with
// no stock are never selected, whatever the stored flag says.
func Aggregate(items []Item, books map[int64]models.Book, table pricing.Table, cfg Pricing) View {
	v := View{
		Items:             make([]Line, 0, len(items)),
		Subtotal:          decimal.Zero,
		PromotionDiscount: decimal.Zero,
		TotalCount:        len(items),
	}
	hundred := decimal.NewFromInt(100)

	for _, it := range items {
		book, known := books[it.BookID]
		line := Line{
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Title:    fmt.Sprintf("Product %d", it.BookID),
			Image:    PlaceholderImage,
			Known:    known,
		}
		if known {
			line.Title = book.Title
			line.CategoryName = book.CategoryName
			line.StockQuantity = book.StockQuantity
			line.Price = book.Price
			line.OriginalPrice = book.Price
			if book.Image != "" {
				line.Image = book.Image
			}
			if d := table.Price(book); d != nil {
				line.Discount = d
				line.Price = d.DiscountedPrice
			}
		}
		line.Selected = it.Selected && !line.OutOfStock()
		v.Items = append(v.Items, line)

		if !line.Selected {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		v.SelectedCount++
		v.Subtotal = v.Subtotal.Add(line.OriginalPrice.Mul(qty))
		if line.Discount != nil {
			off := line.OriginalPrice.Mul(line.Discount.Percentage).Div(hundred).Mul(qty)
			v.PromotionDiscount = v.PromotionDiscount.Add(off)
		}
	}

	v.ShippingFee = cfg.ShippingFee
	if v.Subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
		v.ShippingFee = decimal.Zero
	}
	v.Total = v.Subtotal.Sub(v.PromotionDiscount).Add(v.ShippingFee)
	return v
}
