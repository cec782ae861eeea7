package catalog

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

// Card is a book as listed, with its promotional price if any.
type Card struct {
	models.Book
	Discount       *pricing.Discount `json:"discount,omitempty"`
	EffectivePrice decimal.Decimal   `json:"effectivePrice"`
}

type Page struct {
	Items      []Card `json:"items"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}

func NewCard(b models.Book, table pricing.Table) Card {
	c := Card{Book: b, EffectivePrice: b.Price}
	if d := table.Price(b); d != nil {
		c.Discount = d
		c.EffectivePrice = d.DiscountedPrice
	}
	return c
}

func Cards(books []models.Book, table pricing.Table) []Card {
	out := make([]Card, 0, len(books))
	for _, b := range books {
		out = append(out, NewCard(b, table))
	}
	return out
}

// SupCategoryIndex maps each sub-category id to its super-category id.
func SupCategoryIndex(sups []models.SupCategory) map[int64]int64 {
	idx := make(map[int64]int64)
	for _, sup := range sups {
		for _, sub := range sup.Children() {
			idx[sub.ID] = sup.ID
		}
	}
	return idx
}

// List filters, sorts and pages books. Inactive books never appear. Price
// bounds apply to the price after promotion.
func List(books []models.Book, table pricing.Table, supOf map[int64]int64, q Query) Page {
	search := strings.ToLower(q.Search)
	cards := make([]Card, 0, len(books))
	for _, b := range books {
		if !b.Active {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(b.Title), search) {
			continue
		}
		if q.SubCategoryID != 0 && b.CategoryID != q.SubCategoryID {
			continue
		}
		if q.SupCategoryID != 0 && supOf[b.CategoryID] != q.SupCategoryID {
			continue
		}
		if q.AuthorID != 0 && b.AuthorID != q.AuthorID {
			continue
		}
		if q.PublisherID != 0 && b.PublisherID != q.PublisherID {
			continue
		}
		c := NewCard(b, table)
		if q.MinPrice != nil && c.EffectivePrice.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && c.EffectivePrice.GreaterThan(*q.MaxPrice) {
			continue
		}
		cards = append(cards, c)
	}

	sortCards(cards, q.Sort)
	return paginate(cards, q.Page, q.Size)
}

func sortCards(cards []Card, s Sort) {
	var cmp func(a, b Card) int
	switch s {
	case SortTitle:
		cmp = func(a, b Card) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case SortPriceAsc:
		cmp = func(a, b Card) int { return a.EffectivePrice.Cmp(b.EffectivePrice) }
	case SortPriceDesc:
		cmp = func(a, b Card) int { return b.EffectivePrice.Cmp(a.EffectivePrice) }
	case SortNewest:
		cmp = func(a, b Card) int { return b.PublishedDate.Compare(a.PublishedDate.Time) }
	case SortOldest:
		cmp = func(a, b Card) int { return a.PublishedDate.Compare(b.PublishedDate.Time) }
	default:
		return
	}
	slices.SortStableFunc(cards, cmp)
}

func paginate(cards []Card, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(cards)
	p := Page{Page: page, Size: size, Total: total, TotalPages: (total + size - 1) / size, Items: []Card{}}
	// Compare pages before multiplying; page comes straight from the query.
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * size
	end := min(start+size, total)
	p.Items = cards[start:end]
	return p
}
