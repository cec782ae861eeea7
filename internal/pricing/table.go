package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

// Table is the sub-category → promotion mapping for one instant, computed
// once and read for every book on a page or in a cart.
type Table struct {
	byCategory map[int64]models.Promotion
}

// BuildTable resolves each sub-category in subCategoryIDs.
func BuildTable(subCategoryIDs []int64, promotions []models.Promotion, sets SubCategorySets, now time.Time, loc *time.Location) Table {
	t := Table{byCategory: make(map[int64]models.Promotion)}
	for _, id := range subCategoryIDs {
		if p, ok := Match(id, promotions, sets, now, loc); ok {
			t.byCategory[id] = p
		}
	}
	return t
}

func (t Table) Lookup(categoryID int64) (models.Promotion, bool) {
	p, ok := t.byCategory[categoryID]
	return p, ok
}

// Price gives the same answer as Resolve for the book's price and category.
func (t Table) Price(b models.Book) *Discount {
	return t.PriceOf(b.Price, b.CategoryID)
}

func (t Table) PriceOf(price decimal.Decimal, categoryID int64) *Discount {
	p, ok := t.Lookup(categoryID)
	if !ok {
		return nil
	}
	d := Apply(price, p)
	return &d
}

// EffectivePrice is the price a shopper pays for b.
func (t Table) EffectivePrice(b models.Book) decimal.Decimal {
	if d := t.Price(b); d != nil {
		return d.DiscountedPrice
	}
	return b.Price
}

func (t Table) Len() int {
	return len(t.byCategory)
}
