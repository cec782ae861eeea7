// Package pricing resolves which promotion, if any, discounts a book.
//
// A promotion applies to a set of sub-categories. It is active when its flag
// is set and the current instant lies within [startDate, endDate], the end
// date counting through the last moment of that day. When several active
// promotions claim the same sub-category the first one in the supplied order
// wins; the backend defines no tie-break beyond that.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Discount is a resolved promotional price.
type Discount struct {
	PromotionID     int64           `json:"promotionId"`
	Content         string          `json:"content,omitempty"`
	Percentage      decimal.Decimal `json:"percentage"`
	OriginalPrice   decimal.Decimal `json:"originalPrice"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
}

// SubCategorySets maps a promotion id to the sub-category ids it covers.
type SubCategorySets map[int64]map[int64]struct{}

func (s SubCategorySets) Add(promotionID int64, subCategoryIDs ...int64) {
	set, ok := s[promotionID]
	if !ok {
		set = make(map[int64]struct{}, len(subCategoryIDs))
		s[promotionID] = set
	}
	for _, id := range subCategoryIDs {
		set[id] = struct{}{}
	}
}

func (s SubCategorySets) Covers(promotionID, subCategoryID int64) bool {
	_, ok := s[promotionID][subCategoryID]
	return ok
}

// IsActive reports whether p discounts anything at now. Dates are read as
// calendar days in loc; a missing bound leaves that side open.
func IsActive(p models.Promotion, now time.Time, loc *time.Location) bool {
	if !p.Active {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	if !p.StartDate.IsZero() && now.Before(p.StartDate.StartOfDay(loc)) {
		return false
	}
	if !p.EndDate.IsZero() && !now.Before(p.EndDate.StartOfDay(loc).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// Apply prices price under p: price × (1 − percentage/100). No rounding.
func Apply(price decimal.Decimal, p models.Promotion) Discount {
	factor := decimal.NewFromInt(1).Sub(p.Percentage.Div(hundred))
	return Discount{
		PromotionID:     p.ID,
		Content:         p.Content,
		Percentage:      p.Percentage,
		OriginalPrice:   price,
		DiscountedPrice: price.Mul(factor),
	}
}

// Match returns the first promotion in order that is active at now and covers
// categoryID.
func Match(categoryID int64, promotions []models.Promotion, sets SubCategorySets, now time.Time, loc *time.Location) (models.Promotion, bool) {
	for _, p := range promotions {
		if sets.Covers(p.ID, categoryID) && IsActive(p, now, loc) {
			return p, true
		}
	}
	return models.Promotion{}, false
}

// Resolve returns the discount for a book of the given price and
// sub-category, or nil when no promotion applies.
func Resolve(price decimal.Decimal, categoryID int64, promotions []models.Promotion, sets SubCategorySets, now time.Time, loc *time.Location) *Discount {
	p, ok := Match(categoryID, promotions, sets, now, loc)
	if !ok {
		return nil
	}
	d := Apply(price, p)
	return &d
}
