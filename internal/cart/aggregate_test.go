package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

func TestAggregateScenario(t *testing.T) {
	books := map[int64]models.Book{
		1: book(1, "10.00", 5, 1),
		2: book(2, "50.00", 3, 2),
	}
	items := []Item{
		{BookID: 1, Quantity: 2, Selected: true},
		{BookID: 2, Quantity: 1, Selected: true},
	}
	table := promotionSnapshot().Table(fixedNow, nil)

	v := Aggregate(items, books, table, DefaultPricing())

	assert.True(t, v.Subtotal.Equal(dec("70")), v.Subtotal.String())
	assert.True(t, v.PromotionDiscount.Equal(dec("10")), v.PromotionDiscount.String())
	assert.True(t, v.ShippingFee.IsZero())
	assert.True(t, v.Total.Equal(dec("60")), v.Total.String())
	assert.Equal(t, 2, v.SelectedCount)
	assert.Equal(t, 2, v.TotalCount)

	require.NotNil(t, v.Items[1].Discount)
	assert.True(t, v.Items[1].Price.Equal(dec("40")))
	assert.True(t, v.Items[1].OriginalPrice.Equal(dec("50")))
	assert.Nil(t, v.Items[0].Discount)
}

func TestAggregateExcludesOutOfStock(t *testing.T) {
	books := map[int64]models.Book{
		1: book(1, "10.00", 5, 2),
		2: book(2, "99.00", 0, 2),
	}
	items := []Item{
		{BookID: 1, Quantity: 1, Selected: true},
		{BookID: 2, Quantity: 4, Selected: true},
	}
	table := promotionSnapshot().Table(fixedNow, nil)

	v := Aggregate(items, books, table, DefaultPricing())

	assert.False(t, v.Items[1].Selected)
	assert.Equal(t, 1, v.SelectedCount)
	assert.True(t, v.Subtotal.Equal(dec("10")))
	assert.True(t, v.PromotionDiscount.Equal(dec("2")))
	assert.True(t, v.Total.Equal(dec("13")), v.Total.String())

	again := Aggregate(items, books, table, DefaultPricing())
	assert.Equal(t, v.SelectedCount, again.SelectedCount)
	assert.True(t, v.Total.Equal(again.Total))
}

func TestAggregateShippingBoundary(t *testing.T) {
	cfg := DefaultPricing()
	cases := []struct {
		price string
		fee   string
	}{
		{"50.00", "0"},
		{"49.99", "5"},
	}
	for _, tc := range cases {
		books := map[int64]models.Book{1: book(1, tc.price, 1, 1)}
		v := Aggregate([]Item{{BookID: 1, Quantity: 1, Selected: true}}, books, pricing.Table{}, cfg)
		assert.True(t, v.ShippingFee.Equal(dec(tc.fee)), "subtotal %s: fee %s", tc.price, v.ShippingFee)
	}
}

func TestAggregateUnknownBook(t *testing.T) {
	v := Aggregate([]Item{{BookID: 42, Quantity: 1, Selected: true}}, nil, pricing.Table{}, DefaultPricing())
	require.Len(t, v.Items, 1)
	assert.Equal(t, "Product 42", v.Items[0].Title)
	assert.Equal(t, PlaceholderImage, v.Items[0].Image)
	assert.False(t, v.Items[0].Selected)
	assert.True(t, v.Subtotal.IsZero())
}

func TestAggregateUnselectedNotCounted(t *testing.T) {
	books := map[int64]models.Book{1: book(1, "30", 2, 1), 2: book(2, "30", 2, 1)}
	items := []Item{{BookID: 1, Quantity: 1, Selected: true}, {BookID: 2, Quantity: 1}}
	v := Aggregate(items, books, pricing.Table{}, DefaultPricing())
	assert.True(t, v.Subtotal.Equal(dec("30")))
	assert.True(t, v.Total.Equal(dec("35")))
	assert.Len(t, v.SelectedLines(), 1)
}
