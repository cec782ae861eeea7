package cart

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

type cartFeatureContext struct {
	backend *fakeBackend
	state   *State
	cfg     Pricing
	snap    pricing.Snapshot
	view    View
}

func (c *cartFeatureContext) reset() {
	c.backend = newFakeBackend()
	c.state = &State{Loaded: true}
	c.cfg = DefaultPricing()
	c.snap = pricing.Snapshot{Sets: pricing.SubCategorySets{}}
	c.view = View{}
}

func (c *cartFeatureContext) service() *Service {
	opts := customerOptions()
	opts.Pricing = c.cfg
	return NewService(c.state, c.backend, staticPromotions{snap: c.snap}, nil, opts)
}

func (c *cartFeatureContext) shippingRules(threshold, fee string) error {
	c.cfg = Pricing{ShippingFee: decimal.RequireFromString(fee), FreeShippingThreshold: decimal.RequireFromString(threshold)}
	return nil
}

func (c *cartFeatureContext) subCategoryPromotion(subCategory int64, pct int) error {
	base := promotionSnapshot().Promotions[0]
	base.ID = int64(len(c.snap.Promotions) + 1)
	base.Percentage = decimal.NewFromInt(int64(pct))
	c.snap.Promotions = append(c.snap.Promotions, base)
	c.snap.Sets.Add(base.ID, subCategory)
	c.snap.SubCategories = append(c.snap.SubCategories, models.SubCategory{ID: subCategory})
	return nil
}

func (c *cartFeatureContext) aBook(id int64, price string, stock int, subCategory int64) error {
	c.backend.books[id] = book(id, price, stock, subCategory)
	for _, sc := range c.snap.SubCategories {
		if sc.ID == subCategory {
			return nil
		}
	}
	c.snap.SubCategories = append(c.snap.SubCategories, models.SubCategory{ID: subCategory})
	return nil
}

func (c *cartFeatureContext) cartHolds(qty int, id int64) error {
	c.state.Items = append(c.state.Items, Item{BookID: id, Quantity: qty, Selected: true})
	return nil
}

func (c *cartFeatureContext) iViewTheCart() error {
	c.view = c.service().View(context.Background())
	return nil
}

func (c *cartFeatureContext) iSetQuantity(id int64, qty int) error {
	_, err := c.service().UpdateQuantity(context.Background(), id, qty)
	return err
}

func expectAmount(name string, got decimal.Decimal, want string) error {
	if !got.Equal(decimal.RequireFromString(want)) {
		return fmt.Errorf("expected %s %s, got %s", name, want, got.StringFixed(2))
	}
	return nil
}

func (c *cartFeatureContext) subtotalIs(want string) error {
	return expectAmount("subtotal", c.view.Subtotal, want)
}

func (c *cartFeatureContext) discountIs(want string) error {
	return expectAmount("promotion discount", c.view.PromotionDiscount, want)
}

func (c *cartFeatureContext) shippingIs(want string) error {
	return expectAmount("shipping fee", c.view.ShippingFee, want)
}

func (c *cartFeatureContext) totalIs(want string) error {
	return expectAmount("total", c.view.Total, want)
}

func (c *cartFeatureContext) bookNotSelected(id int64) error {
	for _, l := range c.view.Items {
		if l.BookID == id && l.Selected {
			return fmt.Errorf("book %d is still selected", id)
		}
	}
	return nil
}

func (c *cartFeatureContext) cartHoldsQuantity(qty int, id int64) error {
	it, ok := c.state.Find(id)
	if !ok {
		return fmt.Errorf("book %d not in cart", id)
	}
	if it.Quantity != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, it.Quantity)
	}
	return nil
}

func (c *cartFeatureContext) noticeContaining(text string) error {
	for _, n := range c.state.Notices {
		if strings.Contains(n.Message, text) {
			return nil
		}
	}
	return fmt.Errorf("no notice containing %q", text)
}

func InitializeCartScenario(ctx *godog.ScenarioContext) {
	tc := &cartFeatureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^free shipping from (\d+\.\d+) and a shipping fee of (\d+\.\d+)$`, tc.shippingRules)
	ctx.Step(`^sub-category (\d+) has an active (\d+)% promotion$`, tc.subCategoryPromotion)
	ctx.Step(`^book (\d+) priced (\d+\.\d+) with stock (\d+) in sub-category (\d+)$`, tc.aBook)
	ctx.Step(`^the cart holds (\d+) of book (\d+) selected$`, tc.cartHolds)
	ctx.Step(`^I view the cart$`, tc.iViewTheCart)
	ctx.Step(`^I set the quantity of book (\d+) to (\d+)$`, tc.iSetQuantity)
	ctx.Step(`^the subtotal is (\d+\.\d+)$`, tc.subtotalIs)
	ctx.Step(`^the promotion discount is (\d+\.\d+)$`, tc.discountIs)
	ctx.Step(`^the shipping fee is (\d+\.\d+)$`, tc.shippingIs)
	ctx.Step(`^the total is (\d+\.\d+)$`, tc.totalIs)
	ctx.Step(`^book (\d+) is not selected$`, tc.bookNotSelected)
	ctx.Step(`^the cart holds (\d+) of book (\d+)$`, tc.cartHoldsQuantity)
	ctx.Step(`^the cart shows a notice containing "([^"]*)"$`, tc.noticeContaining)
}

func TestCartFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeCartScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
