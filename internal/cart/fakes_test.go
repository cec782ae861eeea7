package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

type call struct {
	op       string
	bookID   int64
	quantity int
}

type fakeBackend struct {
	mu       sync.Mutex
	cart     models.Cart
	cartErr  error
	books    map[int64]models.Book
	failOps  map[string]error
	calls    []call
	cartGets int
}

func newFakeBackend(books ...models.Book) *fakeBackend {
	f := &fakeBackend{books: map[int64]models.Book{}, failOps: map[string]error{}}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeBackend) record(op string, bookID int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, bookID: bookID, quantity: qty})
	return f.failOps[op]
}

func (f *fakeBackend) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.op)
	}
	return out
}

func (f *fakeBackend) MyCart(context.Context) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartGets++
	return f.cart, f.cartErr
}

func (f *fakeBackend) AddOneToCart(_ context.Context, bookID int64) error {
	return f.record("add-one", bookID, 1)
}

func (f *fakeBackend) AddMultipleToCart(_ context.Context, bookID int64, qty int) error {
	return f.record("add-multiple", bookID, qty)
}

func (f *fakeBackend) UpdateCartItem(_ context.Context, bookID int64, qty int) error {
	return f.record("update-item", bookID, qty)
}

func (f *fakeBackend) ClearCartItem(_ context.Context, bookID int64) error {
	return f.record("clear-an-item", bookID, 0)
}

func (f *fakeBackend) GetBook(_ context.Context, id int64) (models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return models.Book{}, errors.New("book not found")
	}
	return b, nil
}

type staticPromotions struct {
	snap pricing.Snapshot
	err  error
}

func (s staticPromotions) Load(context.Context) (pricing.Snapshot, error) {
	return s.snap, s.err
}

type recordingSink struct {
	done chan []int64
}

func (r *recordingSink) Deselect(_ context.Context, ids []int64) error {
	r.done <- ids
	return nil
}

var fixedNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func book(id int64, price string, stock int, category int64) models.Book {
	return models.Book{ID: id, Title: "Book", Price: dec(price), StockQuantity: stock, CategoryID: category, Active: true}
}

// promotionSnapshot gives sub-category 2 an active 20% promotion.
func promotionSnapshot() pricing.Snapshot {
	p := models.Promotion{
		ID:         9,
		Content:    "Spring sale",
		Percentage: decimal.NewFromInt(20),
		StartDate:  models.NewDate(2025, time.January, 1),
		EndDate:    models.NewDate(2025, time.January, 31),
		Active:     true,
	}
	sets := pricing.SubCategorySets{}
	sets.Add(p.ID, 2)
	return pricing.Snapshot{
		Promotions:    []models.Promotion{p},
		SubCategories: []models.SubCategory{{ID: 1, Name: "Fiction"}, {ID: 2, Name: "Science"}},
		Sets:          sets,
	}
}

func customerOptions() Options {
	return Options{
		SignedIn: true,
		Role:     models.RoleCustomer,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}
}
