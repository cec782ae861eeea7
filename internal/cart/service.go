package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/concurrency"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

var (
	ErrNotSignedIn     = errors.New("cart: sign in to use the cart")
	ErrStaffCannotBuy  = errors.New("cart: admin and staff accounts cannot add items to cart")
	ErrNotInCart       = errors.New("cart: book is not in the cart")
	ErrOutOfStock      = errors.New("cart: book is out of stock")
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
)

// Backend is the part of the API the cart calls.
type Backend interface {
	MyCart(ctx context.Context) (models.Cart, error)
	AddOneToCart(ctx context.Context, bookID int64) error
	AddMultipleToCart(ctx context.Context, bookID int64, quantity int) error
	UpdateCartItem(ctx context.Context, bookID int64, quantity int) error
	ClearCartItem(ctx context.Context, bookID int64) error
	GetBook(ctx context.Context, id int64) (models.Book, error)
}

// PromotionSource yields the promotion data for one view.
type PromotionSource interface {
	Load(ctx context.Context) (pricing.Snapshot, error)
}

// SelectionSink owns the persisted selection flags. Deselect is called
// without waiting for it and is never retried.
type SelectionSink interface {
	Deselect(ctx context.Context, bookIDs []int64) error
}

type Options struct {
	SignedIn         bool
	Role             models.Role
	Pricing          Pricing
	OutOfStockNotice time.Duration
	AddedNotice      time.Duration
	Location         *time.Location
	Now              func() time.Time
	Log              *zap.Logger
}

// Service applies cart operations to one session's State. Local state is
// only changed after the backend accepted the change.
type Service struct {
	mu      sync.Mutex
	state   *State
	backend Backend
	promos  PromotionSource
	sink    SelectionSink
	opts    Options
}

func NewService(state *State, backend Backend, promos PromotionSource, sink SelectionSink, opts Options) *Service {
	if opts.Pricing.ShippingFee.IsZero() && opts.Pricing.FreeShippingThreshold.IsZero() {
		opts.Pricing = DefaultPricing()
	}
	if opts.OutOfStockNotice <= 0 {
		opts.OutOfStockNotice = 5 * time.Second
	}
	if opts.AddedNotice <= 0 {
		opts.AddedNotice = 2 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Service{state: state, backend: backend, promos: promos, sink: sink, opts: opts}
}

// Load fetches the server cart once per session. A failed fetch leaves the
// cart empty and is retried on the next call.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
}

func (s *Service) load(ctx context.Context) {
	if !s.opts.SignedIn {
		s.state.Items = nil
		s.state.Loaded = false
		return
	}
	if s.state.Loaded {
		return
	}
	c, err := s.backend.MyCart(ctx)
	if err != nil {
		s.opts.Log.Warn("fetch cart failed", zap.Error(err))
		s.state.Items = nil
		return
	}
	items := make([]Item, 0, len(c.CartItems))
	for _, ci := range c.CartItems {
		items = append(items, Item{BookID: ci.BookID, Quantity: ci.Quantity, Selected: true})
	}
	s.state.Items = items
	s.state.Loaded = true
}

func (s *Service) canBuy() error {
	if !s.opts.SignedIn {
		return ErrNotSignedIn
	}
	if s.opts.Role.BackOffice() {
		return ErrStaffCannotBuy
	}
	return nil
}

// Add puts qty copies of a book in the cart. A book already in the cart is
// topped up; a new one is added once and then set to qty.
func (s *Service) Add(ctx context.Context, bookID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.canBuy(); err != nil {
		return err
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}
	s.load(ctx)

	i := s.state.index(bookID)
	if i >= 0 {
		var err error
		if qty == 1 {
			err = s.backend.AddOneToCart(ctx, bookID)
		} else {
			err = s.backend.AddMultipleToCart(ctx, bookID, qty)
		}
		if err != nil {
			return fmt.Errorf("add book %d to cart: %w", bookID, err)
		}
		s.state.Items[i].Quantity += qty
	} else {
		if err := s.backend.AddOneToCart(ctx, bookID); err != nil {
			return fmt.Errorf("add book %d to cart: %w", bookID, err)
		}
		if qty > 1 {
			if err := s.backend.UpdateCartItem(ctx, bookID, qty); err != nil {
				return fmt.Errorf("set quantity of book %d: %w", bookID, err)
			}
		}
		s.state.Items = append(s.state.Items, Item{BookID: bookID, Quantity: qty, Selected: true})
	}

	s.state.AddNotice(Notice{
		Level:     NoticeInfo,
		Message:   "Added to cart",
		BookIDs:   []int64{bookID},
		ExpiresAt: s.opts.Now().Add(s.opts.AddedNotice),
	})
	return nil
}

// UpdateQuantity sets a line's quantity, capped to [1, stock]. Capping at the
// stock level leaves an inline notice. It returns the quantity stored.
func (s *Service) UpdateQuantity(ctx context.Context, bookID int64, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opts.SignedIn {
		return 0, ErrNotSignedIn
	}
	s.load(ctx)
	i := s.state.index(bookID)
	if i < 0 {
		return 0, ErrNotInCart
	}

	book, err := s.backend.GetBook(ctx, bookID)
	if err != nil {
		return 0, fmt.Errorf("check stock of book %d: %w", bookID, err)
	}
	if book.StockQuantity <= 0 {
		return 0, ErrOutOfStock
	}

	capped := false
	switch {
	case qty < 1:
		qty = 1
	case qty > book.StockQuantity:
		qty = book.StockQuantity
		capped = true
	}

	if err := s.backend.UpdateCartItem(ctx, bookID, qty); err != nil {
		return 0, fmt.Errorf("set quantity of book %d: %w", bookID, err)
	}
	s.state.Items[i].Quantity = qty

	if capped {
		s.state.AddNotice(Notice{
			Level:     NoticeInfo,
			Message:   fmt.Sprintf("Only %d left in stock", book.StockQuantity),
			BookIDs:   []int64{bookID},
			ExpiresAt: s.opts.Now().Add(s.opts.OutOfStockNotice),
		})
	}
	return qty, nil
}

func (s *Service) Remove(ctx context.Context, bookID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opts.SignedIn {
		return ErrNotSignedIn
	}
	s.load(ctx)
	i := s.state.index(bookID)
	if i < 0 {
		return ErrNotInCart
	}
	if err := s.backend.ClearCartItem(ctx, bookID); err != nil {
		return fmt.Errorf("remove book %d from cart: %w", bookID, err)
	}
	s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
	return nil
}

// RemoveSelected removes every selected line. The removals run together and
// any failure leaves the local cart as it was.
func (s *Service) RemoveSelected(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opts.SignedIn {
		return 0, ErrNotSignedIn
	}
	s.load(ctx)

	var tasks []concurrency.Task
	for _, it := range s.state.Items {
		if !it.Selected {
			continue
		}
		id := it.BookID
		tasks = append(tasks, func(ctx context.Context) error {
			return s.backend.ClearCartItem(ctx, id)
		})
	}
	if len(tasks) == 0 {
		return 0, nil
	}
	if err := concurrency.Joined(ctx, tasks...); err != nil {
		return 0, fmt.Errorf("remove selected items: %w", err)
	}

	kept := s.state.Items[:0]
	for _, it := range s.state.Items {
		if !it.Selected {
			kept = append(kept, it)
		}
	}
	s.state.Items = kept
	return len(tasks), nil
}

// Clear empties the local cart after the backend consumed it, for example
// when an order was placed. The next read fetches the server cart again.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = nil
	s.state.Loaded = false
}

// ToggleSelect flips a line's selection. Selecting an out-of-stock line does
// nothing.
func (s *Service) ToggleSelect(ctx context.Context, bookID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)
	i := s.state.index(bookID)
	if i < 0 {
		return ErrNotInCart
	}
	it := &s.state.Items[i]
	if !it.Selected {
		books := s.fetchBooks(ctx, []Item{*it})
		if books[bookID].StockQuantity <= 0 {
			return nil
		}
	}
	it.Selected = !it.Selected
	return nil
}

// ToggleSelectAll selects every in-stock line, or deselects them all when
// they already are selected. Out-of-stock lines always end up deselected.
func (s *Service) ToggleSelectAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)
	books := s.fetchBooks(ctx, s.state.Items)
	allSelected := true
	for _, it := range s.state.Items {
		if books[it.BookID].StockQuantity > 0 && !it.Selected {
			allSelected = false
			break
		}
	}
	for i := range s.state.Items {
		it := &s.state.Items[i]
		it.Selected = books[it.BookID].StockQuantity > 0 && !allSelected
	}
}

// View computes the cart screen. Selected lines found out of stock are
// deselected once: locally, through the sink, and with a warning notice.
func (s *Service) View(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)
	books := s.fetchBooks(ctx, s.state.Items)

	var table pricing.Table
	snap, err := s.promos.Load(ctx)
	if err != nil {
		s.opts.Log.Warn("load promotions for cart failed", zap.Error(err))
	} else {
		table = snap.Table(s.opts.Now(), s.opts.Location)
		for id, b := range books {
			if b.CategoryName == "" {
				if sc, ok := snap.SubCategory(b.CategoryID); ok {
					b.CategoryName = sc.Name
					books[id] = b
				}
			}
		}
	}

	v := Aggregate(s.state.Items, books, table, s.opts.Pricing)

	var dropped []int64
	for _, l := range v.Items {
		if l.Known && l.OutOfStock() {
			if item, ok := s.state.Find(l.BookID); ok && item.Selected {
				dropped = append(dropped, l.BookID)
			}
		}
	}
	if len(dropped) > 0 {
		s.state.Deselect(dropped...)
		s.state.AddNotice(Notice{
			Level:     NoticeWarning,
			Message:   "Some items are out of stock and were removed from your selection",
			BookIDs:   dropped,
			ExpiresAt: s.opts.Now().Add(s.opts.OutOfStockNotice),
		})
		s.deselectAsync(ctx, dropped)
	}

	v.Notices = s.state.ActiveNotices(s.opts.Now())
	return v
}

func (s *Service) deselectAsync(ctx context.Context, bookIDs []int64) {
	if s.sink == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	log := s.opts.Log
	sink := s.sink
	go func() {
		if err := sink.Deselect(ctx, bookIDs); err != nil {
			log.Warn("persist out-of-stock deselect failed", zap.Int64s("book_ids", bookIDs), zap.Error(err))
		}
	}()
}

// fetchBooks looks up every item's book concurrently. Books that fail to load
// are left out and logged.
func (s *Service) fetchBooks(ctx context.Context, items []Item) map[int64]models.Book {
	found := make([]*models.Book, len(items))
	concurrency.ForEach(ctx, 8, len(items), func(ctx context.Context, i int) {
		b, err := s.backend.GetBook(ctx, items[i].BookID)
		if err != nil {
			s.opts.Log.Warn("fetch cart book failed", zap.Int64("book_id", items[i].BookID), zap.Error(err))
			return
		}
		found[i] = &b
	})
	books := make(map[int64]models.Book, len(items))
	for i, b := range found {
		if b != nil {
			books[items[i].BookID] = *b
		}
	}
	return books
}
