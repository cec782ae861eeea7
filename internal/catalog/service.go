package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/concurrency"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

var ErrNotFound = errors.New("catalog: not found")

// Source is the part of the API the catalog reads.
type Source interface {
	ListActiveBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id int64) (models.Book, error)
	TopSellingBooks(ctx context.Context) ([]models.Book, error)
	RandomBooks(ctx context.Context, limit int) ([]models.Book, error)
	BookReviews(ctx context.Context, bookID int64) ([]models.Review, error)
	ListSupCategories(ctx context.Context) ([]models.SupCategory, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	ListPublishers(ctx context.Context) ([]models.Publisher, error)
}

type PromotionLoader interface {
	Load(ctx context.Context) (pricing.Snapshot, error)
}

type Service struct {
	src    Source
	promos PromotionLoader
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
}

func NewService(src Source, promos PromotionLoader, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{src: src, promos: promos, loc: loc, now: time.Now, log: log}
}

// Listing is everything the browse screen shows.
type Listing struct {
	Page       Page                 `json:"page"`
	Categories []models.SupCategory `json:"categories"`
	Authors    []models.Author      `json:"authors"`
	Publishers []models.Publisher   `json:"publishers"`
}

// Browse fetches books, categories, promotions, authors and publishers
// together. Any one failing fails the screen.
func (s *Service) Browse(ctx context.Context, q Query) (Listing, error) {
	var (
		books []models.Book
		snap  pricing.Snapshot
		out   Listing
	)
	err := concurrency.Joined(ctx,
		concurrency.Fetch(&books, s.src.ListActiveBooks),
		concurrency.Fetch(&out.Categories, s.src.ListSupCategories),
		concurrency.Fetch(&snap, s.promos.Load),
		concurrency.Fetch(&out.Authors, s.src.ListAuthors),
		concurrency.Fetch(&out.Publishers, s.src.ListPublishers),
	)
	if err != nil {
		return Listing{}, err
	}

	table := snap.Table(s.now(), s.loc)
	out.Page = List(books, table, SupCategoryIndex(out.Categories), q)
	return out, nil
}

// Detail is the book screen.
type Detail struct {
	Card
	Reviews []models.Review `json:"reviews"`
}

// Detail loads one active book with its price and reviews. Reviews that fail
// to load show as none.
func (s *Service) Detail(ctx context.Context, id int64) (Detail, error) {
	var (
		book models.Book
		snap pricing.Snapshot
	)
	err := concurrency.Joined(ctx,
		concurrency.Fetch(&book, func(ctx context.Context) (models.Book, error) { return s.src.GetBook(ctx, id) }),
		concurrency.Fetch(&snap, s.promos.Load),
	)
	if err != nil {
		return Detail{}, err
	}
	if book.ID == 0 || !book.Active {
		return Detail{}, ErrNotFound
	}

	reviews, err := s.src.BookReviews(ctx, id)
	if err != nil {
		s.log.Warn("book reviews unavailable", zap.Int64("book_id", id), zap.Error(err))
		reviews = []models.Review{}
	}

	return Detail{Card: NewCard(book, snap.Table(s.now(), s.loc)), Reviews: reviews}, nil
}

// Home is the landing screen.
type Home struct {
	TopSelling []Card `json:"topSelling"`
	Featured   []Card `json:"featured"`
}

func (s *Service) Home(ctx context.Context, featured int) (Home, error) {
	var (
		top, random []models.Book
		snap        pricing.Snapshot
	)
	err := concurrency.Joined(ctx,
		concurrency.Fetch(&top, s.src.TopSellingBooks),
		concurrency.Fetch(&random, func(ctx context.Context) ([]models.Book, error) { return s.src.RandomBooks(ctx, featured) }),
		concurrency.Fetch(&snap, s.promos.Load),
	)
	if err != nil {
		return Home{}, err
	}
	table := snap.Table(s.now(), s.loc)
	return Home{TopSelling: Cards(top, table), Featured: Cards(random, table)}, nil
}

// CategoryTree lists active super-categories with their active children.
func (s *Service) CategoryTree(ctx context.Context) ([]models.SupCategory, error) {
	sups, err := s.src.ListSupCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.SupCategory, 0, len(sups))
	for _, sup := range sups {
		if !sup.Active {
			continue
		}
		var subs []models.SubCategory
		for _, sub := range sup.Children() {
			if sub.Active {
				subs = append(subs, sub)
			}
		}
		out = append(out, models.SupCategory{ID: sup.ID, Name: sup.Name, Active: true, SubCategories: subs})
	}
	return out, nil
}
