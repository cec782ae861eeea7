package pricing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/concurrency"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

// Source is the slice of the API the loader reads.
type Source interface {
	ListActivePromotions(ctx context.Context) ([]models.Promotion, error)
	ListActiveSubCategories(ctx context.Context) ([]models.SubCategory, error)
	PromotionSubCategories(ctx context.Context, promotionID int64) ([]models.SubCategory, error)
}

// Snapshot is the promotion data fetched for one request.
type Snapshot struct {
	Promotions    []models.Promotion
	SubCategories []models.SubCategory
	Sets          SubCategorySets
}

// Table resolves every active sub-category of the snapshot at now.
func (s Snapshot) Table(now time.Time, loc *time.Location) Table {
	ids := make([]int64, 0, len(s.SubCategories))
	for _, sc := range s.SubCategories {
		ids = append(ids, sc.ID)
	}
	return BuildTable(ids, s.Promotions, s.Sets, now, loc)
}

func (s Snapshot) SubCategory(id int64) (models.SubCategory, bool) {
	for _, sc := range s.SubCategories {
		if sc.ID == id {
			return sc, true
		}
	}
	return models.SubCategory{}, false
}

type Loader struct {
	src         Source
	log         *zap.Logger
	concurrency int
}

func NewLoader(src Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{src: src, log: log, concurrency: 8}
}

// Load fetches active promotions and active sub-categories together; either
// failing fails the load. Each promotion's sub-categories are then fetched
// concurrently. A failed lookup leaves that promotion covering nothing.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := concurrency.Joined(ctx,
		concurrency.Fetch(&snap.Promotions, l.src.ListActivePromotions),
		concurrency.Fetch(&snap.SubCategories, l.src.ListActiveSubCategories),
	)
	if err != nil {
		return Snapshot{}, err
	}

	found := make([]apiclient.Result[[]models.SubCategory], len(snap.Promotions))
	concurrency.ForEach(ctx, l.concurrency, len(snap.Promotions), func(ctx context.Context, i int) {
		found[i] = apiclient.Capture(l.src.PromotionSubCategories(ctx, snap.Promotions[i].ID))
	})

	// A promotion whose lookup failed keeps an empty set and applies to nothing.
	snap.Sets = make(SubCategorySets, len(snap.Promotions))
	for i, p := range snap.Promotions {
		if !found[i].IsOk() {
			l.log.Warn("promotion sub-categories unavailable",
				zap.Int64("promotion_id", p.ID),
				zap.String("kind", string(found[i].Kind())),
				zap.Error(found[i].Err),
			)
		}
		snap.Sets.Add(p.ID)
		for _, sc := range found[i].ValueOr(nil) {
			snap.Sets.Add(p.ID, sc.ID)
		}
	}
	return snap, nil
}
