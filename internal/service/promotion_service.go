package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/concurrency"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

// PromotionBackend is the part of the API the promotion screens use.
type PromotionBackend interface {
	ListPromotions(ctx context.Context) ([]models.Promotion, error)
	ListActivePromotions(ctx context.Context) ([]models.Promotion, error)
	ListInactivePromotions(ctx context.Context) ([]models.Promotion, error)
	GetPromotion(ctx context.Context, id int64) (models.Promotion, error)
	PromotionSubCategories(ctx context.Context, id int64) ([]models.SubCategory, error)
	CreatePromotion(ctx context.Context, req models.CreatePromotionRequest) (models.Promotion, error)
	UpdatePromotion(ctx context.Context, id int64, req models.UpdatePromotionRequest) (models.Promotion, error)
	SetPromotionActive(ctx context.Context, id int64, active bool) error
}

type PromotionLoader interface {
	Load(ctx context.Context) (pricing.Snapshot, error)
}

type PromotionService struct {
	backend PromotionBackend
	promos  PromotionLoader
	loc     *time.Location
	now     func() time.Time
	log     *zap.Logger
}

func NewPromotionService(backend PromotionBackend, promos PromotionLoader, loc *time.Location, log *zap.Logger) *PromotionService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PromotionService{backend: backend, promos: promos, loc: loc, now: time.Now, log: log}
}

var hundred = decimal.NewFromInt(100)

func validatePromotion(v *models.ValidationErrors, content string, pct decimal.Decimal, start, end models.Date) {
	if content == "" {
		v.Add("content", "content is required")
	}
	if !pct.IsPositive() || pct.GreaterThan(hundred) {
		v.Add("percentage", "percentage must be greater than 0 and at most 100")
	}
	if start.IsZero() {
		v.Add("startDate", "start date is required")
	}
	if end.IsZero() {
		v.Add("endDate", "end date is required")
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		v.Add("endDate", "end date must not be before start date")
	}
}

func ValidateCreatePromotion(req models.CreatePromotionRequest) error {
	var v models.ValidationErrors
	validatePromotion(&v, req.Content, req.Percentage, req.StartDate, req.EndDate)
	if len(req.SubCategoryIDs) == 0 {
		v.Add("subCategoryIds", "select at least one sub-category")
	}
	return v.Err()
}

// ValidateUpdatePromotion checks the promotion as it would be after req is
// applied to current.
func ValidateUpdatePromotion(current models.Promotion, req models.UpdatePromotionRequest) error {
	merged := current
	if req.Content != nil {
		merged.Content = *req.Content
	}
	if req.Percentage != nil {
		merged.Percentage = *req.Percentage
	}
	if req.StartDate != nil {
		merged.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		merged.EndDate = *req.EndDate
	}
	var v models.ValidationErrors
	validatePromotion(&v, merged.Content, merged.Percentage, merged.StartDate, merged.EndDate)
	return v.Err()
}

func (s *PromotionService) Create(ctx context.Context, req models.CreatePromotionRequest) (models.Promotion, error) {
	if err := ValidateCreatePromotion(req); err != nil {
		return models.Promotion{}, err
	}
	p, err := s.backend.CreatePromotion(ctx, req)
	if err != nil {
		return models.Promotion{}, fmt.Errorf("create promotion: %w", err)
	}
	return p, nil
}

func (s *PromotionService) Update(ctx context.Context, id int64, req models.UpdatePromotionRequest) (models.Promotion, error) {
	current, err := s.backend.GetPromotion(ctx, id)
	if err != nil {
		return models.Promotion{}, fmt.Errorf("load promotion %d: %w", id, err)
	}
	if err := ValidateUpdatePromotion(current, req); err != nil {
		return models.Promotion{}, err
	}
	req.ID = id
	p, err := s.backend.UpdatePromotion(ctx, id, req)
	if err != nil {
		return models.Promotion{}, fmt.Errorf("update promotion %d: %w", id, err)
	}
	return p, nil
}

func (s *PromotionService) SetActive(ctx context.Context, id int64, active bool) error {
	if err := s.backend.SetPromotionActive(ctx, id, active); err != nil {
		return fmt.Errorf("set promotion %d active=%t: %w", id, active, err)
	}
	return nil
}

// List returns every promotion with its sub-categories. A promotion whose
// sub-categories cannot be loaded is listed with none.
// List returns promotions with their sub-categories. status is "active",
// "inactive", or empty for all of them.
func (s *PromotionService) List(ctx context.Context, status string) ([]models.PromotionDetail, error) {
	var list func(context.Context) ([]models.Promotion, error)
	switch status {
	case "", "all":
		list = s.backend.ListPromotions
	case "active":
		list = s.backend.ListActivePromotions
	case "inactive":
		list = s.backend.ListInactivePromotions
	default:
		return nil, models.ValidationErrors{{Field: "status", Message: "status must be active, inactive or all"}}
	}
	promos, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	out := make([]models.PromotionDetail, len(promos))
	concurrency.ForEach(ctx, 8, len(promos), func(ctx context.Context, i int) {
		out[i] = s.detail(ctx, promos[i])
	})
	return out, nil
}

func (s *PromotionService) Get(ctx context.Context, id int64) (models.PromotionDetail, error) {
	p, err := s.backend.GetPromotion(ctx, id)
	if err != nil {
		return models.PromotionDetail{}, fmt.Errorf("load promotion %d: %w", id, err)
	}
	return s.detail(ctx, p), nil
}

func (s *PromotionService) detail(ctx context.Context, p models.Promotion) models.PromotionDetail {
	d := models.PromotionDetail{Promotion: p, SubCategoryIDs: []int64{}}
	subs, err := s.backend.PromotionSubCategories(ctx, p.ID)
	if err != nil {
		s.log.Warn("promotion sub-categories unavailable", zap.Int64("promotion_id", p.ID), zap.Error(err))
		return d
	}
	for _, sc := range subs {
		d.SubCategoryIDs = append(d.SubCategoryIDs, sc.ID)
		d.SubCategoryNames = append(d.SubCategoryNames, sc.Name)
	}
	return d
}

// CategoryPromotion is one row of the promotion overview: the promotion a
// sub-category's books are priced with right now, and every other active
// promotion that also claims it.
type CategoryPromotion struct {
	SubCategory models.SubCategory `json:"subCategory"`
	Promotion   *models.Promotion  `json:"promotion,omitempty"`
	Overlapping []int64            `json:"overlapping,omitempty"`
}

func (s *PromotionService) Overview(ctx context.Context) ([]CategoryPromotion, error) {
	snap, err := s.promos.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load promotions: %w", err)
	}
	now := s.now()
	out := make([]CategoryPromotion, 0, len(snap.SubCategories))
	for _, sc := range snap.SubCategories {
		row := CategoryPromotion{SubCategory: sc}
		if p, ok := pricing.Match(sc.ID, snap.Promotions, snap.Sets, now, s.loc); ok {
			row.Promotion = &p
			for _, other := range snap.Promotions {
				if other.ID != p.ID && pricing.IsActive(other, now, s.loc) && snap.Sets.Covers(other.ID, sc.ID) {
					row.Overlapping = append(row.Overlapping, other.ID)
				}
			}
			if len(row.Overlapping) > 0 {
				s.log.Warn("overlapping promotions",
					zap.Int64("sub_category_id", sc.ID),
					zap.Int64("applied", p.ID),
					zap.Int64s("overlapping", row.Overlapping),
				)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// IsValidation reports whether err is a form problem rather than a backend failure.
func IsValidation(err error) bool {
	var v models.ValidationErrors
	return errors.As(err, &v)
}
