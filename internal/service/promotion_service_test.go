package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
)

func validCreate() models.CreatePromotionRequest {
	return models.CreatePromotionRequest{
		Content:        "Summer sale",
		Percentage:     dec("20"),
		StartDate:      models.NewDate(2026, 6, 1),
		EndDate:        models.NewDate(2026, 6, 30),
		Active:         true,
		SubCategoryIDs: []int64{3},
	}
}

func TestValidateCreatePromotion(t *testing.T) {
	require.NoError(t, ValidateCreatePromotion(validCreate()))

	tests := []struct {
		name  string
		edit  func(r *models.CreatePromotionRequest)
		field string
	}{
		{"missing content", func(r *models.CreatePromotionRequest) { r.Content = "" }, "content"},
		{"zero percent", func(r *models.CreatePromotionRequest) { r.Percentage = dec("0") }, "percentage"},
		{"over a hundred", func(r *models.CreatePromotionRequest) { r.Percentage = dec("100.5") }, "percentage"},
		{"end before start", func(r *models.CreatePromotionRequest) { r.EndDate = models.NewDate(2026, 5, 31) }, "endDate"},
		{"no sub-categories", func(r *models.CreatePromotionRequest) { r.SubCategoryIDs = nil }, "subCategoryIds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.edit(&req)
			err := ValidateCreatePromotion(req)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			var v models.ValidationErrors
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tt.field, v[0].Field)
		})
	}
}

func TestValidateCreatePromotionAcceptsSameDayAndFullDiscount(t *testing.T) {
	req := validCreate()
	req.EndDate = req.StartDate
	req.Percentage = dec("100")
	assert.NoError(t, ValidateCreatePromotion(req))
}

func TestUpdateValidatesMergedPromotion(t *testing.T) {
	backend := &fakePromotionBackend{promotions: []models.Promotion{{
		ID: 1, Content: "Old", Percentage: dec("10"),
		StartDate: models.NewDate(2026, 1, 1), EndDate: models.NewDate(2026, 1, 31),
	}}}
	svc := NewPromotionService(backend, nil, time.UTC, nil)

	early := models.NewDate(2025, 12, 1)
	_, err := svc.Update(context.Background(), 1, models.UpdatePromotionRequest{EndDate: &early})
	assert.True(t, IsValidation(err))
	assert.Empty(t, backend.updated)

	pct := dec("15")
	_, err = svc.Update(context.Background(), 1, models.UpdatePromotionRequest{Percentage: &pct})
	require.NoError(t, err)
	require.Len(t, backend.updated, 1)
	assert.Equal(t, int64(1), backend.updated[0].ID)
}

func TestCreateSkipsBackendOnInvalidForm(t *testing.T) {
	backend := &fakePromotionBackend{}
	svc := NewPromotionService(backend, nil, time.UTC, nil)
	req := validCreate()
	req.Content = ""
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
	assert.Empty(t, backend.created)
}

func TestListKeepsPromotionsWithoutSubCategories(t *testing.T) {
	backend := &fakePromotionBackend{
		promotions: []models.Promotion{{ID: 1}, {ID: 2}},
		subs:       map[int64][]models.SubCategory{1: {{ID: 3, Name: "Fantasy"}}},
	}
	svc := NewPromotionService(backend, nil, time.UTC, nil)
	got, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{3}, got[0].SubCategoryIDs)
	assert.Equal(t, []string{"Fantasy"}, got[0].SubCategoryNames)
	assert.Empty(t, got[1].SubCategoryIDs)
}

func TestListFiltersByStatus(t *testing.T) {
	backend := &fakePromotionBackend{
		promotions: []models.Promotion{{ID: 1, Active: true}, {ID: 2}, {ID: 3, Active: true}},
		subs:       map[int64][]models.SubCategory{},
	}
	svc := NewPromotionService(backend, nil, time.UTC, nil)

	ids := func(list []models.PromotionDetail) []int64 {
		var out []int64
		for _, d := range list {
			out = append(out, d.ID)
		}
		return out
	}
	for status, want := range map[string][]int64{
		"":         {1, 2, 3},
		"all":      {1, 2, 3},
		"active":   {1, 3},
		"inactive": {2},
	} {
		got, err := svc.List(context.Background(), status)
		require.NoError(t, err, status)
		assert.Equal(t, want, ids(got), status)
	}

	_, err := svc.List(context.Background(), "archived")
	var verr models.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr[0].Field)
}

func TestOverviewReportsOverlap(t *testing.T) {
	sets := pricing.SubCategorySets{}
	sets.Add(1, 3)
	sets.Add(2, 3, 4)
	snap := pricing.Snapshot{
		Promotions: []models.Promotion{
			{ID: 1, Percentage: dec("10"), Active: true},
			{ID: 2, Percentage: dec("30"), Active: true},
		},
		SubCategories: []models.SubCategory{{ID: 3}, {ID: 4}, {ID: 5}},
		Sets:          sets,
	}
	svc := NewPromotionService(&fakePromotionBackend{}, staticLoader{snap}, time.UTC, nil)

	rows, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].Promotion)
	assert.Len(t, rows[0].Overlapping, 1)

	require.NotNil(t, rows[1].Promotion)
	assert.Equal(t, int64(2), rows[1].Promotion.ID)
	assert.Empty(t, rows[1].Overlapping)

	assert.Nil(t, rows[2].Promotion)
}
