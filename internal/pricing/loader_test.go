package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

type fakeSource struct {
	mu          sync.Mutex
	promotions  []models.Promotion
	subs        []models.SubCategory
	byPromotion map[int64][]models.SubCategory
	failFor     map[int64]bool
	listErr     error
	calls       []int64
}

func (f *fakeSource) ListActivePromotions(context.Context) ([]models.Promotion, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.promotions, nil
}

func (f *fakeSource) ListActiveSubCategories(context.Context) ([]models.SubCategory, error) {
	return f.subs, nil
}

func (f *fakeSource) PromotionSubCategories(_ context.Context, id int64) ([]models.SubCategory, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()
	if f.failFor[id] {
		return nil, &apiclient.Error{Kind: apiclient.KindNotFound, Status: 404, Method: "GET", Path: "/promotions/sub-categories", Message: "not found"}
	}
	return f.byPromotion[id], nil
}

func TestLoaderSwallowsLookupFailures(t *testing.T) {
	src := &fakeSource{
		promotions: []models.Promotion{promo(1, 50, true), promo(2, 20, true)},
		subs:       []models.SubCategory{{ID: 7}, {ID: 8}},
		byPromotion: map[int64][]models.SubCategory{
			2: {{ID: 7}},
		},
		failFor: map[int64]bool{1: true},
	}

	snap, err := NewLoader(src, zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Promotions, 2)
	assert.ElementsMatch(t, []int64{1, 2}, src.calls)
	assert.False(t, snap.Sets.Covers(1, 7))
	assert.True(t, snap.Sets.Covers(2, 7))

	table := snap.Table(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), time.UTC)
	p, ok := table.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, int64(2), p.ID)
	_, ok = table.Lookup(8)
	assert.False(t, ok)
}

func TestLoaderFailsOnJoinedFetch(t *testing.T) {
	src := &fakeSource{listErr: errors.New("promotions down")}
	_, err := NewLoader(src, nil).Load(context.Background())
	assert.EqualError(t, err, "promotions down")
	assert.Empty(t, src.calls)
}

func TestLoaderLogsFailedLookupKind(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := &fakeSource{
		promotions:  []models.Promotion{promo(1, 50, true), promo(2, 20, true)},
		byPromotion: map[int64][]models.SubCategory{2: {{ID: 7}}},
		failFor:     map[int64]bool{1: true},
	}

	_, err := NewLoader(src, zap.New(core)).Load(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("promotion sub-categories unavailable").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(1), fields["promotion_id"])
	assert.Equal(t, "not_found", fields["kind"])
}
