package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/session"
	"github.com/Cheertaboi/bookverse-storefront/pkg/db"
)

// Runs against a real database when DB_HOST is set.
func openTestRepo(t *testing.T) *SessionRepo {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set")
	}
	cfg, err := db.LoadPostgresConfig()
	require.NoError(t, err)
	conn, err := db.NewPostgresConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := NewSessionRepo(conn, time.Hour)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestSessionRepoRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	s := session.New(time.Now())
	s.Token = "tok"
	s.Cart = cart.State{Loaded: true, Items: []cart.Item{{BookID: 3, Quantity: 2, Selected: true}}}
	require.NoError(t, repo.Save(ctx, s))
	t.Cleanup(func() { _ = repo.Delete(ctx, s.ID) })

	got, err := repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, s.Cart.Items, got.Cart.Items)

	s.Cart.Items[0].Quantity = 5
	require.NoError(t, repo.Save(ctx, s))
	got, err = repo.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Cart.Items[0].Quantity)

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
