package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every lookup with err and counts the calls that reached it.
type failingStore struct {
	ProductStore
	err   error
	calls int
}

func (f *failingStore) FindByID(_ context.Context, _ int64) (*Product, error) {
	f.calls++
	return nil, f.err
}

func newTestBreaker(next ProductStore) *BreakerStore {
	cfg := config.CircuitBreakerConfig{
		Enabled:             true,
		MaxRequests:         1,
		ConsecutiveFailures: 3,
		ErrorRatePercent:    100,
		OpenTimeout:         time.Minute,
	}
	return NewBreakerStore(next, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func Test_BreakerStore_OpensOnFailures(t *testing.T) {
	ctx := context.Background()
	next := &failingStore{err: errors.New("connection refused")}
	b := newTestBreaker(next)

	for range 3 {
		_, err := b.FindByID(ctx, 1)
		require.Error(t, err)
		require.NotErrorIs(t, err, perrors.ErrStoreUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.FindByID(ctx, 1)
	require.ErrorIs(t, err, perrors.ErrStoreUnavailable)
	assert.Equal(t, 3, next.calls, "open breaker must not reach the store")
}

func Test_BreakerStore_DomainErrorsDoNotTrip(t *testing.T) {
	ctx := context.Background()
	next := &failingStore{err: perrors.ErrProductNotFound}
	b := newTestBreaker(next)

	for range 10 {
		_, err := b.FindByID(ctx, 1)
		require.ErrorIs(t, err, perrors.ErrProductNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 10, next.calls)
}

func Test_BreakerStore_PassesThrough(t *testing.T) {
	ctx := context.Background()
	b := newTestBreaker(NewInMemoryStore())

	created, err := b.Create(ctx, widget(1, "tools", "Acme", "2.5"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = b.Create(ctx, widget(1, "tools", "Acme", "2.5"))
	require.ErrorIs(t, err, perrors.ErrProductAlreadyExists)

	products, err := b.FindByCategory(ctx, "tools")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	exists, err := b.ExistsByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, b.DeleteByID(ctx, 1))
	require.ErrorIs(t, b.DeleteByID(ctx, 1), perrors.ErrProductNotFound)
	require.NoError(t, b.Ping(ctx))
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
