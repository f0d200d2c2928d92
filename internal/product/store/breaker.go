package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

// BreakerStore guards a ProductStore with a circuit breaker. While the breaker is open
// calls fail fast with ErrStoreUnavailable instead of reaching the database.
type BreakerStore struct {
	next ProductStore
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps next. Domain outcomes (not found, already exists) and
// cancelled requests are not counted as failures.
func NewBreakerStore(next ProductStore, cfg config.CircuitBreakerConfig, logger *slog.Logger) *BreakerStore {
	st := gobreaker.Settings{
		Name:        "product-store-cb",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			total := counts.TotalSuccesses + counts.TotalFailures
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures ||
				(total > cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](st),
	}
}

func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, perrors.ErrProductNotFound) ||
		errors.Is(err, perrors.ErrProductAlreadyExists) ||
		errors.Is(err, context.Canceled)
}

// execute runs fn through the breaker and converts rejections into ErrStoreUnavailable.
func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	var zero T
	res, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %w", perrors.ErrStoreUnavailable, err)
		}
		return zero, err
	}
	return res.(T), nil
}

func (b *BreakerStore) Create(ctx context.Context, product Product) (*Product, error) {
	return execute(b.cb, func() (*Product, error) { return b.next.Create(ctx, product) })
}

func (b *BreakerStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	return execute(b.cb, func() (*Product, error) { return b.next.FindByID(ctx, id) })
}

func (b *BreakerStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return execute(b.cb, func() (bool, error) { return b.next.ExistsByID(ctx, id) })
}

func (b *BreakerStore) FindAll(ctx context.Context) ([]Product, error) {
	return execute(b.cb, func() ([]Product, error) { return b.next.FindAll(ctx) })
}

func (b *BreakerStore) FindByCategory(ctx context.Context, category string) ([]Product, error) {
	return execute(b.cb, func() ([]Product, error) { return b.next.FindByCategory(ctx, category) })
}

func (b *BreakerStore) FindByBrand(ctx context.Context, brand string) ([]Product, error) {
	return execute(b.cb, func() ([]Product, error) { return b.next.FindByBrand(ctx, brand) })
}

func (b *BreakerStore) FindByPriceAndBrand(ctx context.Context, price decimal.Decimal, brand string) ([]Product, error) {
	return execute(b.cb, func() ([]Product, error) { return b.next.FindByPriceAndBrand(ctx, price, brand) })
}

func (b *BreakerStore) Update(ctx context.Context, product Product) (*Product, error) {
	return execute(b.cb, func() (*Product, error) { return b.next.Update(ctx, product) })
}

func (b *BreakerStore) DeleteByID(ctx context.Context, id int64) error {
	_, err := execute(b.cb, func() (struct{}, error) { return struct{}{}, b.next.DeleteByID(ctx, id) })
	return err
}

func (b *BreakerStore) Ping(ctx context.Context) error {
	_, err := execute(b.cb, func() (struct{}, error) { return struct{}{}, b.next.Ping(ctx) })
	return err
}

// State reports the breaker state, e.g. for readiness diagnostics.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}
