package store

import (
	"context"
	"sync"
	"testing"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widget(id int64, category, brand, price string) Product {
	return Product{
		ID:            id,
		Name:          "Widget",
		Description:   "A widget",
		Price:         decimal.RequireFromString(price),
		Category:      category,
		StockQuantity: 5,
		Brand:         brand,
	}
}

func Test_InMemory_CreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	created, err := s.Create(ctx, widget(1, "tools", "Acme", "9.99"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	found, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, *created, *found)

	exists, err := s.ExistsByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func Test_InMemory_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	_, err := s.Create(ctx, widget(1, "tools", "Acme", "9.99"))
	require.NoError(t, err)

	dup := widget(1, "toys", "Other", "1")
	dup.Name = "Gadget"
	_, err = s.Create(ctx, dup)

	require.ErrorIs(t, err, perrors.ErrProductAlreadyExists)
	found, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name, "existing product must not be overwritten")
}

func Test_InMemory_FindByID_NotFound(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.FindByID(context.Background(), 99)

	require.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_InMemory_Queries(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	for _, p := range []Product{
		widget(3, "tools", "Acme", "10.00"),
		widget(1, "tools", "Acme", "10"),
		widget(2, "toys", "Acme", "5"),
		widget(4, "tools", "Other", "10"),
	} {
		_, err := s.Create(ctx, p)
		require.NoError(t, err)
	}

	testCases := []struct {
		name     string
		query    func() ([]Product, error)
		expected []int64
	}{
		{
			name:     "all ordered by id",
			query:    func() ([]Product, error) { return s.FindAll(ctx) },
			expected: []int64{1, 2, 3, 4},
		},
		{
			name:     "by category",
			query:    func() ([]Product, error) { return s.FindByCategory(ctx, "tools") },
			expected: []int64{1, 3, 4},
		},
		{
			name:     "by category is case sensitive",
			query:    func() ([]Product, error) { return s.FindByCategory(ctx, "Tools") },
			expected: []int64{},
		},
		{
			name:     "by brand",
			query:    func() ([]Product, error) { return s.FindByBrand(ctx, "Acme") },
			expected: []int64{1, 2, 3},
		},
		{
			name:     "by price and brand compares numerically",
			query:    func() ([]Product, error) { return s.FindByPriceAndBrand(ctx, decimal.RequireFromString("10.0"), "Acme") },
			expected: []int64{1, 3},
		},
		{
			name:     "by price and brand without match",
			query:    func() ([]Product, error) { return s.FindByPriceAndBrand(ctx, decimal.RequireFromString("10"), "Nobody") },
			expected: []int64{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			products, err := tc.query()
			require.NoError(t, err)
			require.NotNil(t, products)

			ids := make([]int64, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func Test_InMemory_Update(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	_, err := s.Create(ctx, widget(1, "tools", "Acme", "9.99"))
	require.NoError(t, err)

	replacement := Product{ID: 1, Name: "Gadget", Price: decimal.RequireFromString("1.50"), Category: "toys", StockQuantity: 0, Brand: "Other"}
	updated, err := s.Update(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, replacement, *updated)

	found, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, replacement, *found)

	_, err = s.Update(ctx, Product{ID: 2, Name: "Ghost"})
	require.ErrorIs(t, err, perrors.ErrProductNotFound)
}

func Test_InMemory_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	_, err := s.Create(ctx, widget(1, "tools", "Acme", "9.99"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(ctx, 1))
	require.ErrorIs(t, s.DeleteByID(ctx, 1), perrors.ErrProductNotFound)

	exists, err := s.ExistsByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func Test_InMemory_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	const attempts = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Create(ctx, widget(7, "tools", "Acme", "1")); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one concurrent create must win")
}
