package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/shopspring/decimal"
)

// inMemory implements ProductStore using an in-memory map.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
	}
}

func (s *inMemory) Create(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return nil, errors.ErrProductAlreadyExists
	}
	s.products[product.ID] = product
	return &product, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &t, nil
}

func (s *inMemory) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.products[id]
	return ok, nil
}

// FindAll retrieves all products.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	return s.filter(func(Product) bool { return true }), nil
}

func (s *inMemory) FindByCategory(_ context.Context, category string) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.Category == category }), nil
}

func (s *inMemory) FindByBrand(_ context.Context, brand string) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.Brand == brand }), nil
}

func (s *inMemory) FindByPriceAndBrand(_ context.Context, price decimal.Decimal, brand string) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.Brand == brand && p.Price.Equal(price) }), nil
}

func (s *inMemory) Update(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; !exists {
		return nil, errors.ErrProductNotFound
	}
	s.products[product.ID] = product
	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return errors.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *inMemory) Ping(context.Context) error {
	return nil
}

// filter returns the matching products ordered by ID.
func (s *inMemory) filter(match func(Product) bool) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if match(p) {
			list = append(list, p)
		}
	}
	slices.SortFunc(list, func(a, b Product) int { return cmp.Compare(a.ID, b.ID) })
	return list
}
