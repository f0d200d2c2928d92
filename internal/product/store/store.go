// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a catalog record as kept by a ProductStore.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	Category      string
	StockQuantity int32
	Brand         string
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
// List methods return products ordered by ID and an empty slice when nothing matches.
type ProductStore interface {
	// Create inserts the product unless its ID is taken.
	// Returns ErrProductAlreadyExists if a product with the same ID exists.
	Create(ctx context.Context, product Product) (*Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// ExistsByID reports whether a product with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindAll returns all available products.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByCategory returns the products whose category equals category exactly.
	FindByCategory(ctx context.Context, category string) ([]Product, error)

	// FindByBrand returns the products whose brand equals brand exactly.
	FindByBrand(ctx context.Context, brand string) ([]Product, error)

	// FindByPriceAndBrand returns the products with a numerically equal price and the exact brand.
	FindByPriceAndBrand(ctx context.Context, price decimal.Decimal, brand string) ([]Product, error)

	// Update replaces every mutable field of the product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, product Product) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// Ping checks that the store can serve requests.
	Ping(ctx context.Context) error
}
