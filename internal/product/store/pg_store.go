package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

// Create inserts a product with a client-assigned ID.
// The insert is conditional, so concurrent creates of the same ID cannot both succeed.
func (p *PgStore) Create(ctx context.Context, product Product) (*Product, error) {
	row, err := p.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price.String(),
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductAlreadyExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return fromRow(row)
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	row, err := p.q.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return fromRow(row)
}

func (p *PgStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := p.q.ExistsProduct(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// FindAll retrieves all products ordered by ID.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.q.FindAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return fromRows(rows)
}

func (p *PgStore) FindByCategory(ctx context.Context, category string) ([]Product, error) {
	rows, err := p.q.FindProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}
	return fromRows(rows)
}

func (p *PgStore) FindByBrand(ctx context.Context, brand string) ([]Product, error) {
	rows, err := p.q.FindProductsByBrand(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by brand: %w", err)
	}
	return fromRows(rows)
}

// FindByPriceAndBrand compares prices as numerics, so 10 and 10.00 are equal.
func (p *PgStore) FindByPriceAndBrand(ctx context.Context, price decimal.Decimal, brand string) ([]Product, error) {
	rows, err := p.q.FindProductsByPriceAndBrand(ctx, db.FindProductsByPriceAndBrandParams{
		Price: price.String(),
		Brand: brand,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price and brand: %w", err)
	}
	return fromRows(rows)
}

// Update modifies an existing product's details in a single statement.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, product Product) (*Product, error) {
	row, err := p.q.UpdateProduct(ctx, db.UpdateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price.String(),
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return fromRow(row)
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	count, err := p.q.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if count == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func fromRow(row db.Product) (*Product, error) {
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price %q of product %d: %w", row.Price, row.ID, err)
	}
	return &Product{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		Price:         price,
		Category:      row.Category,
		StockQuantity: row.StockQuantity,
		Brand:         row.Brand,
	}, nil
}

func fromRows(rows []db.Product) ([]Product, error) {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		product, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}
