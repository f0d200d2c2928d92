// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/productcatalog/internal/product/store"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/messaging/events"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/abgdnv/productcatalog/internal/product/service"

func init() {
	// prices are JSON numbers on every surface: REST bodies and change events
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create adds a new product with a client-assigned ID.
	// Returns ErrProductAlreadyExists if the ID is taken.
	Create(ctx context.Context, product ProductDto) (*ProductDto, error)

	// FindAll returns all available products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Exists reports whether a product with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Update replaces every mutable field of an existing product. The ID never changes.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// SearchByCategory returns the products in the category.
	// Returns an empty slice if none match.
	SearchByCategory(ctx context.Context, category string) ([]ProductDto, error)

	// SearchByPriceAndBrand returns the products with an equal price and the brand.
	// Returns an empty slice if none match.
	SearchByPriceAndBrand(ctx context.Context, price decimal.Decimal, brand string) ([]ProductDto, error)

	// SearchByBrand returns the products of the brand.
	// Returns an empty slice if none match.
	SearchByBrand(ctx context.Context, brand string) ([]ProductDto, error)
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	logger     *slog.Logger
	changes    metric.Int64Counter
}

// NewService creates a new instance of ProductService. Successful changes are published
// with publisher and counted on the global meter provider.
func NewService(repo store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	changes, err := otel.Meter(instrumentationName).Int64Counter(
		"catalog_products_changed",
		metric.WithDescription("Number of products created, updated or deleted"),
		metric.WithUnit("{product}"),
	)
	if err != nil {
		logger.Error("failed to create products changed counter", "error", err)
	}
	return &Service{
		repository: repo,
		publisher:  publisher,
		logger:     logger,
		changes:    changes,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID            int64           `json:"id"            validate:"required,gt=0"`
	Name          string          `json:"name"          validate:"max=255"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"         validate:"gte=0"`
	Category      string          `json:"category"      validate:"max=255"`
	StockQuantity int32           `json:"stockQuantity" validate:"min=0"`
	Brand         string          `json:"brand"         validate:"max=255"`
}

// ProductUpdateDto carries the replacement values of an update. The ID comes from the path.
type ProductUpdateDto struct {
	Name          string          `json:"name"          validate:"max=255"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"         validate:"gte=0"`
	Category      string          `json:"category"      validate:"max=255"`
	StockQuantity int32           `json:"stockQuantity" validate:"min=0"`
	Brand         string          `json:"brand"         validate:"max=255"`
}

// Create stores a new product and returns it as a ProductDto.
// Returns ErrProductAlreadyExists if a product with the same ID exists.
func (s *Service) Create(ctx context.Context, product ProductDto) (*ProductDto, error) {
	created, err := s.repository.Create(ctx, store.Product{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product with ID %d: %w", product.ID, err)
	}

	s.changed(ctx, events.ProductCreated, created)
	return toDto(created), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toDtos(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repository.ExistsByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check product with ID %d: %w", id, err)
	}
	return exists, nil
}

// Update overwrites name, description, price, category, stock quantity and brand.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, store.Product{
		ID:            id,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	s.changed(ctx, events.ProductUpdated, updated)
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}

	s.changed(ctx, events.ProductDeleted, &store.Product{ID: id})
	return nil
}

func (s *Service) SearchByCategory(ctx context.Context, category string) ([]ProductDto, error) {
	products, err := s.repository.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by category %q: %w", category, err)
	}
	return toDtos(products), nil
}

func (s *Service) SearchByPriceAndBrand(ctx context.Context, price decimal.Decimal, brand string) ([]ProductDto, error) {
	products, err := s.repository.FindByPriceAndBrand(ctx, price, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by price %s and brand %q: %w", price, brand, err)
	}
	return toDtos(products), nil
}

func (s *Service) SearchByBrand(ctx context.Context, brand string) ([]ProductDto, error) {
	products, err := s.repository.FindByBrand(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by brand %q: %w", brand, err)
	}
	return toDtos(products), nil
}

// changed records a committed mutation. Publication failures are logged and never fail the request.
func (s *Service) changed(ctx context.Context, kind events.ChangeKind, product *store.Product) {
	if s.changes != nil {
		s.changes.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", string(kind))))
	}

	event := events.ProductChangedEvent{
		Kind:       kind,
		ProductID:  product.ID,
		OccurredAt: time.Now().UTC(),
	}
	if kind != events.ProductDeleted {
		event.Product = &events.ProductSnapshot{
			Name:          product.Name,
			Description:   product.Description,
			Price:         product.Price,
			Category:      product.Category,
			StockQuantity: product.StockQuantity,
			Brand:         product.Brand,
		}
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product change",
			slog.String("subject", event.Subject()),
			slog.Int64("product_id", product.ID),
			slog.Any("error", err))
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	}
}

func toDtos(products []store.Product) []ProductDto {
	productDTOs := make([]ProductDto, len(products))
	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}
	return productDTOs
}
