// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	producterrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Pinger reports whether the backing store can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	service  service.ProductService
	store    Pinger
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the product API with the provided service.
// store backs the readiness probe.
func NewHandler(service service.ProductService, store Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		store:    store,
		validate: web.NewValidator(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Get("/search", h.SearchByCategory)
		r.Get("/searchByPriceAndBrand", h.SearchByPriceAndBrand)
		r.Get("/searchByBrand", h.SearchByBrand)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Head("/", h.Exists)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
	r.Get("/readyz", h.ReadinessCheck)
}

// Create handles the creation of a new product with a client-assigned ID.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var productDto service.ProductDto
	if !h.decodeAndValidate(w, r, &productDto) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "ID", productDto.ID)

	newProduct, err := h.service.Create(r.Context(), productDto)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductAlreadyExists) {
			h.logger.WarnContext(r.Context(), "Product already exists", "ID", productDto.ID)
			web.RespondError(w, h.logger, http.StatusConflict, fmt.Sprintf("Product with id %d already exists", productDto.ID))
			return
		}
		h.respondFailure(w, r, err, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondMessage(w, h.logger, http.StatusCreated, "Product added successfully")
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.respondFailure(w, r, err, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.respondNotFound(w, r, id)
			return
		}
		h.respondFailure(w, r, err, fmt.Sprintf("Failed to retrieve product with id %d", id))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// Exists answers HEAD requests with 200 or 404 and no body.
func (h *Handler) Exists(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	exists, err := h.service.Exists(r.Context(), id)
	switch {
	case err != nil:
		h.logger.ErrorContext(r.Context(), "Error checking product existence", "ID", id, "error", err)
		w.WriteHeader(statusFor(err))
	case exists:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Update replaces every mutable field of the product. The ID in the path is authoritative.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var productUpdateDto service.ProductUpdateDto
	if !h.decodeAndValidate(w, r, &productUpdateDto) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.respondNotFound(w, r, id)
			return
		}
		h.respondFailure(w, r, err, fmt.Sprintf("Failed to update product with id %d", id))
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.respondNotFound(w, r, id)
			return
		}
		h.respondFailure(w, r, err, fmt.Sprintf("Failed to delete product with id %d", id))
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondMessage(w, h.logger, http.StatusOK, "Product deleted successfully")
}

// SearchByCategory lists the products of a category. No match is reported as 404.
func (h *Handler) SearchByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := web.RequiredQuery(w, r, h.logger, "category")
	if !ok {
		return
	}
	list, err := h.service.SearchByCategory(r.Context(), category)
	h.respondSearch(w, r, list, err, fmt.Sprintf("No products found in category: %s", category))
}

// SearchByPriceAndBrand lists the products with the exact price and brand. No match is reported as 404.
func (h *Handler) SearchByPriceAndBrand(w http.ResponseWriter, r *http.Request) {
	rawPrice, ok := web.RequiredQuery(w, r, h.logger, "price")
	if !ok {
		return
	}
	brand, ok := web.RequiredQuery(w, r, h.logger, "brand")
	if !ok {
		return
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid price parameter", "price", rawPrice, "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Invalid price: %s", rawPrice))
		return
	}
	list, err := h.service.SearchByPriceAndBrand(r.Context(), price, brand)
	h.respondSearch(w, r, list, err, fmt.Sprintf("No products with Price: %s and brand: %s", rawPrice, brand))
}

// SearchByBrand lists the products of a brand. No match is reported as 404.
func (h *Handler) SearchByBrand(w http.ResponseWriter, r *http.Request) {
	brand, ok := web.RequiredQuery(w, r, h.logger, "brand")
	if !ok {
		return
	}
	list, err := h.service.SearchByBrand(r.Context(), brand)
	h.respondSearch(w, r, list, err, fmt.Sprintf("No products found for brand: %s", brand))
}

// HealthCheck is a simple liveness probe.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessCheck reports 503 while the store is unreachable.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "Readiness check failed", "error", err)
		web.RespondError(w, h.logger, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ready"})
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes the 400 response itself.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		web.RespondValidationError(w, r, h.logger, err)
		return false
	}
	return true
}

func (h *Handler) respondSearch(w http.ResponseWriter, r *http.Request, list []service.ProductDto, err error, notFound string) {
	if err != nil {
		h.respondFailure(w, r, err, "Failed to search products")
		return
	}
	if len(list) == 0 {
		h.logger.DebugContext(r.Context(), "Search returned no products", "query", r.URL.RawQuery)
		web.RespondError(w, h.logger, http.StatusNotFound, notFound)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) respondNotFound(w http.ResponseWriter, r *http.Request, id int64) {
	h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
	web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product not found with id: %d", id))
}

// respondFailure maps unexpected service errors to 503 when the store is unavailable and 500 otherwise.
func (h *Handler) respondFailure(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := statusFor(err)
	if status == http.StatusServiceUnavailable {
		h.logger.WarnContext(r.Context(), "Store unavailable", "error", err)
		web.RespondError(w, h.logger, status, "Service temporarily unavailable")
		return
	}
	h.logger.ErrorContext(r.Context(), message, "error", err)
	web.RespondError(w, h.logger, status, message)
}

func statusFor(err error) int {
	if errors.Is(err, producterrors.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
