// Package grpc provides a gRPC server for the product catalog.
package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	producterrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ProductService defines the interface for the product service.
type ProductService interface {
	FindByID(ctx context.Context, id int64) (*service.ProductDto, error)
	SearchByCategory(ctx context.Context, category string) ([]service.ProductDto, error)
}

type Server struct {
	service ProductService
	logger  *slog.Logger
}

func NewServer(service ProductService, logger *slog.Logger) *Server {
	return &Server{service: service, logger: logger.With("component", "grpc")}
}

// Register adds the catalog service to gs.
func (s *Server) Register(gs *grpc.Server) {
	gs.RegisterService(&ServiceDesc, s)
}

// GetProduct returns the product as a Struct with the JSON field names of the REST API.
// Struct numbers are float64, so id and price are strings to stay exact.
func (s *Server) GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id := req.GetValue()
	if id <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid product ID: %d", id)
	}

	found, err := s.service.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			return nil, status.Errorf(codes.NotFound, "product not found with id: %d", id)
		}
		return nil, s.internalError(ctx, "service.FindByID failed", err)
	}
	return toStruct(found)
}

// SearchByCategory returns the products of the category. No match is an empty list.
func (s *Server) SearchByCategory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	category := req.GetValue()
	if category == "" {
		return nil, status.Error(codes.InvalidArgument, "category is required")
	}

	found, err := s.service.SearchByCategory(ctx, category)
	if err != nil {
		return nil, s.internalError(ctx, "service.SearchByCategory failed", err)
	}

	values := make([]*structpb.Value, 0, len(found))
	for i := range found {
		product, err := toStruct(&found[i])
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(product))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (s *Server) internalError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, producterrors.ErrStoreUnavailable) {
		s.logger.WarnContext(ctx, msg, slog.Any("error", err))
		return status.Error(codes.Unavailable, "product store unavailable")
	}
	s.logger.ErrorContext(ctx, msg, slog.Any("error", err))
	return status.Error(codes.Internal, "internal server error")
}

func toStruct(product *service.ProductDto) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(map[string]any{
		"id":            strconv.FormatInt(product.ID, 10),
		"name":          product.Name,
		"description":   product.Description,
		"price":         product.Price.String(),
		"category":      product.Category,
		"stockQuantity": product.StockQuantity,
		"brand":         product.Brand,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode product: %v", err)
	}
	return st, nil
}
