package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/abgdnv/productcatalog/pkg/client/grpc/interceptors"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RetryPolicy bounds client retries of transient failures. Timeout caps a whole call.
type RetryPolicy struct {
	MaxAttempts    uint
	InitialBackoff time.Duration
	Timeout        time.Duration
}

// Client calls the catalog service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// NewConnection dials target with tracing and retries on Unavailable, ResourceExhausted and Aborted.
func NewConnection(target string, policy RetryPolicy, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithChainUnaryInterceptor(
			interceptors.UnaryClientTimeoutInterceptor(policy.Timeout),
			interceptors.NewRetryInterceptor(policy.MaxAttempts, policy.InitialBackoff),
		),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client for %s: %w", target, err)
	}
	return conn, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetProductFullMethodName, wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchByCategory(ctx context.Context, category string, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, SearchByCategoryFullMethodName, wrapperspb.String(category), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
