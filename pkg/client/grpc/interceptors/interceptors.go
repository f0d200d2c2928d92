// Package interceptors holds unary client interceptors shared by gRPC clients.
package interceptors

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/retry"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

// RetryableCodes are the status codes treated as transient.
var RetryableCodes = []codes.Code{codes.Unavailable, codes.ResourceExhausted, codes.Aborted}

// NewRetryInterceptor retries transient failures up to maxAttempts times with exponential backoff.
func NewRetryInterceptor(maxAttempts uint, initialBackoff time.Duration) grpc.UnaryClientInterceptor {
	return retry.UnaryClientInterceptor(
		retry.WithCodes(RetryableCodes...),
		retry.WithMax(maxAttempts),
		retry.WithBackoff(retry.BackoffExponential(initialBackoff)),
	)
}

// UnaryClientTimeoutInterceptor bounds every call, retries included, by timeout.
// A zero timeout leaves the caller's deadline untouched.
func UnaryClientTimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if timeout <= 0 {
			return invoker(ctx, method, req, reply, cc, opts...)
		}
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return invoker(callCtx, method, req, reply, cc, opts...)
	}
}
