// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrProductAlreadyExists = errors.New("product already exists")

// ErrStoreUnavailable is returned while the store is considered unhealthy and calls are rejected.
var ErrStoreUnavailable = errors.New("product store unavailable")
