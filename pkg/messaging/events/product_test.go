package events

import (
	"testing"
	"time"

	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductChangedEvent_Subject(t *testing.T) {
	assert.Equal(t, messaging.ProductCreatedSubject, ProductChangedEvent{Kind: ProductCreated}.Subject())
	assert.Equal(t, messaging.ProductUpdatedSubject, ProductChangedEvent{Kind: ProductUpdated}.Subject())
	assert.Equal(t, messaging.ProductDeletedSubject, ProductChangedEvent{Kind: ProductDeleted}.Subject())
}

func TestProductChangedEvent_Payload(t *testing.T) {
	occurredAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("deleted has no snapshot", func(t *testing.T) {
		payload, err := ProductChangedEvent{Kind: ProductDeleted, ProductID: 7, OccurredAt: occurredAt}.Payload()
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"deleted","product_id":7,"occurred_at":"2025-01-02T03:04:05Z"}`, string(payload))
	})

	t.Run("created carries the product", func(t *testing.T) {
		event := ProductChangedEvent{
			Kind:      ProductCreated,
			ProductID: 1,
			Product: &ProductSnapshot{
				Name:          "Widget",
				Price:         decimal.RequireFromString("9.99"),
				Category:      "tools",
				StockQuantity: 5,
				Brand:         "Acme",
			},
			OccurredAt: occurredAt,
		}
		payload, err := event.Payload()
		require.NoError(t, err)
		assert.Contains(t, string(payload), `"name":"Widget"`)
		assert.Contains(t, string(payload), `"stockQuantity":5`)
	})
}
