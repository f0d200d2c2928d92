package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/shopspring/decimal"
)

type ChangeKind string

const (
	ProductCreated ChangeKind = "created"
	ProductUpdated ChangeKind = "updated"
	ProductDeleted ChangeKind = "deleted"
)

// ProductSnapshot is the state of a product after the change. It is absent for deletions.
type ProductSnapshot struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int32           `json:"stockQuantity"`
	Brand         string          `json:"brand"`
}

type ProductChangedEvent struct {
	Kind       ChangeKind       `json:"kind"`
	ProductID  int64            `json:"product_id"`
	Product    *ProductSnapshot `json:"product,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func (e ProductChangedEvent) Subject() string {
	switch e.Kind {
	case ProductCreated:
		return messaging.ProductCreatedSubject
	case ProductUpdated:
		return messaging.ProductUpdatedSubject
	default:
		return messaging.ProductDeletedSubject
	}
}

func (e ProductChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
