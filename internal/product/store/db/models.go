package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Product struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Price         string             `json:"price"`
	Category      string             `json:"category"`
	StockQuantity int32              `json:"stock_quantity"`
	Brand         string             `json:"brand"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}
