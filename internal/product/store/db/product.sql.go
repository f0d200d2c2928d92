package db

import (
	"context"
)

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (id, name, description, price, category, stock_quantity, brand)
VALUES ($1, $2, $3, $4::text::numeric,
        $5, $6, $7)
ON CONFLICT (id) DO NOTHING
RETURNING id, name, description, price::text AS price, category, stock_quantity, brand, created_at, updated_at
`

type CreateProductParams struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	Category      string `json:"category"`
	StockQuantity int32  `json:"stock_quantity"`
	Brand         string `json:"brand"`
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Category,
		arg.StockQuantity,
		arg.Brand,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Category,
		&i.StockQuantity,
		&i.Brand,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteProduct = `-- name: DeleteProduct :execrows
DELETE FROM products
WHERE id = $1
`

func (q *Queries) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const existsProduct = `-- name: ExistsProduct :one
SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)
`

func (q *Queries) ExistsProduct(ctx context.Context, id int64) (bool, error) {
	row := q.db.QueryRow(ctx, existsProduct, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const findAllProducts = `-- name: FindAllProducts :many
SELECT id, name, description, price::text AS price, category, stock_quantity, brand, created_at, updated_at
FROM products
ORDER BY id
`

func (q *Queries) FindAllProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, findAllProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.Category,
			&i.StockQuantity,
			&i.Brand,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductByID = `-- name: FindProductByID :one
SELECT id, name, description, price::text AS price, category, stock_quantity, brand, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) FindProductByID(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(ctx, findProductByID, id)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Category,
		&i.StockQuantity,
		&i.Brand,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findProductsByBrand = `-- name: FindProductsByBrand :many
SELECT id, name, description, price::text AS price, category, stock_quantity, brand, created_at, updated_at
FROM products
WHERE brand = $1
ORDER BY id
`

func (q *Queries) FindProductsByBrand(ctx context.Context, brand string) ([]Product, error) {
	rows, err := q.db.Query(ctx, findProductsByBrand, brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.Category,
			&i.StockQuantity,
			&i.Brand,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductsByCategory = `-- name: FindProductsByCategory :many
SELECT id, name, description, price::text AS price, category, stock_quantity, brand, created_at, updated_at
FROM products
WHERE category = $1
ORDER BY id
`

func (q *Queries) FindProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	rows, err := q.db.Query(ctx, findProductsByCategory, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.Category,
			&i.StockQuantity,
			&i.Brand,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductsByPriceAndBrand = `-- name: FindProductsByPriceAndBrand :many
SELECT id, name, description, price::text AS price, category, stock_quantity, brand, created_at, updated_at
FROM products
WHERE price = $1::text::numeric
  AND brand = $2
ORDER BY id
`

type FindProductsByPriceAndBrandParams struct {
	Price string `json:"price"`
	Brand string `json:"brand"`
}

func (q *Queries) FindProductsByPriceAndBrand(ctx context.Context, arg FindProductsByPriceAndBrandParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, findProductsByPriceAndBrand, arg.Price, arg.Brand)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.Category,
			&i.StockQuantity,
			&i.Brand,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateProduct = `-- name: UpdateProduct :one
UPDATE products
SET name           = $1,
    description    = $2,
    price          = $3::text::numeric,
    category       = $4,
    stock_quantity = $5,
    brand          = $6,
    updated_at     = now()
WHERE id = $7
RETURNING id, name, description, price::text AS price, category, stock_quantity, brand, created_at, updated_at
`

type UpdateProductParams struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	Category      string `json:"category"`
	StockQuantity int32  `json:"stock_quantity"`
	Brand         string `json:"brand"`
	ID            int64  `json:"id"`
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.Category,
		arg.StockQuantity,
		arg.Brand,
		arg.ID,
	)
	var i Product
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Price,
		&i.Category,
		&i.StockQuantity,
		&i.Brand,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
