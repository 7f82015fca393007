package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// CreateProductParams holds the fields required to create a product
type CreateProductParams struct {
	Name     string
	Price    float64
	Quantity int
	Image    string
}

// UpdateProductParams holds an optional subset of product fields. Nil
// pointers leave the stored value untouched.
type UpdateProductParams struct {
	Name     *string
	Price    *float64
	Quantity *int
	Image    *string
}

// ProductRepository defines the interface for product data access.
// Identifier assignment happens inside Create; callers never supply one.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, params CreateProductParams) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// FindAll retrieves every product ordered by creation time
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, quantity, image, created_at, updated_at
		FROM products
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Quantity,
			&product.Image,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, quantity, image, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Quantity,
		&product.Image,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Create inserts a new product, assigning its identifier
func (r *productRepository) Create(ctx context.Context, params CreateProductParams) (*domain.Product, error) {
	now := time.Now()
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      params.Name,
		Price:     params.Price,
		Quantity:  params.Quantity,
		Image:     params.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO products (id, name, price, quantity, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.Quantity,
		product.Image,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update applies a partial update; fields left nil keep their stored value
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price),
		    quantity = COALESCE($4, quantity),
		    image = COALESCE($5, image),
		    updated_at = $6
		WHERE id = $1
		RETURNING id, name, price, quantity, image, created_at, updated_at
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(
		ctx,
		query,
		id,
		params.Name,
		params.Price,
		params.Quantity,
		params.Image,
		time.Now(),
	).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Quantity,
		&product.Image,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete removes a product from the database using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
