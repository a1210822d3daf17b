package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"

	"dropxcult-admin/db"
	"dropxcult-admin/models"
)

// ProductRepository handles database operations for products
// Implements ProductRepositoryInterface
type ProductRepository struct {
	policy *bluemonday.Policy
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{policy: bluemonday.StrictPolicy()}
}

// plainText strips markup and stores the remaining text unescaped; clients escape on render
func (r *ProductRepository) plainText(s string) string {
	return html.UnescapeString(r.policy.Sanitize(s))
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, name, slug, description, price, category, images, sizes, stock, is_featured, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p      models.Product
		images []byte
		sizes  []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Category,
		&images, &sizes, &p.Stock, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalList(images, &p.Images); err != nil {
		return nil, fmt.Errorf("product %s images: %w", p.ID, err)
	}
	if err := unmarshalList(sizes, &p.Sizes); err != nil {
		return nil, fmt.Errorf("product %s sizes: %w", p.ID, err)
	}
	return &p, nil
}

func unmarshalList(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// List returns all products, newest first
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("❌ Error listing products: %v", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	log.Debugf("📦 Listed %d products", len(products))
	return products, nil
}

// GetByID returns the product with the given id or ErrNotFound
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Errorf("❌ Error fetching product %s: %v", id, err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// Create inserts a product with the storefront defaults: sizes S-XL, stock 50, not featured
// and the single image as the gallery
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	now := time.Now().UTC()
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		Description: r.plainText(req.Description),
		Price:       req.Price,
		Category:    req.Category,
		Images:      []string{req.Image},
		Sizes:       req.Sizes,
		Stock:       models.DefaultStock,
		IsFeatured:  req.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(p.Sizes) == 0 {
		p.Sizes = append([]string(nil), models.DefaultSizes...)
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}

	images, _ := json.Marshal(p.Images)
	sizes, _ := json.Marshal(p.Sizes)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if _, err := db.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.Category,
		images, sizes, p.Stock, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		log.Errorf("❌ Error creating product %s: %v", p.Slug, err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Infof("✅ Product created: %s (%s)", p.Name, p.ID)
	return &p, nil
}

// Update applies the non-nil fields of req and returns the stored product
func (r *ProductRepository) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = r.plainText(*req.Description)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Sizes != nil {
		p.Sizes = req.Sizes
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	p.UpdatedAt = time.Now().UTC()

	images, _ := json.Marshal(p.Images)
	sizes, _ := json.Marshal(p.Sizes)

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, images = $5,
		    sizes = $6, stock = $7, is_featured = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := db.DB.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Category, images, sizes, p.Stock, p.IsFeatured, p.UpdatedAt, id)
	if err != nil {
		log.Errorf("❌ Error updating product %s: %v", id, err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	log.Infof("✅ Product updated: %s", id)
	return p, nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.Errorf("❌ Error deleting product %s: %v", id, err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Warnf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	log.Infof("🗑️  Product deleted: %s", id)
	return nil
}

// Count returns the number of products
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, "products")
}

// countRows counts a whole table; table is always a literal from this package
func countRows(ctx context.Context, table string) (int, error) {
	var n int
	if err := db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
