package productrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindActiveCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	query := `
        SELECT id, name, description, is_active, created_at
        FROM product_categories
        WHERE is_active = TRUE
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get product categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []domain.ProductCategory
	for rows.Next() {
		var category domain.ProductCategory
		err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.IsActive, &category.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan category row", zap.Error(err))
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

const productColumns = "p.id, p.category_id, p.name, p.description, p.price, p.provider, p.product_code, p.is_active, p.created_at, p.updated_at"

// FindActiveProducts lists active products belonging to active categories,
// optionally narrowed to one category.
func (r *Repository) FindActiveProducts(ctx context.Context, categoryID *int) ([]domain.DigitalProduct, error) {
	query := `
        SELECT ` + productColumns + `
        FROM digital_products p
        INNER JOIN product_categories c ON c.id = p.category_id
        WHERE p.is_active = TRUE AND c.is_active = TRUE AND ($1::int IS NULL OR p.category_id = $1)
        ORDER BY p.id
    `
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		zap.L().Error("can't get digital products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []domain.DigitalProduct
	for rows.Next() {
		var product domain.DigitalProduct
		err := rows.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.Price,
			&product.Provider, &product.ProductCode, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *Repository) FindByID(ctx context.Context, productID int) (*domain.DigitalProduct, error) {
	query := `
        SELECT ` + productColumns + `
        FROM digital_products p
        WHERE p.id = $1
    `
	row := r.db.QueryRow(ctx, query, productID)
	var product domain.DigitalProduct
	err := row.Scan(&product.ID, &product.CategoryID, &product.Name, &product.Description, &product.Price,
		&product.Provider, &product.ProductCode, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find product", zap.Int("productID", productID), zap.Error(err))
		return nil, err
	}
	return &product, nil
}
