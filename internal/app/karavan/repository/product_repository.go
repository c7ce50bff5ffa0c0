package repository

import (
	"context"
	"errors"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository backed by GORM.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	return result.Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// Update persists all fields of the product row.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":                 product.Name,
		"name_normalized":      product.NameNormalized,
		"search_text":          product.SearchText,
		"brand":                product.Brand,
		"description":          product.Description,
		"image_url":            product.ImageURL,
		"category_id":          product.CategoryID,
		"list_price":           product.ListPrice,
		"currency":             product.Currency,
		"discounted_price":     product.DiscountedPrice,
		"list_price_try":       product.ListPriceTRY,
		"discounted_price_try": product.DiscountedPriceTRY,
		"is_favorite":          product.IsFavorite,
		"updated_at":           product.UpdatedAt,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteByCompanyID removes every product of a company (cascade on company delete).
func (r *productRepository) DeleteByCompanyID(ctx context.Context, companyID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "company_id = ?", companyID)
	return result.Error
}

// ClearCategory detaches products from a deleted category; they become uncategorized.
func (r *productRepository) ClearCategory(ctx context.Context, categoryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil)
	return result.Error
}

// List returns products ordered favorites-first, then alphabetically by the
// normalized name. The ordering lives in the query so it holds on every page.
func (r *productRepository) List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	query := r.applyFilter(ctx, filter).
		Order("is_favorite DESC").
		Order("name_normalized ASC")

	if !filter.SkipPagination {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var products []entity.Product
	if result := query.Find(&products); result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Count returns the number of matching products, ignoring pagination.
func (r *productRepository) Count(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	var count int64
	if result := r.applyFilter(ctx, filter).Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *productRepository) applyFilter(ctx context.Context, filter entity.ProductFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.OnlyFavorites {
		query = query.Where("is_favorite = ?", true)
	}
	if filter.Search != "" {
		// search_text already holds the Turkish-folded name/brand/description
		needle := "%" + util.NormalizeTurkish(filter.Search) + "%"
		query = query.Where("search_text LIKE ?", needle)
	}

	return query
}
