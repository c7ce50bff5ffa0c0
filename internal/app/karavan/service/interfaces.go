package service

import (
	"context"
	"time"

	"karavan/internal/app/karavan/entity"

	"github.com/google/uuid"
)

// ExchangeRateAPIClient fetches raw rates from the external provider.
// Values are units of foreign currency per 1 TRY.
type ExchangeRateAPIClient interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// RateCache is the shared (cross-instance) snapshot cache.
type RateCache interface {
	GetRateSnapshot(ctx context.Context) (*entity.ExchangeRateSnapshot, error)
	SetRateSnapshot(ctx context.Context, snapshot *entity.ExchangeRateSnapshot, ttl time.Duration) error
}

// CategoryCache caches the category list.
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]entity.Category, error)
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	DeleteCategories(ctx context.Context) error
}

// MessagePublisher publishes product change events.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
}

type ExchangeRateServiceInterface interface {
	GetRates(ctx context.Context) (*entity.ExchangeRateSnapshot, error)
	ForceUpdate(ctx context.Context) (*entity.ExchangeRateSnapshot, error)
}

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	GetFavorites(ctx context.Context) ([]entity.Product, error)
	CountProducts(ctx context.Context, filter entity.ProductFilter) (int64, error)
	BulkImport(ctx context.Context, req *entity.BulkImportRequest) (*entity.BulkImportResult, error)
}

type CompanyServiceInterface interface {
	CreateCompany(ctx context.Context, req *entity.CreateCompanyRequest) (*entity.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetAllCompanies(ctx context.Context) ([]entity.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, req *entity.UpdateCompanyRequest) (*entity.Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateGroup(ctx context.Context, req *entity.CreateCategoryGroupRequest) (*entity.CategoryGroup, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*entity.CategoryGroup, error)
	GetAllGroups(ctx context.Context) ([]entity.CategoryGroup, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryGroupRequest) (*entity.CategoryGroup, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

type PackageServiceInterface interface {
	CreatePackage(ctx context.Context, req *entity.CreatePackageRequest) (*entity.Package, error)
	GetPackage(ctx context.Context, id string) (*entity.Package, error)
	GetAllPackages(ctx context.Context) ([]entity.Package, error)
	UpdatePackage(ctx context.Context, id string, req *entity.CreatePackageRequest) (*entity.Package, error)
	DeletePackage(ctx context.Context, id string) error
}

type QuoteServiceInterface interface {
	CreateQuote(ctx context.Context, req *entity.CreateQuoteRequest) (*entity.Quote, error)
	GetQuote(ctx context.Context, id string) (*entity.Quote, error)
	GetAllQuotes(ctx context.Context) ([]entity.Quote, error)
	UpdateQuote(ctx context.Context, id string, req *entity.CreateQuoteRequest) (*entity.Quote, error)
	DeleteQuote(ctx context.Context, id string) error
}
