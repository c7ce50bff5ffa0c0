package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/repository"
	"karavan/internal/app/karavan/util"
	"karavan/pkg/logger"
	"karavan/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxPageLimit = 500

// ProductService implements catalog writes and listings.
// Every write that touches a price converts it to TRY with the snapshot in
// effect at that moment; a failed conversion fails the whole write.
type ProductService struct {
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	rateService ExchangeRateServiceInterface
	publisher   MessagePublisher // optional, may be nil
	validate    *validator.Validate
}

func NewProductService(
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	rateService ExchangeRateServiceInterface,
	publisher MessagePublisher,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		companyRepo: companyRepo,
		rateService: rateService,
		publisher:   publisher,
		validate:    validator.New(),
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.buildProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	metrics.RecordProductCreated(metrics.ServiceName, "api")
	s.publishEvent(ctx, entity.EventProductCreated, product)

	return product, nil
}

// buildProduct validates references, converts prices and assembles a new
// product. Shared by CreateProduct and BulkImport.
func (s *ProductService) buildProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to check company: %w", err)
	}

	if req.DiscountedPrice != nil && *req.DiscountedPrice > req.ListPrice {
		return nil, ErrInvalidDiscount
	}

	snapshot, err := s.rateService.GetRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rates: %w", err)
	}

	listPriceTRY, err := ConvertToTRY(req.ListPrice, req.Currency, snapshot)
	if err != nil {
		return nil, err
	}

	var discountedPriceTRY *float64
	if req.DiscountedPrice != nil {
		converted, err := ConvertToTRY(*req.DiscountedPrice, req.Currency, snapshot)
		if err != nil {
			return nil, err
		}
		discountedPriceTRY = &converted
	}

	now := time.Now()
	return &entity.Product{
		ID:                 uuid.New(),
		Name:               req.Name,
		NameNormalized:     util.NormalizeTurkish(req.Name),
		SearchText:         util.SearchText(req.Name, req.Brand, req.Description),
		Brand:              req.Brand,
		Description:        req.Description,
		ImageURL:           req.ImageURL,
		CompanyID:          req.CompanyID,
		CategoryID:         req.CategoryID,
		ListPrice:          req.ListPrice,
		Currency:           req.Currency,
		DiscountedPrice:    req.DiscountedPrice,
		ListPriceTRY:       listPriceTRY,
		DiscountedPriceTRY: discountedPriceTRY,
		IsFavorite:         false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies a partial update. When the price or the currency
// changes, both TRY prices are recomputed against the current snapshot;
// untouched fields keep their stored TRY values.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.IsFavorite != nil {
		product.IsFavorite = *req.IsFavorite
	}

	priceChanged := req.ListPrice != nil || req.Currency != nil || req.DiscountedPrice != nil
	if req.ListPrice != nil {
		product.ListPrice = *req.ListPrice
	}
	if req.Currency != nil {
		product.Currency = *req.Currency
	}
	if req.DiscountedPrice != nil {
		product.DiscountedPrice = req.DiscountedPrice
	}

	if product.DiscountedPrice != nil && *product.DiscountedPrice > product.ListPrice {
		return nil, ErrInvalidDiscount
	}

	if priceChanged {
		snapshot, err := s.rateService.GetRates(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get exchange rates: %w", err)
		}

		listPriceTRY, err := ConvertToTRY(product.ListPrice, product.Currency, snapshot)
		if err != nil {
			return nil, err
		}
		product.ListPriceTRY = listPriceTRY

		product.DiscountedPriceTRY = nil
		if product.DiscountedPrice != nil {
			converted, err := ConvertToTRY(*product.DiscountedPrice, product.Currency, snapshot)
			if err != nil {
				return nil, err
			}
			product.DiscountedPriceTRY = &converted
		}
	}

	product.NameNormalized = util.NormalizeTurkish(product.Name)
	product.SearchText = util.SearchText(product.Name, product.Brand, product.Description)
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.publishEvent(ctx, entity.EventProductUpdated, product)

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publishEvent(ctx, entity.EventProductDeleted, product)

	return nil
}

// ToggleFavorite flips the favorite flag and returns the updated product.
func (s *ProductService) ToggleFavorite(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsFavorite = !product.IsFavorite
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.publishEvent(ctx, entity.EventProductUpdated, product)

	return product, nil
}

// ListProducts returns a filtered page, favorites first within the filter.
func (s *ProductService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	if err := normalizeFilter(&filter); err != nil {
		return nil, err
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (s *ProductService) GetFavorites(ctx context.Context) ([]entity.Product, error) {
	filter := entity.ProductFilter{OnlyFavorites: true, SkipPagination: true}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return products, nil
}

func (s *ProductService) CountProducts(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	count, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// BulkImport creates products from pre-parsed rows. Rows are processed
// independently: a failed row is reported with its index and does not stop
// the rest of the batch.
func (s *ProductService) BulkImport(ctx context.Context, req *entity.BulkImportRequest) (*entity.BulkImportResult, error) {
	if len(req.Products) == 0 {
		return nil, fmt.Errorf("validation failed: empty products list")
	}

	result := &entity.BulkImportResult{}

	for i := range req.Products {
		row := &req.Products[i]

		if err := s.validate.Struct(row); err != nil {
			result.Errors = append(result.Errors, entity.BulkImportError{Index: i, Detail: err.Error()})
			continue
		}

		product, err := s.buildProduct(ctx, row)
		if err != nil {
			result.Errors = append(result.Errors, entity.BulkImportError{Index: i, Detail: err.Error()})
			continue
		}

		if err := s.productRepo.Create(ctx, product); err != nil {
			result.Errors = append(result.Errors, entity.BulkImportError{Index: i, Detail: err.Error()})
			continue
		}

		metrics.RecordProductCreated(metrics.ServiceName, "bulk")
		s.publishEvent(ctx, entity.EventProductCreated, product)
		result.Created++
	}

	logger.Info().
		Int("created", result.Created).
		Int("failed", len(result.Errors)).
		Msg("bulk import finished")

	return result, nil
}

// publishEvent sends a product change event; delivery failures are logged,
// never surfaced to the caller.
func (s *ProductService) publishEvent(ctx context.Context, eventType string, product *entity.Product) {
	if s.publisher == nil {
		return
	}

	event := entity.ProductEvent{
		EventType:    eventType,
		ProductID:    product.ID,
		Name:         product.Name,
		ListPriceTRY: product.ListPriceTRY,
		Currency:     product.Currency,
		Timestamp:    time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal product event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, product.ID.String(), payload); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish product event")
	}
}

// normalizeFilter applies pagination defaults and rejects invalid values.
func normalizeFilter(filter *entity.ProductFilter) error {
	if filter.SkipPagination {
		return nil
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	if filter.Page < 1 || filter.Limit < 1 || filter.Limit > maxPageLimit {
		return ErrInvalidPagination
	}

	return nil
}
