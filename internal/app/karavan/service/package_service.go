package service

import (
	"context"
	"errors"
	"fmt"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/repository"

	"github.com/go-playground/validator/v10"
)

// PackageService manages product kits. Product lines are validated against
// the catalog; supply lines carry their own price converted to TRY at write
// time. TotalTRY is the sum of product prices (discounted when available)
// and supply prices, each times its quantity.
type PackageService struct {
	packageRepo repository.PackageRepository
	productRepo repository.ProductRepository
	rateService ExchangeRateServiceInterface
	validate    *validator.Validate
}

func NewPackageService(
	packageRepo repository.PackageRepository,
	productRepo repository.ProductRepository,
	rateService ExchangeRateServiceInterface,
) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
		productRepo: productRepo,
		rateService: rateService,
		validate:    validator.New(),
	}
}

func (s *PackageService) CreatePackage(ctx context.Context, req *entity.CreatePackageRequest) (*entity.Package, error) {
	pkg, err := s.buildPackage(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	return pkg, nil
}

func (s *PackageService) GetPackage(ctx context.Context, id string) (*entity.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return pkg, nil
}

func (s *PackageService) GetAllPackages(ctx context.Context) ([]entity.Package, error) {
	packages, err := s.packageRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

// UpdatePackage replaces the package contents wholesale and reprices it.
func (s *PackageService) UpdatePackage(ctx context.Context, id string, req *entity.CreatePackageRequest) (*entity.Package, error) {
	existing, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg, err := s.buildPackage(ctx, req)
	if err != nil {
		return nil, err
	}

	pkg.ID = existing.ID
	pkg.CreatedAt = existing.CreatedAt

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	return pkg, nil
}

func (s *PackageService) DeletePackage(ctx context.Context, id string) error {
	if err := s.packageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return nil
}

func (s *PackageService) buildPackage(ctx context.Context, req *entity.CreatePackageRequest) (*entity.Package, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var total float64

	products := make([]entity.PackageProduct, 0, len(req.Products))
	for _, line := range req.Products {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			return nil, fmt.Errorf("failed to check product: %w", err)
		}

		unitPrice := product.ListPriceTRY
		if product.DiscountedPriceTRY != nil {
			unitPrice = *product.DiscountedPriceTRY
		}
		total += unitPrice * float64(line.Quantity)

		products = append(products, entity.PackageProduct{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	var snapshot *entity.ExchangeRateSnapshot
	supplies := make([]entity.PackageSupply, 0, len(req.Supplies))
	for _, line := range req.Supplies {
		if snapshot == nil {
			snap, err := s.rateService.GetRates(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to get exchange rates: %w", err)
			}
			snapshot = snap
		}

		unitPriceTRY, err := ConvertToTRY(line.UnitPrice, line.Currency, snapshot)
		if err != nil {
			return nil, err
		}
		total += unitPriceTRY * float64(line.Quantity)

		supplies = append(supplies, entity.PackageSupply{
			Name:         line.Name,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Currency:     line.Currency,
			UnitPriceTRY: unitPriceTRY,
		})
	}

	return &entity.Package{
		Name:        req.Name,
		Description: req.Description,
		Products:    products,
		Supplies:    supplies,
		TotalTRY:    total,
	}, nil
}
