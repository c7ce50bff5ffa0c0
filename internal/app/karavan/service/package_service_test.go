package service

import (
	"context"
	"testing"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/repository"
	"karavan/internal/app/karavan/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPackageServiceForTest() (*PackageService, *mocks.MockPackageRepository, *mocks.MockProductRepository, *mocks.MockExchangeRateService) {
	packageRepo := new(mocks.MockPackageRepository)
	productRepo := new(mocks.MockProductRepository)
	rateService := new(mocks.MockExchangeRateService)

	svc := NewPackageService(packageRepo, productRepo, rateService)
	return svc, packageRepo, productRepo, rateService
}

func TestCreatePackage_TotalsProductsAndSupplies(t *testing.T) {
	// Arrange
	svc, packageRepo, productRepo, rateService := newPackageServiceForTest()
	ctx := context.Background()

	panel := &entity.Product{ID: uuid.New(), Name: "Güneş Paneli", ListPriceTRY: 4150}

	productRepo.On("GetByID", ctx, panel.ID).Return(panel, nil)
	rateService.On("GetRates", ctx).Return(testSnapshot(), nil)
	packageRepo.On("Create", ctx, mock.AnythingOfType("*entity.Package")).Return(nil)

	req := &entity.CreatePackageRequest{
		Name:     "Başlangıç Seti",
		Products: []entity.PackageProductRequest{{ProductID: panel.ID, Quantity: 2}},
		Supplies: []entity.PackageSupplyRequest{
			{Name: "Solar Kablo 6mm", Quantity: 10, UnitPrice: 2, Currency: "USD"},
		},
	}

	// Act
	pkg, err := svc.CreatePackage(ctx, req)

	// Assert: 2*4150 + 10*(2*41.5) = 8300 + 830
	assert.NoError(t, err)
	assert.InDelta(t, 9130.0, pkg.TotalTRY, 0.0001)
	assert.Len(t, pkg.Products, 1)
	assert.Len(t, pkg.Supplies, 1)
	assert.InDelta(t, 83.0, pkg.Supplies[0].UnitPriceTRY, 0.0001)
}

func TestCreatePackage_UsesDiscountedProductPrice(t *testing.T) {
	// Arrange
	svc, packageRepo, productRepo, _ := newPackageServiceForTest()
	ctx := context.Background()

	discounted := 3000.0
	product := &entity.Product{
		ID:                 uuid.New(),
		Name:               "İnvertör",
		ListPriceTRY:       4000,
		DiscountedPriceTRY: &discounted,
	}

	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	packageRepo.On("Create", ctx, mock.Anything).Return(nil)

	req := &entity.CreatePackageRequest{
		Name:     "Kamp Seti",
		Products: []entity.PackageProductRequest{{ProductID: product.ID, Quantity: 1}},
	}

	// Act
	pkg, err := svc.CreatePackage(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 3000.0, pkg.TotalTRY)
}

func TestCreatePackage_UnknownProduct(t *testing.T) {
	// Arrange
	svc, packageRepo, productRepo, _ := newPackageServiceForTest()
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("GetByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	req := &entity.CreatePackageRequest{
		Name:     "Kamp Seti",
		Products: []entity.PackageProductRequest{{ProductID: productID, Quantity: 1}},
	}

	// Act
	_, err := svc.CreatePackage(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
	packageRepo.AssertNotCalled(t, "Create")
}

func TestUpdatePackage_KeepsIdentityAndCreationTime(t *testing.T) {
	// Arrange
	svc, packageRepo, productRepo, _ := newPackageServiceForTest()
	ctx := context.Background()

	product := &entity.Product{ID: uuid.New(), Name: "Akü", ListPriceTRY: 7500}
	existing := &entity.Package{Name: "Eski Set", TotalTRY: 100}

	packageRepo.On("GetByID", ctx, mock.Anything).Return(existing, nil)
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	packageRepo.On("Update", ctx, mock.Anything).Return(nil)

	req := &entity.CreatePackageRequest{
		Name:     "Yeni Set",
		Products: []entity.PackageProductRequest{{ProductID: product.ID, Quantity: 1}},
	}

	// Act
	pkg, err := svc.UpdatePackage(ctx, "655f1f77bcf86cd799439011", req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "Yeni Set", pkg.Name)
	assert.Equal(t, 7500.0, pkg.TotalTRY)
	assert.Equal(t, existing.CreatedAt, pkg.CreatedAt)
}

func TestDeletePackage_NotFound(t *testing.T) {
	// Arrange
	svc, packageRepo, _, _ := newPackageServiceForTest()
	ctx := context.Background()

	packageRepo.On("Delete", ctx, "missing").Return(repository.ErrPackageNotFound)

	// Act
	err := svc.DeletePackage(ctx, "missing")

	// Assert
	assert.ErrorIs(t, err, ErrPackageNotFound)
}
