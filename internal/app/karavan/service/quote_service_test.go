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

func newQuoteServiceForTest() (*QuoteService, *mocks.MockQuoteRepository, *mocks.MockProductRepository) {
	quoteRepo := new(mocks.MockQuoteRepository)
	productRepo := new(mocks.MockProductRepository)

	svc := NewQuoteService(quoteRepo, productRepo)
	return svc, quoteRepo, productRepo
}

// ===================== CreateQuote Tests =====================

func TestCreateQuote_FreezesPricesAndTotals(t *testing.T) {
	// Arrange
	svc, quoteRepo, productRepo := newQuoteServiceForTest()
	ctx := context.Background()

	panel := &entity.Product{ID: uuid.New(), Name: "Güneş Paneli", ListPriceTRY: 4150}
	battery := &entity.Product{ID: uuid.New(), Name: "Akü", ListPriceTRY: 7500}

	productRepo.On("GetByID", ctx, panel.ID).Return(panel, nil)
	productRepo.On("GetByID", ctx, battery.ID).Return(battery, nil)
	quoteRepo.On("Create", ctx, mock.AnythingOfType("*entity.Quote")).Return(nil)

	req := &entity.CreateQuoteRequest{
		CustomerName: "Mehmet Yılmaz",
		Items: []entity.QuoteItemRequest{
			{ProductID: panel.ID, Quantity: 2},
			{ProductID: battery.ID, Quantity: 1},
		},
	}

	// Act
	quote, err := svc.CreateQuote(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, quote.Items, 2)
	assert.Equal(t, "Güneş Paneli", quote.Items[0].ProductName)
	assert.Equal(t, 4150.0, quote.Items[0].UnitPriceTRY)
	assert.Equal(t, 8300.0, quote.Items[0].LineTotalTRY)
	assert.Equal(t, 15800.0, quote.TotalTRY)
}

func TestCreateQuote_UsesDiscountedPriceWhenPresent(t *testing.T) {
	// Arrange
	svc, quoteRepo, productRepo := newQuoteServiceForTest()
	ctx := context.Background()

	discounted := 3500.0
	product := &entity.Product{
		ID:                 uuid.New(),
		Name:               "İnvertör",
		ListPriceTRY:       4000,
		DiscountedPriceTRY: &discounted,
	}

	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	quoteRepo.On("Create", ctx, mock.Anything).Return(nil)

	req := &entity.CreateQuoteRequest{
		CustomerName: "Ayşe Demir",
		Items:        []entity.QuoteItemRequest{{ProductID: product.ID, Quantity: 1}},
	}

	// Act
	quote, err := svc.CreateQuote(ctx, req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 3500.0, quote.Items[0].UnitPriceTRY)
	assert.Equal(t, 3500.0, quote.TotalTRY)
}

func TestCreateQuote_UnknownProduct(t *testing.T) {
	// Arrange
	svc, quoteRepo, productRepo := newQuoteServiceForTest()
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("GetByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	req := &entity.CreateQuoteRequest{
		CustomerName: "Mehmet Yılmaz",
		Items:        []entity.QuoteItemRequest{{ProductID: productID, Quantity: 1}},
	}

	// Act
	_, err := svc.CreateQuote(ctx, req)

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
	quoteRepo.AssertNotCalled(t, "Create")
}

func TestCreateQuote_NoItems(t *testing.T) {
	// Arrange
	svc, quoteRepo, _ := newQuoteServiceForTest()
	ctx := context.Background()

	req := &entity.CreateQuoteRequest{CustomerName: "Mehmet Yılmaz"}

	// Act
	_, err := svc.CreateQuote(ctx, req)

	// Assert
	assert.Error(t, err)
	quoteRepo.AssertNotCalled(t, "Create")
}

// ===================== UpdateQuote Tests =====================

func TestUpdateQuote_RepricesAgainstCurrentCatalog(t *testing.T) {
	// Arrange
	svc, quoteRepo, productRepo := newQuoteServiceForTest()
	ctx := context.Background()

	product := &entity.Product{ID: uuid.New(), Name: "Akü", ListPriceTRY: 9000}
	existing := &entity.Quote{
		CustomerName: "Mehmet Yılmaz",
		TotalTRY:     7500, // priced before the catalog changed
	}

	quoteRepo.On("GetByID", ctx, mock.Anything).Return(existing, nil)
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	quoteRepo.On("Update", ctx, mock.Anything).Return(nil)

	req := &entity.CreateQuoteRequest{
		CustomerName: "Mehmet Yılmaz",
		Items:        []entity.QuoteItemRequest{{ProductID: product.ID, Quantity: 1}},
	}

	// Act
	quote, err := svc.UpdateQuote(ctx, "655f1f77bcf86cd799439011", req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 9000.0, quote.TotalTRY)
}

func TestDeleteQuote_NotFound(t *testing.T) {
	// Arrange
	svc, quoteRepo, _ := newQuoteServiceForTest()
	ctx := context.Background()

	quoteRepo.On("Delete", ctx, "missing").Return(repository.ErrQuoteNotFound)

	// Act
	err := svc.DeleteQuote(ctx, "missing")

	// Assert
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}
