package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) ToggleFavorite(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) GetFavorites(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) CountProducts(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductService) BulkImport(ctx context.Context, req *entity.BulkImportRequest) (*entity.BulkImportResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BulkImportResult), args.Error(1)
}

func setupProductRouter(svc service.ProductServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewProductHandler(svc)
	router.GET("/api/products", h.ListProducts)
	router.GET("/api/products/count", h.CountProducts)
	router.GET("/api/products/favorites", h.GetFavorites)
	router.GET("/api/products/:id", h.GetProduct)
	router.POST("/api/products", h.CreateProduct)
	router.POST("/api/products/:id/toggle-favorite", h.ToggleFavorite)
	router.PUT("/api/products/:id", h.UpdateProduct)
	router.DELETE("/api/products/:id", h.DeleteProduct)

	return router
}

func TestListProductsHandler_ReturnsBareArray(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	products := []entity.Product{
		{ID: uuid.New(), Name: "Akü", IsFavorite: true},
		{ID: uuid.New(), Name: "Panel"},
	}
	mockService.On("ListProducts", mock.Anything, mock.Anything).Return(products, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// the body is a JSON array, not an envelope object
	var decoded []entity.Product
	err := json.Unmarshal(w.Body.Bytes(), &decoded)
	assert.NoError(t, err)
	assert.Len(t, decoded, 2)
}

func TestListProductsHandler_EmptyResultIsEmptyArray(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	mockService.On("ListProducts", mock.Anything, mock.Anything).Return(nil, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListProductsHandler_PassesFilterFromQuery(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	companyID := uuid.New()
	expected := entity.ProductFilter{
		Search:        "akü",
		CompanyID:     &companyID,
		OnlyFavorites: true,
		Page:          2,
		Limit:         10,
	}
	mockService.On("ListProducts", mock.Anything, expected).Return([]entity.Product{}, nil)

	url := "/api/products?search=ak%C3%BC&company_id=" + companyID.String() + "&only_favorites=true&page=2&limit=10"
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestListProductsHandler_InvalidPagination(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	mockService.On("ListProducts", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidPagination)

	req, _ := http.NewRequest(http.MethodGet, "/api/products?page=-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp entity.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Geçersiz sayfalama parametresi", resp.Detail)
}

func TestGetProductHandler_NotFound(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	id := uuid.New()
	mockService.On("GetProduct", mock.Anything, id).Return(nil, service.ErrProductNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/products/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp entity.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ürün bulunamadı", resp.Detail)
}

func TestGetProductHandler_InvalidID(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	req, _ := http.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetProduct")
}

func TestCreateProductHandler_Success(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	product := &entity.Product{ID: uuid.New(), Name: "Güneş Paneli", ListPriceTRY: 4150}
	mockService.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entity.CreateProductRequest")).Return(product, nil)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:      "Güneş Paneli",
		CompanyID: uuid.New(),
		ListPrice: 100,
		Currency:  "USD",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProductHandler_DiscountAboveList(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	mockService.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidDiscount)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:      "Panel",
		CompanyID: uuid.New(),
		ListPrice: 100,
		Currency:  "USD",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp entity.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "İndirimli fiyat liste fiyatından büyük olamaz", resp.Detail)
}

func TestCreateProductHandler_ConversionFailure(t *testing.T) {
	// A conversion failure is not a malformed body; the client must see
	// a message naming the conversion.
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	mockService.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, service.ErrConversion)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:      "Panel",
		CompanyID: uuid.New(),
		ListPrice: 100,
		Currency:  "USD",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp entity.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Fiyat TL'ye dönüştürülemedi", resp.Detail)
}

func TestToggleFavoriteHandler_Success(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	product := &entity.Product{ID: uuid.New(), Name: "Akü", IsFavorite: true}
	mockService.On("ToggleFavorite", mock.Anything, product.ID).Return(product, nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/products/"+product.ID.String()+"/toggle-favorite", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var decoded entity.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.True(t, decoded.IsFavorite)
}

func TestCountProductsHandler_Success(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	mockService.On("CountProducts", mock.Anything, mock.Anything).Return(int64(7), nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/products/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count": 7}`, w.Body.String())
}

func TestDeleteProductHandler_Success(t *testing.T) {
	mockService := new(MockProductService)
	router := setupProductRouter(mockService)

	id := uuid.New()
	mockService.On("DeleteProduct", mock.Anything, id).Return(nil)

	req, _ := http.NewRequest(http.MethodDelete, "/api/products/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
