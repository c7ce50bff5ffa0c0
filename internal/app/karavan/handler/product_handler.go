package handler

import (
	"errors"
	"net/http"
	"strconv"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler serves the product endpoints.
type ProductHandler struct {
	productService service.ProductServiceInterface
}

func NewProductHandler(productService service.ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidProductID)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, msgProductNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts handles GET /api/products.
// The response body is a bare JSON array, favorites first.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidPagination)
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPagination) {
			respondError(c, http.StatusBadRequest, msgInvalidPagination)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	if products == nil {
		products = []entity.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// CountProducts handles GET /api/products/count
func (h *ProductHandler) CountProducts(c *gin.Context) {
	filter, err := parseProductFilter(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidPagination)
		return
	}

	count, err := h.productService.CountProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, entity.CountResponse{Count: count})
}

// GetFavorites handles GET /api/products/favorites
func (h *ProductHandler) GetFavorites(c *gin.Context) {
	products, err := h.productService.GetFavorites(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	if products == nil {
		products = []entity.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidProductID)
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidProductID)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, msgProductNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleFavorite handles POST /api/products/:id/toggle-favorite
func (h *ProductHandler) ToggleFavorite(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidProductID)
		return
	}

	product, err := h.productService.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, msgProductNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, product)
}

// BulkImport handles POST /api/products/bulk-import
func (h *ProductHandler) BulkImport(c *gin.Context) {
	var req entity.BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := h.productService.BulkImport(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondWriteError maps product write failures to HTTP responses.
func (h *ProductHandler) respondWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, service.ErrCompanyNotFound):
		respondError(c, http.StatusBadRequest, msgCompanyNotFound)
	case errors.Is(err, service.ErrInvalidDiscount):
		respondError(c, http.StatusBadRequest, msgInvalidDiscount)
	case errors.Is(err, service.ErrUnknownCurrency):
		respondError(c, http.StatusBadRequest, msgUnknownCurrency)
	case errors.Is(err, service.ErrConversion):
		respondError(c, http.StatusBadRequest, msgConversionFailed)
	default:
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, formatValidationError(err))
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
	}
}

func parseProductFilter(c *gin.Context) (entity.ProductFilter, error) {
	filter := entity.ProductFilter{
		Search: c.Query("search"),
	}

	if raw := c.Query("company_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.CompanyID = &id
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}

	if raw := c.Query("only_favorites"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.OnlyFavorites = value
	}

	if raw := c.Query("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.Page = value
	}

	if raw := c.Query("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.Limit = value
	}

	if raw := c.Query("skip_pagination"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.SkipPagination = value
	}

	return filter, nil
}
