package handler

import (
	"errors"
	"net/http"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
}

func NewCategoryHandler(categoryService service.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryGroupNotFound):
			respondError(c, http.StatusBadRequest, msgGroupNotFound)
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, formatValidationError(err))
		default:
			respondError(c, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategory handles GET /api/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidCategoryID)
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, msgCategoryNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, category)
}

// GetAllCategories handles GET /api/categories (served from cache when warm)
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	if categories == nil {
		categories = []entity.Category{}
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidCategoryID)
		return
	}

	var req entity.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, msgCategoryNotFound)
		case errors.Is(err, service.ErrCategoryGroupNotFound):
			respondError(c, http.StatusBadRequest, msgGroupNotFound)
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, formatValidationError(err))
		default:
			respondError(c, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:id.
// Products keep existing with their category cleared.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidCategoryID)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, msgCategoryNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateGroup handles POST /api/category-groups
func (h *CategoryHandler) CreateGroup(c *gin.Context) {
	var req entity.CreateCategoryGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	group, err := h.categoryService.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, formatValidationError(err))
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetGroup handles GET /api/category-groups/:id
func (h *CategoryHandler) GetGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidGroupID)
		return
	}

	group, err := h.categoryService.GetGroup(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryGroupNotFound) {
			respondError(c, http.StatusNotFound, msgGroupNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetAllGroups handles GET /api/category-groups
func (h *CategoryHandler) GetAllGroups(c *gin.Context) {
	groups, err := h.categoryService.GetAllGroups(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	if groups == nil {
		groups = []entity.CategoryGroup{}
	}

	c.JSON(http.StatusOK, groups)
}

// UpdateGroup handles PUT /api/category-groups/:id
func (h *CategoryHandler) UpdateGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidGroupID)
		return
	}

	var req entity.UpdateCategoryGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	group, err := h.categoryService.UpdateGroup(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryGroupNotFound):
			respondError(c, http.StatusNotFound, msgGroupNotFound)
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, formatValidationError(err))
		default:
			respondError(c, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, group)
}

// DeleteGroup handles DELETE /api/category-groups/:id.
// Member categories survive ungrouped.
func (h *CategoryHandler) DeleteGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidGroupID)
		return
	}

	if err := h.categoryService.DeleteGroup(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryGroupNotFound) {
			respondError(c, http.StatusNotFound, msgGroupNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.Status(http.StatusNoContent)
}
