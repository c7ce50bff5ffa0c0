package handler

import (
	"errors"
	"net/http"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	companyService service.CompanyServiceInterface
}

func NewCompanyHandler(companyService service.CompanyServiceInterface) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CreateCompany handles POST /api/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req entity.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			respondError(c, http.StatusBadRequest, formatValidationError(err))
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompany handles GET /api/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidCompanyID)
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			respondError(c, http.StatusNotFound, msgCompanyNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, company)
}

// GetAllCompanies handles GET /api/companies
func (h *CompanyHandler) GetAllCompanies(c *gin.Context) {
	companies, err := h.companyService.GetAllCompanies(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	if companies == nil {
		companies = []entity.Company{}
	}

	c.JSON(http.StatusOK, companies)
}

// UpdateCompany handles PUT /api/companies/:id
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidCompanyID)
		return
	}

	var req entity.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			respondError(c, http.StatusNotFound, msgCompanyNotFound)
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, formatValidationError(err))
		default:
			respondError(c, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /api/companies/:id.
// All products of the company are removed with it.
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidCompanyID)
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			respondError(c, http.StatusNotFound, msgCompanyNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.Status(http.StatusNoContent)
}
