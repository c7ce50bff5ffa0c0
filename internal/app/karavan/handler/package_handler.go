package handler

import (
	"errors"
	"net/http"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/service"

	"github.com/gin-gonic/gin"
)

type PackageHandler struct {
	packageService service.PackageServiceInterface
}

func NewPackageHandler(packageService service.PackageServiceInterface) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// CreatePackage handles POST /api/packages
func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req entity.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	pkg, err := h.packageService.CreatePackage(c.Request.Context(), &req)
	if err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// GetPackage handles GET /api/packages/:id
func (h *PackageHandler) GetPackage(c *gin.Context) {
	pkg, err := h.packageService.GetPackage(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			respondError(c, http.StatusNotFound, msgPackageNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// GetAllPackages handles GET /api/packages
func (h *PackageHandler) GetAllPackages(c *gin.Context) {
	packages, err := h.packageService.GetAllPackages(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	if packages == nil {
		packages = []entity.Package{}
	}

	c.JSON(http.StatusOK, packages)
}

// UpdatePackage handles PUT /api/packages/:id
func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	var req entity.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	pkg, err := h.packageService.UpdatePackage(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// DeletePackage handles DELETE /api/packages/:id
func (h *PackageHandler) DeletePackage(c *gin.Context) {
	if err := h.packageService.DeletePackage(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			respondError(c, http.StatusNotFound, msgPackageNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PackageHandler) respondWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		respondError(c, http.StatusNotFound, msgPackageNotFound)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusBadRequest, msgProductNotFound)
	case errors.Is(err, service.ErrUnknownCurrency):
		respondError(c, http.StatusBadRequest, msgUnknownCurrency)
	case errors.Is(err, service.ErrConversion):
		respondError(c, http.StatusBadRequest, msgConversionFailed)
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, formatValidationError(err))
	default:
		respondError(c, http.StatusInternalServerError, msgInternalError)
	}
}
