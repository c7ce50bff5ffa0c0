package handler

import (
	"errors"
	"net/http"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/service"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService service.QuoteServiceInterface
}

func NewQuoteHandler(quoteService service.QuoteServiceInterface) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// CreateQuote handles POST /api/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req entity.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &req)
	if err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// GetQuote handles GET /api/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondError(c, http.StatusNotFound, msgQuoteNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetAllQuotes handles GET /api/quotes, newest first
func (h *QuoteHandler) GetAllQuotes(c *gin.Context) {
	quotes, err := h.quoteService.GetAllQuotes(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	if quotes == nil {
		quotes = []entity.Quote{}
	}

	c.JSON(http.StatusOK, quotes)
}

// UpdateQuote handles PUT /api/quotes/:id
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var req entity.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// DeleteQuote handles DELETE /api/quotes/:id
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.quoteService.DeleteQuote(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondError(c, http.StatusNotFound, msgQuoteNotFound)
			return
		}
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *QuoteHandler) respondWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		respondError(c, http.StatusNotFound, msgQuoteNotFound)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, http.StatusBadRequest, msgProductNotFound)
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, formatValidationError(err))
	default:
		respondError(c, http.StatusInternalServerError, msgInternalError)
	}
}
