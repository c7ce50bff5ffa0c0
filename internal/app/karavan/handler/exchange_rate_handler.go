package handler

import (
	"net/http"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/service"

	"github.com/gin-gonic/gin"
)

type ExchangeRateHandler struct {
	rateService service.ExchangeRateServiceInterface
}

func NewExchangeRateHandler(rateService service.ExchangeRateServiceInterface) *ExchangeRateHandler {
	return &ExchangeRateHandler{rateService: rateService}
}

// GetRates handles GET /api/exchange-rates.
// Always answers 200 with a usable rate table thanks to the fallback chain.
func (h *ExchangeRateHandler) GetRates(c *gin.Context) {
	snapshot, err := h.rateService.GetRates(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	c.JSON(http.StatusOK, entity.RatesResponse{
		Success:   true,
		Rates:     snapshot.Rates,
		UpdatedAt: snapshot.UpdatedAt,
	})
}

// ForceUpdate handles POST /api/exchange-rates/update.
// Provider failures are surfaced here instead of masked by fallbacks.
func (h *ExchangeRateHandler) ForceUpdate(c *gin.Context) {
	snapshot, err := h.rateService.ForceUpdate(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, msgProviderUnavailable)
		return
	}

	c.JSON(http.StatusOK, entity.RatesResponse{
		Success:   true,
		Rates:     snapshot.Rates,
		UpdatedAt: snapshot.UpdatedAt,
	})
}
