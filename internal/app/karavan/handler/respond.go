package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"karavan/internal/app/karavan/entity"
)

// User-facing error messages. The API speaks Turkish to its clients.
const (
	msgInvalidBody         = "Geçersiz istek gövdesi"
	msgInvalidProductID    = "Geçersiz ürün kimliği"
	msgInvalidCompanyID    = "Geçersiz firma kimliği"
	msgInvalidCategoryID   = "Geçersiz kategori kimliği"
	msgInvalidGroupID      = "Geçersiz kategori grubu kimliği"
	msgInvalidPackageID    = "Geçersiz paket kimliği"
	msgInvalidQuoteID      = "Geçersiz teklif kimliği"
	msgProductNotFound     = "Ürün bulunamadı"
	msgCompanyNotFound     = "Firma bulunamadı"
	msgCategoryNotFound    = "Kategori bulunamadı"
	msgGroupNotFound       = "Kategori grubu bulunamadı"
	msgPackageNotFound     = "Paket bulunamadı"
	msgQuoteNotFound       = "Teklif bulunamadı"
	msgInvalidPagination   = "Geçersiz sayfalama parametresi"
	msgInvalidDiscount     = "İndirimli fiyat liste fiyatından büyük olamaz"
	msgUnknownCurrency     = "Bilinmeyen para birimi"
	msgConversionFailed    = "Fiyat TL'ye dönüştürülemedi"
	msgProviderUnavailable = "Döviz kuru sağlayıcısına ulaşılamadı"
	msgInternalError       = "Sunucu hatası"
)

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, entity.ErrorResponse{Detail: detail})
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return "Doğrulama hatası: " + fieldError.Field() + " (" + fieldError.Tag() + ")"
		}
	}
	return "Doğrulama hatası"
}
