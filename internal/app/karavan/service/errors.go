package service

import "errors"

// Business errors mapped to HTTP responses in the handler layer.
var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryGroupNotFound = errors.New("category group not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrPackageNotFound       = errors.New("package not found")
	ErrQuoteNotFound         = errors.New("quote not found")

	// ErrUnknownCurrency means a conversion was requested for a currency
	// absent from the current rate table. It fails the write that needed
	// it; it is never silently defaulted.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrConversion means the currency arithmetic would produce a NaN,
	// infinite or non-positive canonical price. Such a value must never
	// reach storage.
	ErrConversion = errors.New("price conversion failed")

	// ErrProviderUnavailable covers unreachable provider, timeouts and
	// non-2xx responses.
	ErrProviderUnavailable = errors.New("exchange rate provider unavailable")

	// ErrMalformedProviderResponse covers payloads missing required
	// currencies or carrying non-positive values. Treated like
	// ErrProviderUnavailable by the fallback chain.
	ErrMalformedProviderResponse = errors.New("malformed exchange rate provider response")

	ErrInvalidPagination = errors.New("invalid pagination parameters")
	ErrInvalidDiscount   = errors.New("discounted price exceeds list price")
)
