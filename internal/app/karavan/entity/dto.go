package entity

import (
	"time"

	"github.com/google/uuid"
)

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	ContactName string `json:"contact_name" validate:"omitempty,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

type CreateCategoryRequest struct {
	Name    string     `json:"name" validate:"required,min=2,max=100"`
	GroupID *uuid.UUID `json:"group_id"`
}

type UpdateCategoryRequest struct {
	Name    *string    `json:"name" validate:"omitempty,min=2,max=100"`
	GroupID *uuid.UUID `json:"group_id"`
}

type CreateCategoryGroupRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

type UpdateCategoryGroupRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

type CreateProductRequest struct {
	Name            string     `json:"name" validate:"required,min=2,max=300"`
	Brand           string     `json:"brand" validate:"omitempty,max=100"`
	Description     string     `json:"description" validate:"omitempty,max=2000"`
	ImageURL        string     `json:"image_url" validate:"omitempty,max=1000"`
	CompanyID       uuid.UUID  `json:"company_id" validate:"required"`
	CategoryID      *uuid.UUID `json:"category_id"`
	ListPrice       float64    `json:"list_price" validate:"required,gt=0"`
	Currency        string     `json:"currency" validate:"required,oneof=TRY USD EUR GBP"`
	DiscountedPrice *float64   `json:"discounted_price" validate:"omitempty,gt=0"`
}

// UpdateProductRequest is a partial update: nil fields are left untouched.
type UpdateProductRequest struct {
	Name            *string    `json:"name" validate:"omitempty,min=2,max=300"`
	Brand           *string    `json:"brand" validate:"omitempty,max=100"`
	Description     *string    `json:"description" validate:"omitempty,max=2000"`
	ImageURL        *string    `json:"image_url" validate:"omitempty,max=1000"`
	CategoryID      *uuid.UUID `json:"category_id"`
	ListPrice       *float64   `json:"list_price" validate:"omitempty,gt=0"`
	Currency        *string    `json:"currency" validate:"omitempty,oneof=TRY USD EUR GBP"`
	DiscountedPrice *float64   `json:"discounted_price" validate:"omitempty,gt=0"`
	IsFavorite      *bool      `json:"is_favorite"`
}

type BulkImportRequest struct {
	Products []CreateProductRequest `json:"products" validate:"required,min=1,dive"`
}

type BulkImportError struct {
	Index  int    `json:"index"`
	Detail string `json:"detail"`
}

type BulkImportResult struct {
	Created int               `json:"created"`
	Errors  []BulkImportError `json:"errors"`
}

type PackageProductRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type PackageSupplyRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=300"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
	Currency  string  `json:"currency" validate:"required,oneof=TRY USD EUR GBP"`
}

type CreatePackageRequest struct {
	Name        string                  `json:"name" validate:"required,min=2,max=300"`
	Description string                  `json:"description" validate:"omitempty,max=2000"`
	Products    []PackageProductRequest `json:"products" validate:"dive"`
	Supplies    []PackageSupplyRequest  `json:"supplies" validate:"dive"`
}

type QuoteItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateQuoteRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerEmail string             `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string             `json:"customer_phone" validate:"omitempty,max=30"`
	Notes         string             `json:"notes" validate:"omitempty,max=2000"`
	Items         []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ExchangeRatesProviderResponse is the raw provider payload. Values under
// "data" are units of foreign currency per 1 TRY and get inverted on ingest.
type ExchangeRatesProviderResponse struct {
	Data map[string]float64 `json:"data"`
}

// RatesResponse is the envelope served by the exchange-rate endpoints
type RatesResponse struct {
	Success   bool               `json:"success"`
	Rates     map[string]float64 `json:"rates"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// ErrorResponse is the error envelope; Detail carries a Turkish message
type ErrorResponse struct {
	Detail string `json:"detail"`
}
