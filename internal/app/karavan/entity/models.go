package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanonicalCurrency is the currency every stored price is ultimately expressed in.
const CanonicalCurrency = "TRY"

// SupportedCurrencies lists every currency a product price may be listed in.
// A provider snapshot must carry a rate for each of them.
var SupportedCurrencies = []string{"TRY", "USD", "EUR", "GBP"}

// DefaultRates is the last-resort rate table used when the provider is down
// and no persisted snapshot exists yet. Values are TRY per 1 unit.
var DefaultRates = map[string]float64{
	"TRY": 1.0,
	"USD": 41.5,
	"EUR": 48.7,
	"GBP": 56.2,
}

// ExchangeRateSnapshot is one fetched rate table plus its fetch timestamp.
// Rates[c] is the amount of TRY one unit of currency c buys, so
// priceTRY = price * Rates[currency]. Rates["TRY"] is always 1.
type ExchangeRateSnapshot struct {
	Rates     map[string]float64 `json:"rates"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// DefaultRateSnapshot builds a snapshot from the hardcoded fallback rates.
func DefaultRateSnapshot() *ExchangeRateSnapshot {
	rates := make(map[string]float64, len(DefaultRates))
	for currency, rate := range DefaultRates {
		rates[currency] = rate
	}
	return &ExchangeRateSnapshot{
		Rates:     rates,
		UpdatedAt: time.Now(),
	}
}

// Company represents a supplier whose products are compared
type Company struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryGroup bundles categories for grouped listings in the UI
type CategoryGroup struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Category represents a product category, optionally inside a group
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Product represents a priced catalog item.
// ListPriceTRY and DiscountedPriceTRY are derived at write time from the
// exchange-rate snapshot in effect at that moment; they are never NaN and
// never missing while the source price is present.
type Product struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name               string     `json:"name" gorm:"not null"`
	NameNormalized     string     `json:"-" gorm:"column:name_normalized;index"`
	SearchText         string     `json:"-" gorm:"column:search_text"`
	Brand              string     `json:"brand"`
	Description        string     `json:"description"`
	ImageURL           string     `json:"image_url" gorm:"column:image_url"`
	CompanyID          uuid.UUID  `json:"company_id" gorm:"type:uuid;not null;index"`
	CategoryID         *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	ListPrice          float64    `json:"list_price" gorm:"not null"`
	Currency           string     `json:"currency" gorm:"not null"`
	DiscountedPrice    *float64   `json:"discounted_price,omitempty"`
	ListPriceTRY       float64    `json:"list_price_try" gorm:"column:list_price_try;not null"`
	DiscountedPriceTRY *float64   `json:"discounted_price_try,omitempty" gorm:"column:discounted_price_try"`
	IsFavorite         bool       `json:"is_favorite" gorm:"not null;default:false"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ProductFilter narrows and paginates product listings.
// Page/Limit are ignored when SkipPagination is set.
type ProductFilter struct {
	Search         string
	CompanyID      *uuid.UUID
	CategoryID     *uuid.UUID
	OnlyFavorites  bool
	Page           int
	Limit          int
	SkipPagination bool
}

// ProductEvent represents a product change event for Kafka
type ProductEvent struct {
	EventType    string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	ListPriceTRY float64   `json:"list_price_try"`
	Currency     string    `json:"currency"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event types published to the product_events topic
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
)

// PackageProduct is a product line inside a package
type PackageProduct struct {
	ProductID uuid.UUID `json:"product_id" bson:"product_id"`
	Quantity  int       `json:"quantity" bson:"quantity"`
}

// PackageSupply is a free-form supply line (cabling, mounting material etc.)
// that belongs to a package but is not a catalog product.
type PackageSupply struct {
	Name         string  `json:"name" bson:"name"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	UnitPrice    float64 `json:"unit_price" bson:"unit_price"`
	Currency     string  `json:"currency" bson:"currency"`
	UnitPriceTRY float64 `json:"unit_price_try" bson:"unit_price_try"`
}

// Package bundles products and supplies into a sellable kit
type Package struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Products    []PackageProduct   `json:"products" bson:"products"`
	Supplies    []PackageSupply    `json:"supplies" bson:"supplies"`
	TotalTRY    float64            `json:"total_try" bson:"total_try"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// QuoteItem is a quote line with the product data frozen at quote time
type QuoteItem struct {
	ProductID    uuid.UUID `json:"product_id" bson:"product_id"`
	ProductName  string    `json:"product_name" bson:"product_name"`
	Quantity     int       `json:"quantity" bson:"quantity"`
	UnitPriceTRY float64   `json:"unit_price_try" bson:"unit_price_try"`
	LineTotalTRY float64   `json:"line_total_try" bson:"line_total_try"`
}

// Quote is a customer offer built from catalog products
type Quote struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerName  string             `json:"customer_name" bson:"customer_name"`
	CustomerEmail string             `json:"customer_email" bson:"customer_email"`
	CustomerPhone string             `json:"customer_phone" bson:"customer_phone"`
	Notes         string             `json:"notes" bson:"notes"`
	Items         []QuoteItem        `json:"items" bson:"items"`
	TotalTRY      float64            `json:"total_try" bson:"total_try"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
