package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"karavan/pkg/logger"
	"karavan/pkg/metrics"
)

// Handlers bundles everything SetupRoutes needs.
type Handlers struct {
	Product      *ProductHandler
	Company      *CompanyHandler
	Category     *CategoryHandler
	Package      *PackageHandler
	Quote        *QuoteHandler
	ExchangeRate *ExchangeRateHandler
}

// SetupRoutes wires all application routes with Gin.
func SetupRoutes(h Handlers) *gin.Engine {
	router := gin.New()

	// Recovery middleware for panics
	router.Use(gin.Recovery())

	// JSON logging middleware for HTTP requests
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware(metrics.ServiceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": metrics.ServiceName,
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", h.Product.ListProducts)
			products.GET("/count", h.Product.CountProducts)
			products.GET("/favorites", h.Product.GetFavorites)
			products.GET("/:id", h.Product.GetProduct)
			products.POST("", h.Product.CreateProduct)
			products.POST("/bulk-import", h.Product.BulkImport)
			products.POST("/:id/toggle-favorite", h.Product.ToggleFavorite)
			products.PUT("/:id", h.Product.UpdateProduct)
			products.DELETE("/:id", h.Product.DeleteProduct)
		}

		companies := api.Group("/companies")
		{
			companies.GET("", h.Company.GetAllCompanies)
			companies.GET("/:id", h.Company.GetCompany)
			companies.POST("", h.Company.CreateCompany)
			companies.PUT("/:id", h.Company.UpdateCompany)
			companies.DELETE("/:id", h.Company.DeleteCompany)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.GetAllCategories)
			categories.GET("/:id", h.Category.GetCategory)
			categories.POST("", h.Category.CreateCategory)
			categories.PUT("/:id", h.Category.UpdateCategory)
			categories.DELETE("/:id", h.Category.DeleteCategory)
		}

		groups := api.Group("/category-groups")
		{
			groups.GET("", h.Category.GetAllGroups)
			groups.GET("/:id", h.Category.GetGroup)
			groups.POST("", h.Category.CreateGroup)
			groups.PUT("/:id", h.Category.UpdateGroup)
			groups.DELETE("/:id", h.Category.DeleteGroup)
		}

		packages := api.Group("/packages")
		{
			packages.GET("", h.Package.GetAllPackages)
			packages.GET("/:id", h.Package.GetPackage)
			packages.POST("", h.Package.CreatePackage)
			packages.PUT("/:id", h.Package.UpdatePackage)
			packages.DELETE("/:id", h.Package.DeletePackage)
		}

		quotes := api.Group("/quotes")
		{
			quotes.GET("", h.Quote.GetAllQuotes)
			quotes.GET("/:id", h.Quote.GetQuote)
			quotes.POST("", h.Quote.CreateQuote)
			quotes.PUT("/:id", h.Quote.UpdateQuote)
			quotes.DELETE("/:id", h.Quote.DeleteQuote)
		}

		rates := api.Group("/exchange-rates")
		{
			rates.GET("", h.ExchangeRate.GetRates)
			rates.POST("/update", h.ExchangeRate.ForceUpdate)
		}
	}

	return router
}
