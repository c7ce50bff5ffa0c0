package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"karavan/internal/app/karavan/config"
	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/handler"
	"karavan/internal/app/karavan/processor"
	"karavan/internal/app/karavan/repository"
	"karavan/internal/app/karavan/service"
	"karavan/internal/app/karavan/util"
	"karavan/pkg/logger"
	"karavan/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(metrics.ServiceName, "info")
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(metrics.ServiceName, cfg.LogLevel)

	ctx := context.Background()

	// PostgreSQL via GORM for companies and products
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres via gorm")
	}

	if err := gormDB.AutoMigrate(&entity.Company{}, &entity.Product{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// PostgreSQL connection pool for categories and the rate snapshot
	pool, err := connectPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres via pgxpool")
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	logger.Info().Msg("connected to PostgreSQL")

	// MongoDB for packages and quotes
	mongoCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect mongodb")
		}
	}()
	mongoDB := mongoClient.Database(cfg.Mongo.DBName)
	logger.Info().Msg("connected to MongoDB")

	// Redis for the shared rate snapshot and the category list cache
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	logger.Info().Msg("connected to Redis")

	// Kafka producer for product change events
	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("kafka producer initialized")

	// Repositories
	productRepo := repository.NewProductRepository(gormDB)
	companyRepo := repository.NewCompanyRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(pool)
	snapshotRepo := repository.NewRateSnapshotRepository(pool)
	packageRepo := repository.NewPackageRepository(mongoDB)
	quoteRepo := repository.NewQuoteRepository(mongoDB)

	// Services
	rateClient := service.NewExchangeRateAPIClient(cfg.Rates.APIURL, cfg.Rates.TimeoutSec)
	rateService := service.NewExchangeRateService(
		snapshotRepo,
		rateClient,
		redisClient,
		time.Duration(cfg.Rates.TTLMinutes)*time.Minute,
	)
	productService := service.NewProductService(productRepo, companyRepo, rateService, kafkaProducer)
	companyService := service.NewCompanyService(companyRepo, productRepo)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, redisClient)
	packageService := service.NewPackageService(packageRepo, productRepo, rateService)
	quoteService := service.NewQuoteService(quoteRepo, productRepo)

	// Periodic exchange-rate refresh
	scheduler := processor.NewCronScheduler(rateService)
	if err := scheduler.Start(ctx, cfg.Rates.CronSchedule); err != nil {
		logger.Fatal().Err(err).Msg("failed to start cron scheduler")
	}
	defer scheduler.Stop()

	router := handler.SetupRoutes(handler.Handlers{
		Product:      handler.NewProductHandler(productService),
		Company:      handler.NewCompanyHandler(companyService),
		Category:     handler.NewCategoryHandler(categoryService),
		Package:      handler.NewPackageHandler(packageService),
		Quote:        handler.NewQuoteHandler(quoteService),
		ExchangeRate: handler.NewExchangeRateHandler(rateService),
	})

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("stopped gracefully")
}

// connectPool opens a pgx connection pool with production pool settings.
func connectPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
