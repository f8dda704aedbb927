package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/papertrade/internal/adapter/http"
	"github.com/iho/papertrade/internal/adapter/http/handler"
	"github.com/iho/papertrade/internal/adapter/http/middleware"
	"github.com/iho/papertrade/internal/adapter/quote"
	postgresRepo "github.com/iho/papertrade/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/papertrade/internal/adapter/repository/redis"
	"github.com/iho/papertrade/internal/infrastructure/config"
	"github.com/iho/papertrade/internal/infrastructure/eventpublisher"
	"github.com/iho/papertrade/internal/infrastructure/kafka"
	"github.com/iho/papertrade/internal/infrastructure/logger"
	"github.com/iho/papertrade/internal/infrastructure/postgres"
	"github.com/iho/papertrade/internal/infrastructure/redis"
	"github.com/iho/papertrade/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	startingCash, err := decimal.NewFromString(cfg.StartingCash)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.StartingCash).Msg("invalid starting cash")
	}

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories and stores
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	tradeRepo := postgresRepo.NewTradeRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	sessionStore := redisRepo.NewSessionStore(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Quote provider
	oracle := quote.NewClient(cfg.QuoteAPIURL, cfg.QuoteAPIToken, cfg.QuoteTimeout)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, outboxRepo, sessionStore, idGen, startingCash, cfg.SessionTTL)
	tradingUC := usecase.NewTradingUseCase(txManager, accountRepo, tradeRepo, outboxRepo, oracle, retrier, idGen)
	portfolioUC := usecase.NewPortfolioUseCase(accountRepo, tradeRepo, oracle)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(accountUC, cfg.SessionTTL)
	tradingHandler := handler.NewTradingHandler(tradingUC)
	portfolioHandler := handler.NewPortfolioHandler(portfolioUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		TradingHandler:   tradingHandler,
		PortfolioHandler: portfolioHandler,
		HealthHandler:    healthHandler,
		SessionResolver:  accountUC,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:           appLogger,
	})

	// Outbox publisher: Kafka when brokers are configured, log otherwise
	var publisher eventpublisher.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")
	} else {
		publisher = eventpublisher.NewLogPublisher(nil)
		log.Info().Msg("no kafka brokers configured, logging events")
	}

	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	outboxPublisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Interval:   cfg.OutboxPoll,
	})
	go func() {
		if err := outboxPublisher.Start(publisherCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
