package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/event"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/repository/postgres"
	"github.com/utafrali/storefront/internal/semantic"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/migrations"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httpclient"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "storefront")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	database.SetSlowQueryLogging(200*time.Millisecond, logger)

	// Optional Redis cache for autosuggest.
	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			logger.Warn("redis unavailable, autosuggest cache disabled",
				slog.String("error", err.Error()),
			)
			redisClient = nil
		} else {
			logger.Info("connected to Redis",
				slog.String("host", cfg.RedisHost),
				slog.Int("port", cfg.RedisPort),
			)
		}
	}

	// Optional Kafka producer for domain events.
	var producer *pkgkafka.Producer
	if cfg.KafkaEnabled() {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessExpiry)

	productRepo := postgres.NewProductRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	searchRepo := postgres.NewSearchRepository(pool)
	historyRepo := postgres.NewSearchHistoryRepository(pool)

	var (
		productEvents service.ProductEventPublisher
		reviewEvents  service.ReviewEventPublisher
		orderEvents   service.OrderEventPublisher
	)
	if producer != nil {
		eventProducer := event.NewProducer(producer, logger)
		productEvents = eventProducer
		reviewEvents = eventProducer
		orderEvents = eventProducer
	}

	productService := service.NewProductService(productRepo, brandRepo, categoryRepo, productEvents, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, reviewEvents, logger)
	userService := service.NewUserService(userRepo, jwtManager, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, orderEvents, logger)
	searchService := service.NewSearchService(searchRepo, historyRepo, redisClient, logger)

	// Optional semantic search proxy.
	var semanticClient *semantic.Client
	if cfg.SemanticSearchURL != "" {
		httpCfg := httpclient.DefaultConfig()
		httpCfg.Timeout = cfg.SemanticSearchTimeout
		cbClient := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpCfg),
			httpclient.DefaultCircuitBreakerConfig("semantic-search"),
			logger,
		)
		semanticClient = semantic.NewClient(cbClient, cfg.SemanticSearchURL, logger)
		logger.Info("semantic search proxy enabled", slog.String("url", cfg.SemanticSearchURL))
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if redisClient != nil {
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	if producer != nil {
		healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
			return producer.Ping(ctx)
		})
	}

	router := handler.NewRouter(handler.RouterDeps{
		Products:   productService,
		Categories: categoryService,
		Reviews:    reviewService,
		Users:      userService,
		Orders:     orderService,
		Search:     searchService,
		Semantic:   semanticClient,
		JWT:        jwtManager,
		Health:     healthHandler,
		Logger:     logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer and Redis client
// 4. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
