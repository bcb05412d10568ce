// @title Expert Test API
// @version 1.0
// @description Competence assessment: tests, scoring, result history and the admin panel.
// @host localhost:3000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "expert-test/cmd/api/docs"
	"expert-test/internal/adapter"
	"expert-test/internal/cache"
	"expert-test/internal/config"
	"expert-test/internal/database"
	"expert-test/internal/domain"
	"expert-test/internal/handler"
	"expert-test/internal/logger"
	"expert-test/internal/metrics"
	"expert-test/internal/middleware"
	"expert-test/internal/rbac"
	"expert-test/internal/repository"
	"expert-test/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

// run wires and serves the API and returns the process exit code once the
// server has stopped and every deferred close has run.
func run() int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXPostgresDB(cfg.DB, cfg.GetDSN())
	if err != nil {
		appLogger.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer db.Close()

	// Redis is optional; without it the catalog is read from the database every time.
	var catalogCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, question cache disabled", zap.Error(err))
			catalogCache = adapter.NewNoopCache()
		} else {
			defer redisClient.Close()
			catalogCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	} else {
		catalogCache = adapter.NewNoopCache()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Initialize repositories
	questionRepository := repository.NewSQLXQuestionRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)
	statsRepository := repository.NewSQLXStatsRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	authService, err := service.NewAuthService(userRepository, cfg.JWT)
	if err != nil {
		appLogger.Error("Failed to create AuthService", zap.Error(err))
		return 1
	}
	userService := service.NewUserService(userRepository, statsRepository)
	questionService := service.NewQuestionService(questionRepository, statsRepository, txManager, catalogCache, cfg.CacheTTLs.Questions, appMetrics)
	resultService := service.NewResultService(questionRepository, resultRepository, txManager, appMetrics, cfg.Location())
	profileService := service.NewProfileService(userRepository, resultRepository, cfg.Location())

	app := newRouter(routerDeps{
		cfg: cfg,
		handlers: handlers{
			auth:    handler.NewAuthHandler(authService, userService),
			user:    handler.NewUserHandler(userService),
			test:    handler.NewTestHandler(questionService),
			result:  handler.NewResultHandler(resultService),
			profile: handler.NewProfileHandler(profileService),
			admin:   handler.NewAdminHandler(questionService),
			system:  handler.NewSystemHandler(userService, cfg.App.Name),
		},
		validator:   authService,
		checker:     rbac.NewChecker(nil),
		authLimiter: middleware.NewRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		metrics:     appMetrics,
		gatherer:    registry,
	})

	appLogger.Info("Starting server",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.App.Env),
		zap.String("timezone", cfg.Location().String()),
	)
	if err := serve(ctx, app, ":"+strconv.Itoa(cfg.Server.Port), 10*time.Second); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return 1
	}
	appLogger.Info("Server exited gracefully")
	return 0
}

// serve runs app until ctx is done or Listen fails, then shuts it down
// within timeout.
func serve(ctx context.Context, app *fiber.App, addr string, timeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Get().Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
