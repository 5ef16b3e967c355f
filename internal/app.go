package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hotel-users-api/config"
	"hotel-users-api/internal/application/ports"
	"hotel-users-api/internal/application/services"
	"hotel-users-api/internal/infrastructure/db/postgres"
	"hotel-users-api/internal/infrastructure/db/postgres/user"
	"hotel-users-api/internal/infrastructure/hasher"
	"hotel-users-api/internal/infrastructure/jwt"
	"hotel-users-api/internal/infrastructure/metrics"
	"hotel-users-api/internal/infrastructure/mq"
	"hotel-users-api/internal/infrastructure/redis"
	"hotel-users-api/internal/interface/api/rest"
	"hotel-users-api/internal/interface/api/rest/middleware"
	"hotel-users-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	rdb        *goredis.Client
	httpSrv    *http.Server
	router     *gin.Engine
	metrics    *metrics.Metrics
	throttle   ports.LoginThrottle
	publisher  ports.EventPublisher
	mq         ports.RabbitMQ
	mqConsumer ports.AuditConsumer
}

// LoadConfig reads .env when present and validates the environment.
func LoadConfig() (config.Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// NewLogger returns a development logger for SERVICE_ENV=dev, production otherwise.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func NewApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		logger:  logger,
		cfg:     cfg,
		metrics: metrics.New(prometheus.DefaultRegisterer),
	}

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	a.router = gin.New()
	a.router.Use(gin.Recovery())
	a.router.Use(middleware.RequestID())
	a.router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins)))
	a.router.Use(middleware.RequestLogGin(logger, a.metrics))

	a.httpSrv = &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}
	if a.db, err = postgres.New(ctx, logger, dbDsn); err != nil {
		return nil, err
	}

	// login throttle
	a.throttle = redis.NopThrottle{}
	if cfg.Redis.Addr != "" {
		if a.rdb, err = redis.NewClient(ctx, logger, cfg.Redis); err != nil {
			a.Close()
			return nil, err
		}
		a.throttle = redis.NewThrottle(a.rdb, cfg.Auth.MaxLoginFailures, cfg.Auth.LoginWindow)
	} else {
		logger.Warn("REDIS_ADDR not set, login throttling disabled")
	}

	// rabbitMQ
	if !cfg.MQEnabled() {
		logger.Warn("RABBITMQ_HOST not set, lifecycle events are discarded")
		a.publisher = mq.NewDiscard(logger)
		return a, nil
	}
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("rabbitMQ config: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		a.Close()
		return nil, err
	}
	a.mq, a.publisher = rbMQ, rbMQ
	if err = rbMQ.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("init rabbitMQ: %w", err)
	}

	consumer := rmqconsumer.New(cfg.MQ, logger)
	if err = consumer.Connect(rabbitDsn); err != nil {
		a.Close()
		return nil, err
	}
	if err = consumer.Init(); err != nil {
		a.Close()
		return nil, fmt.Errorf("init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = consumer

	return a, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run serves HTTP and runs the event workers until ctx is cancelled or a
// termination signal arrives, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server %s error: %w", a.cfg.App.Name, err)
		}

		return nil
	})

	g.Go(func() error {
		a.publisher.PublisherWorker(ctx)
		return nil
	})

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	userRepo := user.NewRepository(a.db)

	pwHasher := hasher.New(a.cfg.Auth.BcryptCost)
	jwtService := jwt.New(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL)
	authService := services.NewAuthService(userRepo, pwHasher, a.throttle, jwtService, a.metrics.Counter)
	userService := services.NewUserService(userRepo, pwHasher, a.publisher, a.metrics.Counter)

	writeAuth := middleware.OptionalAuth(jwtService)
	if a.cfg.App.AuthRequired {
		writeAuth = middleware.AuthMiddleware(jwtService)
	}

	rest.NewAuthController(a.router, a.logger, userService, authService)
	rest.NewUserController(a.router, userService, a.logger, writeAuth)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Warn("health check: db ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) Logger() *zap.Logger { return a.logger }
