package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/dharmasatrya/searchconfirm/internal/cache"
	"github.com/dharmasatrya/searchconfirm/internal/clock"
	"github.com/dharmasatrya/searchconfirm/internal/handler"
	"github.com/dharmasatrya/searchconfirm/internal/logger"
	"github.com/dharmasatrya/searchconfirm/internal/ratelimit"
	"github.com/dharmasatrya/searchconfirm/internal/search"
	"github.com/dharmasatrya/searchconfirm/internal/store"
	"github.com/dharmasatrya/searchconfirm/internal/tracing"
)

const (
	serviceName     = "searchconfirm"
	shutdownTimeout = 10 * time.Second
)

type Config struct {
	Port           string
	LogLevel       string
	CacheEnabled   bool
	RedisHost      string
	RedisPort      string
	RedisTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	FixedToday     string
	TodayLocation  string
	TraceExporter  string
	OTLPEndpoint   string
}

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, loadConfig()); err != nil {
		log.Printf("server exited: %v", err)
		os.Exit(1)
	}
}

// run wires the server from cfg and serves until ctx is cancelled.
func run(ctx context.Context, cfg Config) error {
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer zl.Sync()

	tp, err := tracing.Init(ctx, tracing.Config{
		ServiceName: serviceName,
		Exporter:    cfg.TraceExporter,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			zl.Warn("Failed to flush traces", zap.Error(err))
		}
	}()
	if tp != nil {
		zl.Info("Tracing enabled", zap.String("exporter", cfg.TraceExporter))
	}

	clk, err := clock.FromConfig(cfg.FixedToday, cfg.TodayLocation)
	if err != nil {
		return fmt.Errorf("invalid clock configuration: %w", err)
	}
	if cfg.FixedToday != "" {
		zl.Info("Using fixed current date", zap.String("today", cfg.FixedToday))
	}

	var verdictCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		verdictCache = redisCache
		zl.Info("Redis verdict cache enabled",
			zap.String("addr", cfg.RedisHost+":"+cfg.RedisPort),
			zap.Duration("ttl", cfg.RedisTTL),
		)
	} else {
		verdictCache = cache.NewNoOpCache()
		zl.Info("Cache disabled")
	}
	defer verdictCache.Close()

	limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	})

	validator := search.NewValidator(clk, zl.Named("validator"))
	searchHandler := handler.NewSearchHandler(validator, verdictCache, store.NewMemory(), zl.Named("handler"))

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	handler.RegisterRoutes(e, searchHandler, limiter)

	zl.Info("Starting search confirmation server", zap.String("port", cfg.Port))

	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	zl.Info("Server stopped")
	return nil
}

func loadConfig() Config {
	redisDefaults := cache.DefaultRedisConfig()
	limitDefaults := ratelimit.DefaultConfig()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CacheEnabled:   getEnvBool("CACHE_ENABLED", false),
		RedisHost:      getEnv("REDIS_HOST", redisDefaults.Host),
		RedisPort:      getEnv("REDIS_PORT", redisDefaults.Port),
		RedisTTL:       getEnvDuration("REDIS_TTL", redisDefaults.TTL),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", limitDefaults.RequestsPerSecond),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", limitDefaults.BurstSize),
		FixedToday:     getEnv("FIXED_TODAY", ""),
		TodayLocation:  getEnv("TODAY_LOCATION", "Local"),
		TraceExporter:  getEnv("TRACE_EXPORTER", tracing.ExporterNone),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
