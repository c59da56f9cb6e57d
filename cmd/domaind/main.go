// domaind is the custom domain lifecycle API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kanakkholwal/custom-domain-sdk/internal/dnslookup"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/handler"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/repository"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/service"
	"github.com/kanakkholwal/custom-domain-sdk/internal/provisioner"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	if err := run(logger); err != nil {
		logger.Fatal("domaind exited with error", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	// ── Configuration ────────────────────────────────────────────────────────
	viper.SetConfigName("domaind")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	viper.SetDefault("server.rate_limit_rps", 20)
	viper.SetDefault("server.rate_limit_burst", 40)
	viper.SetDefault("database.url", "")
	viper.SetDefault("edge.cname_target", "")
	viper.SetDefault("cloudflare.api_base", "")
	viper.SetDefault("cloudflare.zone_id", "")
	viper.SetDefault("cloudflare.api_token", "")
	viper.SetDefault("cloudflare.timeout", "10s")

	if err := viper.ReadInConfig(); err != nil {
		var cfgNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgNotFound) {
			return fmt.Errorf("read config: %w", err)
		}
		logger.Warn("no config file found, using defaults and env vars")
	}

	cnameTarget := viper.GetString("edge.cname_target")
	if cnameTarget == "" {
		return fmt.Errorf("edge.cname_target must be configured")
	}

	// ── Store ────────────────────────────────────────────────────────────────
	var store repository.Store
	if dbURL := viper.GetString("database.url"); dbURL != "" {
		db, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		defer db.Close()

		if err := db.Ping(context.Background()); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
		logger.Info("connected to postgres")
		store = repository.NewPostgresStore(db)
	} else {
		logger.Warn("no database.url configured, using in-memory store")
		store = repository.NewMemoryStore()
	}

	// ── Collaborators ────────────────────────────────────────────────────────
	resolver := dnslookup.NewNetResolver()
	adapter := provisioner.NewCloudflareAdapter(
		viper.GetString("cloudflare.api_base"),
		viper.GetString("cloudflare.zone_id"),
		viper.GetString("cloudflare.api_token"),
		viper.GetDuration("cloudflare.timeout"),
	)

	svc, err := service.NewDomainService(store, resolver, adapter, cnameTarget, logger)
	if err != nil {
		return err
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.PrometheusMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: viper.GetStringSlice("server.cors_origins"),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))
	router.Use(handler.RateLimiter(
		viper.GetInt("server.rate_limit_rps"),
		viper.GetInt("server.rate_limit_burst"),
	))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", handler.MetricsHandler())

	api := router.Group("/api/v1")
	handler.NewDomainHandler(svc, logger).Register(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", viper.GetInt("server.port")),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("domaind listening",
			zap.String("addr", srv.Addr),
			zap.String("cname_target", cnameTarget),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
