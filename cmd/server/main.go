package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"statement-converter-service/internal/adapters/primary/http/handlers"
	"statement-converter-service/internal/adapters/primary/http/middleware"
	"statement-converter-service/internal/adapters/secondary/banks"
	"statement-converter-service/internal/adapters/secondary/camt053"
	"statement-converter-service/internal/adapters/secondary/mt940"
	"statement-converter-service/internal/adapters/secondary/postgres"
	"statement-converter-service/internal/config"
	"statement-converter-service/internal/core/domain"
	output "statement-converter-service/internal/core/ports/output"
	"statement-converter-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Conversion history store (optional - based on config)
	var pool *pgxpool.Pool
	var jobRepo output.ConversionJobRepository
	if cfg.Database.Enabled {
		pool = connectDatabase(cfg)
		if pool != nil {
			defer pool.Close()
			jobRepo = postgres.NewConversionJobRepository(pool)
		}
	} else {
		log.Info("conversion history disabled")
	}

	// Secondary adapters
	registry := banks.NewRegistry()
	formatters := map[domain.OutputFormat]output.StatementFormatter{
		domain.FormatMT940:   mt940.NewFormatter(),
		domain.FormatCAMT053: camt053.NewFormatter(),
	}

	// Core service
	converterSvc := services.NewConverterService(registry, formatters, banks.NewTemplateGenerator(), jobRepo)

	// Primary adapter (HTTP handlers)
	h := handlers.New(converterSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/converter")
	h.RegisterRoutes(api)

	// Liveness probe, path kept stable for container healthchecks
	router.GET("/_stcore/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Readiness check with DB ping when the history store is enabled
	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

// connectDatabase returns nil when the database cannot be reached, so the
// service still converts statements without recording history.
func connectDatabase(cfg *config.Config) *pgxpool.Pool {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Warnf("database config invalid (continuing without conversion history): %v", err)
		return nil
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Warnf("database pool init failed (continuing without conversion history): %v", err)
		return nil
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Warnf("database unreachable (continuing without conversion history): %v", err)
		pool.Close()
		return nil
	}

	log.Info("database connection established")
	return pool
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
