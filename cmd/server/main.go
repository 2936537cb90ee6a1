package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aavkar_pos/internal/backend"
	"aavkar_pos/internal/cache"
	"aavkar_pos/internal/catalog"
	"aavkar_pos/internal/config"
	"aavkar_pos/internal/handlers"
	"aavkar_pos/internal/images"
	"aavkar_pos/internal/leads"
	"aavkar_pos/internal/logger"
	"aavkar_pos/internal/middleware"
	"aavkar_pos/internal/orders"
	"aavkar_pos/internal/routes"
	"aavkar_pos/internal/session"
)

func main() {
	cfg := config.Load()

	appLogger, err := logger.New(cfg.Logger, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLogger.Sync()

	if !cfg.EnvFileLoaded {
		appLogger.Info("no .env file, using process environment")
	}
	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, appLogger)

	// Redis is optional: without it the catalog is not cached and rate
	// limits are off.
	var store *cache.Cache
	if cfg.Redis.Host != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			defer rdb.Close()
			store = cache.New(rdb, appLogger)
			appLogger.Info("connected to redis", zap.String("addr", cfg.Redis.Host))
		}
	}

	var resolver images.Resolver = images.BaseURL{Base: cfg.ImageBaseURL}
	svc := catalog.NewService(api, appLogger).WithCache(store, cfg.Redis.CatalogTTL)
	if cfg.Minio.Endpoint != "" {
		mc, err := images.ConnectMinio(cfg.Minio)
		if err != nil {
			appLogger.Warn("minio unavailable, images served from IMAGE_BASE_URL", zap.Error(err))
		} else {
			objects := images.NewStore(mc, cfg.Minio, resolver, appLogger)
			resolver = objects
			svc.WithUploader(objects)
			appLogger.Info("image store ready", zap.String("bucket", cfg.Minio.Bucket))
		}
	}
	svc.WithImages(resolver)

	if len(cfg.Elastic.Addresses) > 0 {
		es, err := catalog.ConnectElastic(cfg.Elastic)
		if err != nil {
			appLogger.Warn("elasticsearch unavailable, searching in process", zap.Error(err))
		} else {
			svc.WithSearcher(catalog.NewElasticSearcher(es, cfg.Elastic.Index, appLogger))
			appLogger.Info("connected to elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	sessions := session.NewStore(cfg.Session, appLogger)
	go sessions.Run(ctx)

	h := handlers.New(handlers.Deps{
		Catalog:     svc,
		Orders:      orders.NewClient(api, appLogger),
		Gateway:     orders.NewGateway(api, appLogger),
		Leads:       leads.NewClient(api, appLogger),
		Sessions:    sessions,
		Images:      resolver,
		TrackingURL: cfg.TrackingBaseURL,
		Log:         appLogger,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(appLogger), middleware.Recovery(appLogger))
	routes.RegisterRoutes(r, h, routes.Options{
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		Limits:      store,
		Log:         appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("POS server listening", zap.String("port", cfg.Port), zap.String("backend", cfg.Backend.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
