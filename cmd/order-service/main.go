// @title        Order webhook service
// @version      1.0
// @description  Receives platform order webhooks, stores orders and serves the admin list and CSV export.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/MikeMC777/ordenes-webhooks/docs"
	"github.com/MikeMC777/ordenes-webhooks/internal/config"
	"github.com/MikeMC777/ordenes-webhooks/internal/httpx"
	"github.com/MikeMC777/ordenes-webhooks/internal/logger"
	"github.com/MikeMC777/ordenes-webhooks/internal/metrics"
	ord "github.com/MikeMC777/ordenes-webhooks/internal/order"
	"github.com/MikeMC777/ordenes-webhooks/internal/webhook"
)

type deps struct {
	repo     ord.Repository
	log      *zap.Logger
	metrics  *metrics.Registry
	secret   string
	adminURL string
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(d.log), httpx.Recovery(d.log))

	ctl := webhook.NewController(d.repo, d.log.Named("webhook"))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(d.metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.POST("/webhooks/orders", receiveWebhookHandler(ctl, d.secret, d.metrics))
	r.GET("/orders", listOrdersHandler(d.repo, d.adminURL))
	r.GET("/orders/export", exportOrdersHandler(d.repo, d.metrics))
	return r
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.ForEnv(cfg.Env, cfg.LogLevel, cfg.LogFormat))
	defer func() { _ = log.Sync() }()

	log.Info("config",
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.OrderSvcAddr),
		zap.Duration("db_timeout", cfg.DBTimeout),
		zap.Bool("webhook_signature_check", cfg.WebhookSecret != ""),
	)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres pool", zap.Error(err))
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal("postgres ping", zap.Error(err))
	}
	if err := ord.EnsureSchema(ctx, pool); err != nil {
		log.Fatal("schema", zap.Error(err))
	}

	srv := &http.Server{
		Addr: cfg.OrderSvcAddr,
		Handler: newRouter(deps{
			repo:     ord.NewPGRepo(pool, cfg.DBTimeout),
			log:      log,
			metrics:  metrics.NewRegistry(),
			secret:   cfg.WebhookSecret,
			adminURL: cfg.AdminAppURL,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("order-service listening", zap.String("addr", cfg.OrderSvcAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("order-service stopped")
}
