package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/storefrontdev/storefront/internal/config"
	"github.com/storefrontdev/storefront/internal/httpserver"
	"github.com/storefrontdev/storefront/internal/logging"
	"github.com/storefrontdev/storefront/internal/models"
	"github.com/storefrontdev/storefront/internal/mykafka"
	"github.com/storefrontdev/storefront/internal/payments"
	"github.com/storefrontdev/storefront/internal/repo"
	"github.com/storefrontdev/storefront/internal/service"
	"github.com/storefrontdev/storefront/internal/viacep"
	"github.com/storefrontdev/storefront/pkg/db"
	loggingmw "github.com/storefrontdev/storefront/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.StripeSecretKey, "STRIPE_SECRET_KEY")
	config.MustNonEmpty(cfg.StripeWebhookSecret, "STRIPE_WEBHOOK_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)

	gateway := payments.NewStripeGateway(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
	)

	r := repo.New(gdb)
	cartSvc := &service.CartService{Repo: r, Events: producer}
	addressSvc := &service.AddressService{Repo: r, Cart: cartSvc}
	checkoutSvc := &service.CheckoutService{
		Repo:              r,
		Gateway:           gateway,
		Events:            producer,
		ReusePendingOrder: cfg.ReusePendingOrder,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:     &httpserver.CartHTTP{Svc: cartSvc},
		AddressHandler:  &httpserver.AddressHTTP{Svc: addressSvc},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		CatalogHandler:  &httpserver.CatalogHTTP{Repo: r},
		WebhookHandler:  &httpserver.WebhookHTTP{Svc: checkoutSvc, Verifier: gateway},
		CEPHandler:      &httpserver.CEPHTTP{Client: viacep.NewClient(cfg.ViaCEPBaseURL)},
		JWTSecret:       cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
