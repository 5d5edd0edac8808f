package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kmalyshev/webshop/internal/config"
	"github.com/kmalyshev/webshop/internal/events"
	"github.com/kmalyshev/webshop/internal/httpserver"
	"github.com/kmalyshev/webshop/internal/repo"
	"github.com/kmalyshev/webshop/internal/search"
	"github.com/kmalyshev/webshop/internal/service"
	pkgdb "github.com/kmalyshev/webshop/pkg/db"
	"github.com/kmalyshev/webshop/pkg/logging"
	loggingmw "github.com/kmalyshev/webshop/pkg/middleware/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := pkgdb.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.AppName)
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaAddress)

	var searchSvc *search.Service
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searchSvc = &search.Service{ES: es, Index: search.ProductIndex}
	}

	r := &repo.GormRepo{DB: db}
	productSvc := &service.ProductService{Repo: r}
	cartSvc := &service.CartService{Repo: r}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Svc: productSvc, Producer: producer, Search: searchSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc, Producer: producer},
		AppName:        cfg.AppName,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.AppName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = producer.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("server stopped")
}
