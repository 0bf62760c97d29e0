package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sarmatov/shopadmin/internal/config"
	"github.com/sarmatov/shopadmin/internal/db"
	"github.com/sarmatov/shopadmin/internal/httpserver"
	"github.com/sarmatov/shopadmin/internal/logging"
	loggingmw "github.com/sarmatov/shopadmin/internal/middleware/logging"
	"github.com/sarmatov/shopadmin/internal/mykafka"
	"github.com/sarmatov/shopadmin/internal/repo"
	"github.com/sarmatov/shopadmin/internal/report"
	"github.com/sarmatov/shopadmin/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)

	r := &repo.GormRepo{DB: database}
	orderSvc := &service.OrderService{Repo: r}

	renderer, err := httpserver.NewRenderer()
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		UserHandler:     &httpserver.UserHandler{Repo: r},
		CategoryHandler: &httpserver.CategoryHandler{Repo: r},
		ProductHandler:  &httpserver.ProductHandler{Repo: r},
		OrderHandler: &httpserver.OrderHandler{
			Repo:     r,
			Svc:      orderSvc,
			Report:   &report.Generator{FontPath: cfg.ReportFontPath},
			Producer: producer,
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
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

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}
