package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/malekbenamor02/portfolio/internal/auth"
	"github.com/malekbenamor02/portfolio/internal/config"
	"github.com/malekbenamor02/portfolio/internal/cookies"
	"github.com/malekbenamor02/portfolio/internal/events"
	"github.com/malekbenamor02/portfolio/internal/handlers"
	"github.com/malekbenamor02/portfolio/internal/logging"
	authmw "github.com/malekbenamor02/portfolio/internal/middleware/auth"
	loggingmw "github.com/malekbenamor02/portfolio/internal/middleware/logging"
	"github.com/malekbenamor02/portfolio/internal/ratelimit"
	"github.com/malekbenamor02/portfolio/internal/store"
	httpserver "github.com/malekbenamor02/portfolio/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.REFRESH_SECRET, "REFRESH_SECRET")
	config.MustNonEmpty(configuration.DB_HOST, "DB_HOST")
	config.MustNonEmpty(configuration.DB_NAME, "DB_NAME")

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	// Per-process limiter by default; Redis when the site runs more
	// than one instance.
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if configuration.REDIS_ADDR != "" {
		limiter = ratelimit.NewRedisLimiter(redis.NewClient(&redis.Options{
			Addr: configuration.REDIS_ADDR,
		}))
	}

	st := store.New(db)
	service := auth.NewService(
		st,
		limiter,
		[]byte(configuration.JWT_SECRET),
		[]byte(configuration.REFRESH_SECRET),
	)
	transport := cookies.New(configuration.IsProduction())

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &handlers.AuthHandler{Service: service, Cookies: transport, Producer: producer},
		Guard:       &authmw.Guard{Service: service, Cookies: transport},
		Limiter:     limiter,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
