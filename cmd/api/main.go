package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"blog-server/api/router"
	"blog-server/config"
	"blog-server/db"
	"blog-server/eventbus"
	"blog-server/logger"
	"blog-server/repositories"
	"blog-server/services"
)

const shutdownTimeout = 10 * time.Second

// @title           Blog API
// @version         1.0
// @description     Posts and categories of a small blog, with filtered and paginated listings
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init("blog-api", cfg.Logging.Level)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongo, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}

	topic := eventbus.NewTopic(cfg.Kafka.Topic)
	bus := newEventBus(cfg.Kafka, topic)

	posts := repositories.NewPostRepository(mongo.Database)
	categories := repositories.NewCategoryRepository(mongo.Database)

	engine := router.New(router.Deps{
		Listing:      services.NewListingService(posts, cfg.Listing.MaxLimit),
		Mutations:    services.NewPostMutationService(posts, bus, topic),
		Categories:   services.NewCategoryService(categories),
		Activity:     services.NewActivityService(repositories.NewPostActivityRepository(mongo.Database)),
		DB:           mongo,
		DefaultLimit: cfg.Listing.DefaultLimit,
	})

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: cors.New(cors.Options{
			AllowedOrigins: cfg.Server.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
		}).Handler(engine),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Log.Infof("blog api listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("http server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("http server shutdown: %v", err)
	}
	bus.Close()
	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Log.Errorf("mongo disconnect: %v", err)
	}
	logger.Log.Info("bye")
}

// newEventBus returns the Kafka publisher when enabled. Any setup failure
// degrades to a no-op bus so the API keeps serving.
func newEventBus(cfg config.KafkaConfig, topic eventbus.Topic) eventbus.EventBus {
	if !cfg.Enabled {
		return eventbus.NoopEventBus{}
	}
	if err := eventbus.EnsureTopics(cfg.Brokers, topic, cfg.Partitions); err != nil {
		logger.Log.Errorf("failed to ensure eventbus topics: %v", err)
	}
	bus, err := eventbus.NewKafkaEventBus(cfg.Brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus, post events disabled: %v", err)
		return eventbus.NoopEventBus{}
	}
	return bus
}
