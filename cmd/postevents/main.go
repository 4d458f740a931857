package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-server/config"
	"blog-server/db"
	"blog-server/eventbus"
	"blog-server/logger"
	"blog-server/repositories"
	"blog-server/services"
)

// postevents consumes post lifecycle events and records them in the
// post_activity collection.
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init("blog-postevents", cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Log.Errorf("post activity consumer: %v", err)
		os.Exit(1)
	}
	logger.Log.Info("post activity consumer stopped")
}

func run(ctx context.Context, cfg config.AppConfig) error {
	if !cfg.Kafka.Enabled {
		return errors.New("kafka is disabled, set kafka.enabled or KAFKA_BOOTSTRAP_SERVERS")
	}

	mongo, err := db.Connect(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("initialize MongoDB: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(closeCtx); err != nil {
			logger.Log.Errorf("mongo disconnect: %v", err)
		}
	}()

	topic := eventbus.NewTopic(cfg.Kafka.Topic)
	if err := eventbus.EnsureTopics(cfg.Kafka.Brokers, topic, cfg.Kafka.Partitions); err != nil {
		logger.Log.Errorf("failed to ensure eventbus topics: %v", err)
	}

	bus, err := eventbus.NewKafkaEventBus(cfg.Kafka.Brokers)
	if err != nil {
		return fmt.Errorf("create event bus: %w", err)
	}
	defer bus.Close()

	activity := services.NewActivityService(repositories.NewPostActivityRepository(mongo.Database))

	logger.Log.Info("starting post activity consumer...")
	err = bus.Subscribe(ctx, cfg.Kafka.GroupID, topic, activity.HandleEvent)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
