package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/devfolio/devfolio-api/adapters/event"
	"github.com/devfolio/devfolio-api/adapters/persistence"
	"github.com/devfolio/devfolio-api/internal/config"
	"github.com/devfolio/devfolio-api/internal/domain/view"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Devfolio view worker...")

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	viewRepo := persistence.NewPostgresViewRepo(dbPool, appLogger)

	viewConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicViewEvents,
		GroupID:  "view-recorder-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer viewConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicViewEvents)

	ctx := context.Background()
	for {
		msg, err := viewConsumer.FetchMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ViewEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(viewConsumer, msg)
			continue
		}

		occurredAt := payload.OccurredAt
		if occurredAt.IsZero() {
			occurredAt = time.Now().UTC()
		}

		err = viewRepo.Insert(ctx, &view.PortfolioView{
			ID:          uuid.New(),
			PortfolioID: payload.PortfolioID,
			ViewerIP:    payload.ViewerIP,
			UserAgent:   payload.UserAgent,
			Referrer:    payload.Referrer,
			CreatedAt:   occurredAt,
		})
		if err != nil {
			log.Printf("ERROR: Failed to record view for portfolio %s: %v", payload.PortfolioID, err)
			continue
		}

		commitMessage(viewConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
