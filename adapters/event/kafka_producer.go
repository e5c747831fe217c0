package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/devfolio/devfolio-api/internal/config"
	"github.com/devfolio/devfolio-api/internal/domain/view"
)

const (
	TopicViewEvents = "portfolio.views"
)

type ViewEventType string

const (
	ViewEventTypeRecorded ViewEventType = "portfolio.viewed"
)

type ViewEventPayload struct {
	EventType   ViewEventType `json:"event_type"`
	PortfolioID uuid.UUID     `json:"portfolio_id"`
	ViewerIP    string        `json:"viewer_ip"`
	UserAgent   string        `json:"user_agent"`
	Referrer    string        `json:"referrer"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

type KafkaProducerClient struct {
	ViewEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	viewWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicViewEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		ViewEventsWriter: viewWriter,
	}, nil
}

func (c *KafkaProducerClient) Close() {
	if c.ViewEventsWriter != nil {
		c.ViewEventsWriter.Close()
	}
}

func (c *KafkaProducerClient) PublishViewEvent(ctx context.Context, payload ViewEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal view event: %w", err)
	}

	err = c.ViewEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PortfolioID.String()),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("cannot publish view event: %w", err)
	}
	return nil
}

// RecordView implements view.Recorder over the view-events topic.
func (c *KafkaProducerClient) RecordView(ctx context.Context, portfolioID uuid.UUID, meta view.Metadata) error {
	return c.PublishViewEvent(ctx, ViewEventPayload{
		EventType:   ViewEventTypeRecorded,
		PortfolioID: portfolioID,
		ViewerIP:    meta.ViewerIP,
		UserAgent:   meta.UserAgent,
		Referrer:    meta.Referrer,
		OccurredAt:  time.Now().UTC(),
	})
}
