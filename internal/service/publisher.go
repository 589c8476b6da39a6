// Package service publishes domain events to RabbitMQ.  Publish errors
// are logged and returned; callers decide whether they matter.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/queue"
)

type Publisher struct {
	URL string
	Log *logger.Logger
}

func NewPublisher(url string, log *logger.Logger) *Publisher {
	return &Publisher{URL: url, Log: log}
}

func (p *Publisher) PublishPipelineCompleted(ctx context.Context, ev queue.PipelineCompletedEvent) error {
	return p.publish(ctx, queue.PipelineCompletedQueue, ev)
}

func (p *Publisher) PublishTicketsBooked(ctx context.Context, ev queue.TicketsBookedEvent) error {
	return p.publish(ctx, queue.TicketsBookedQueue, ev)
}

// publish opens a short-lived connection, declares the durable queue and
// sends one persistent JSON message through the default exchange.
func (p *Publisher) publish(ctx context.Context, queueName string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", queueName, err)
	}
	if err := p.send(ctx, queueName, body); err != nil {
		p.Log.Warn("rabbitmq: publish failed", "queue", queueName, "error", err)
		return err
	}
	p.Log.Debug("rabbitmq: published", "queue", queueName, "bytes", len(body))
	return nil
}

func (p *Publisher) send(ctx context.Context, queueName string, body []byte) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	return ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
