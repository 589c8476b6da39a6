package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-analytics/internal/logger"
)

// Handler processes one message body.  A returned error rejects the
// message without requeueing it.
type Handler func(ctx context.Context, body []byte) error

// Consumer reads every queue in Handlers from one connection and
// reconnects with exponential backoff when the broker goes away.
type Consumer struct {
	URL      string
	Handlers map[string]Handler
	Log      *logger.Logger
	Prefetch int
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("consumer: dial failed", "error", err, "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.Warn("consumer: loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

type delivery struct {
	queue string
	amqp.Delivery
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	prefetch := c.Prefetch
	if prefetch <= 0 {
		prefetch = 50
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		c.Log.Warn("consumer: set QoS failed", "error", err)
	}

	merged := make(chan delivery)
	done := make(chan struct{})
	defer close(done)
	for name := range c.Handlers {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		go func(name string, msgs <-chan amqp.Delivery) {
			for d := range msgs {
				select {
				case merged <- delivery{queue: name, Delivery: d}:
				case <-done:
					return
				}
			}
		}(name, msgs)
	}
	c.Log.Info("consumer: listening", "queues", len(c.Handlers))

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr != nil {
				return amqpErr
			}
			return errors.New("channel closed")
		case d := <-merged:
			if err := c.Handlers[d.queue](ctx, d.Body); err != nil {
				c.Log.Error("consumer: handle message failed", "queue", d.queue, "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
