package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/evharten/workshop-booking/internal/mailer"
)

// Consumer drains the notification queue and sends the emails.
type Consumer struct {
	url    string
	sender mailer.Sender
	log    *zap.Logger
}

// NewConsumer builds a consumer for the given broker URL and sender.
func NewConsumer(url string, sender mailer.Sender, log *zap.Logger) *Consumer {
	return &Consumer{url: url, sender: sender, log: log}
}

// Start connects to RabbitMQ, declares the durable notification queue and
// consumes it until the context is canceled.  Connection failures trigger
// a reconnect loop with exponential backoff; a failed message is rejected
// without requeue so a permanently broken payload cannot loop forever.
func (c *Consumer) Start(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("notification consumer: dial failed, retrying",
				zap.Error(err), zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after a successful connect

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.log.Warn("notification consumer: consume loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		c.log.Warn("notification consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(notificationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(ctx, d.Body); err != nil {
				c.log.Error("notification consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // reject, do not requeue
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var ev NotificationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Email == "" {
		return fmt.Errorf("event %s has no recipient", ev.ID)
	}
	msg, err := renderEmail(ev)
	if err != nil {
		return err
	}
	if err := c.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send %s notification for reservation %d: %w", ev.Kind, ev.ReservationID, err)
	}
	c.log.Info("notification delivered",
		zap.String("event_id", ev.ID),
		zap.String("kind", string(ev.Kind)),
		zap.Uint64("reservation_id", ev.ReservationID))
	return nil
}
