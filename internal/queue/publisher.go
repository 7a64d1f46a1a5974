package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// notificationQueueName is the durable queue both publisher and consumer use.
const notificationQueueName = "booking.notifications"

// Publisher pushes notification events to RabbitMQ.  A nil *Publisher is a
// valid no-op publisher, used when RABBITMQ_URL is not configured.
type Publisher struct {
	url string
	log *zap.Logger
}

// NewPublisher returns a publisher for the given broker URL, or nil when
// the URL is empty.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url, log: log}
}

// Publish sends one event to the notification queue.  Each call dials a
// fresh connection; notification volume is a handful of messages per
// booking, far below where connection reuse would matter.  Errors are
// logged and returned so callers can ignore them without losing the trace.
func (p *Publisher) Publish(ctx context.Context, ev NotificationEvent) error {
	if p == nil {
		return nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("notification publish: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("notification publish: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
		p.log.Warn("notification publish: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("notification publish: marshal failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.ID,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", notificationQueueName, false, false, pub); err != nil {
		p.log.Warn("notification publish: publish failed", zap.Error(err))
		return err
	}
	return nil
}
