package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"hotel-users-api/config"
	"hotel-users-api/internal/infrastructure/mq"
)

const (
	// can scale depends on a parallel worker count
	preFetchCount = 1
	consumerTag   = "hotelusers-audit"
)

var auditNames = map[mq.Action]string{
	mq.ActionCreated:  "UserCreated",
	mq.ActionUpdated:  "UserUpdated",
	mq.ActionDeleted:  "UserDeleted",
	mq.ActionRestored: "UserRestored",
}

// Consumer reads lifecycle events from the audit queue and writes one
// audit log line per event.
type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	ch         *amqp091.Channel
	deliveries <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger) *Consumer {
	return &Consumer{
		cfg: cfg,
		log: logger,
	}
}

// Connect opens a dedicated connection so consumer flow control never
// stalls the publisher.
func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.DialConfig(dsn, amqp091.Config{
		Properties: amqp091.Table{"connection_name": consumerTag},
	})
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.ch = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	queue, err := mq.DeclareTopology(c.ch, c.cfg)
	if err != nil {
		return err
	}
	if err = c.ch.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	// manual acks: a message leaves the queue only once it is audited
	c.deliveries, err = c.ch.Consume(queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.deliveries:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			c.handle(msg)
		case <-ctx.Done():
			_ = c.ch.Close()
			_ = c.conn.Close()
			return
		}
	}
}

// handle acks audited messages and dead-letters the rest without requeue.
func (c *Consumer) handle(msg amqp091.Delivery) {
	if err := c.audit(msg); err != nil {
		c.log.Error("mq read message error", zap.Error(err), zap.String("routing_key", msg.RoutingKey))
		if err = msg.Nack(false, false); err != nil {
			c.log.Error("mq nack error", zap.Error(err))
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		c.log.Error("mq ack error", zap.Error(err))
	}
}

func (c *Consumer) audit(msg amqp091.Delivery) error {
	name, ok := auditNames[mq.Action(msg.RoutingKey)]
	if !ok {
		return fmt.Errorf("unknown routing key %q", msg.RoutingKey)
	}

	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode event %s: %w", msg.MessageId, err)
	}

	c.log.Info("user audit",
		zap.String("action", name),
		zap.String("event_id", e.Id.String()),
		zap.Time("at", e.TS),
		zap.String("user_id", e.UserID),
		zap.String("actor_id", e.ActorID),
		zap.Bool("active", e.Payload.Active),
	)

	return nil
}
