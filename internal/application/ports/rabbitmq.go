package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"hotel-users-api/internal/infrastructure/mq"
)

type EventPublisher interface {
	PublisherWorker(ctx context.Context)
	GetInputChan() chan mq.Event
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	GetConn() *amqp091.Connection
}

// AuditConsumer reads lifecycle events back off the audit queue.
type AuditConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
