package mq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"hotel-users-api/config"
)

// TopologyChannel is the part of *amqp091.Channel that declares exchanges,
// queues and bindings.
type TopologyChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
}

// DeclareTopology declares the durable exchange and audit queue and binds
// every lifecycle routing key. Declarations are idempotent, so publisher
// and consumer both call it.
func DeclareTopology(ch TopologyChannel, cfg config.MQ) (string, error) {
	const durable = true

	if err := ch.ExchangeDeclare(cfg.Exchange, cfg.ExchangeType, durable, false, false, false, nil); err != nil {
		return "", fmt.Errorf("exchange declare %s: %w", cfg.Exchange, err)
	}
	q, err := ch.QueueDeclare(cfg.QueueName, durable, false, false, false, nil)
	if err != nil {
		return "", fmt.Errorf("queue declare %s: %w", cfg.QueueName, err)
	}
	for _, rk := range RoutingKeys {
		if err = ch.QueueBind(q.Name, string(rk), cfg.Exchange, false, nil); err != nil {
			return "", fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	return q.Name, nil
}
