package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"hotel-users-api/config"
)

const (
	bufferSize   = 128
	flushTimeout = 3 * time.Second
)

var errNacked = errors.New("broker nacked the message")

type (
	InputCh = chan Event

	// RabbitMQ publishes lifecycle events from its input channel to the
	// topic exchange, one confirmed message at a time.
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh *amqp091.Channel
		in    InputCh
	}
)

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(InputCh, bufferSize),
	}
}

// Connect dials the broker and opens a publishing channel in confirm mode.
func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := amqp091.DialConfig(dsn, amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: amqp091.Table{"connection_name": "hotelusers-publisher"},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	if err = ch.Confirm(false); err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp confirm mode: %w", err)
	}
	r.conn, r.pubCh = conn, ch

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	_, err := DeclareTopology(r.pubCh, r.cfg)
	return err
}

// PublisherWorker publishes until ctx is done, then flushes what is still
// buffered within flushTimeout.
func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			r.send(ctx, e)
		case <-ctx.Done():
			r.flush()
			_ = r.pubCh.Close()
			return
		}
	}
}

func (r *RabbitMQ) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for n := 0; ; n++ {
		select {
		case e := <-r.in:
			if !r.send(ctx, e) {
				r.log.Warn("flush aborted", zap.Int("flushed", n), zap.Int("left", len(r.in)))
				return
			}
		default:
			if n > 0 {
				r.log.Info("flushed buffered events", zap.Int("count", n))
			}
			return
		}
	}
}

func (r *RabbitMQ) send(ctx context.Context, e Event) bool {
	if err := r.publish(ctx, e); err != nil {
		r.log.Error("mq publish error",
			zap.Error(err),
			zap.String("event_id", e.Id.String()),
			zap.String("action", string(e.Action)),
		)
		return false
	}
	return true
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	dc, err := r.pubCh.PublishWithDeferredConfirmWithContext(ctx, r.cfg.Exchange, string(e.Action), false, false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.Id.String(),
			Timestamp:    e.TS,
			Type:         string(e.Action),
			Body:         body,
		})
	if err != nil {
		return err
	}
	if dc == nil {
		return nil
	}

	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("await confirm: %w", err)
	}
	if !acked {
		return errNacked
	}

	return nil
}

func (r *RabbitMQ) GetInputChan() chan Event     { return r.in }
func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

// Discard stands in for RabbitMQ when no broker is configured: it drains
// the input channel so producers never block.
type Discard struct {
	log *zap.Logger
	in  InputCh
}

func NewDiscard(logger *zap.Logger) *Discard {
	return &Discard{log: logger, in: make(InputCh, bufferSize)}
}

func (d *Discard) PublisherWorker(ctx context.Context) {
	d.log.Info("no message broker configured, lifecycle events are discarded")
	for {
		select {
		case e := <-d.in:
			d.log.Debug("event discarded",
				zap.String("event_id", e.Id.String()),
				zap.String("action", string(e.Action)),
				zap.String("user_id", e.UserID),
			)
		case <-ctx.Done():
			return
		}
	}
}

func (d *Discard) GetInputChan() chan Event { return d.in }
