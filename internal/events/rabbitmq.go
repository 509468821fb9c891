package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitConfig configures the RabbitMQ publisher.
type RabbitConfig struct {
	URL            string
	Exchange       string
	ExchangeType   string
	PublishTimeout time.Duration
}

// RabbitPublisher publishes events to a durable exchange using the event type as routing key.
type RabbitPublisher struct {
	cfg    RabbitConfig
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher dials the broker and declares the exchange.
func NewRabbitPublisher(cfg RabbitConfig, logger *slog.Logger) (*RabbitPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq publisher: url cannot be empty")
	}
	if cfg.Exchange == "" {
		return nil, errors.New("rabbitmq publisher: exchange cannot be empty")
	}
	if cfg.ExchangeType == "" {
		cfg.ExchangeType = amqp.ExchangeTopic
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &RabbitPublisher{cfg: cfg, logger: logger.With("component", "RabbitPublisher")}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *RabbitPublisher) connect() error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq publisher: failed to dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq publisher: failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		p.cfg.Exchange,
		p.cfg.ExchangeType,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq publisher: failed to declare exchange %q: %w", p.cfg.Exchange, err)
	}
	p.conn = conn
	p.ch = ch
	p.logger.Info("Connected to RabbitMQ", "exchange", p.cfg.Exchange)
	return nil
}

// Publish sends e as a persistent JSON message, reconnecting once if the connection dropped.
func (p *RabbitPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := newPublishing(e)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		p.logger.Warn("Connection lost, reconnecting")
		if err := p.connect(); err != nil {
			return err
		}
	}

	publishCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
	defer cancel()

	if err := p.ch.PublishWithContext(publishCtx, p.cfg.Exchange, e.Type, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publisher: failed to publish %s for property %s: %w", e.Type, e.PropertyID, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

func newPublishing(e Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq publisher: failed to encode event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Type:         e.Type,
		Timestamp:    e.OccurredAt,
		Headers:      amqp.Table{"x-property-id": e.PropertyID},
	}, nil
}
