package events

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATSPublisher publishes order events to NATS subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string, logger zerolog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("njord"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}

	return &NATSPublisher{conn: conn, logger: logger}, nil
}

// PublishOrderProcessing publishes to order.processing.
func (p *NATSPublisher) PublishOrderProcessing(ctx context.Context, event OrderEvent) error {
	return p.publish(SubjectOrderProcessing, event)
}

// PublishOrderCancelled publishes to order.cancelled.
func (p *NATSPublisher) PublishOrderCancelled(ctx context.Context, event OrderEvent) error {
	return p.publish(SubjectOrderCancelled, event)
}

func (p *NATSPublisher) publish(subject string, event OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Str("order_id", event.OrderID).Msg("event publish failed")
		return err
	}
	return nil
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("nats drain failed")
	}
}
