package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes catalog events on their subject.
type NatsPublisher struct {
	nc     *nats.Conn
	logger *log.Logger
}

// ConnectNats opens a connection that reconnects on its own.
func ConnectNats(url string, logger *log.Logger) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name("catalog-service"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("nats disconnected", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error("nats error", "err", err)
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to nats", "url", nc.ConnectedUrl())
	return &NatsPublisher{nc: nc, logger: logger}, nil
}

func NewNatsPublisher(nc *nats.Conn, logger *log.Logger) *NatsPublisher {
	return &NatsPublisher{nc: nc, logger: logger}
}

func (p *NatsPublisher) Publish(ctx context.Context, event Event) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(event.Subject, data); err != nil {
		return err
	}
	p.logger.Debug("event published", "subject", event.Subject, "id", event.ID)
	return nil
}

// Close drains pending messages before closing the connection.
func (p *NatsPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
	p.logger.Info("nats connection closed")
}
