package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSConfig configures the NATS connection backing a NATSPublisher.
type NATSConfig struct {
	URL           string
	Subject       string
	Name          string
	ConnTimeout   time.Duration
	MaxReconnects int
}

// msgPublisher is the part of *nats.Conn the client uses.
type msgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

// natsClient hands messages to the connection's outbound buffer and returns
// without a server round trip; the cleanup's Drain flushes what is pending.
type natsClient struct{ conn msgPublisher }

func (c natsClient) Publish(subject string, data []byte, headers map[string]string) error {
	msg := nats.NewMsg(subject)
	msg.Data = data
	for k, v := range headers {
		msg.Header.Set(k, v)
	}
	return c.conn.PublishMsg(msg)
}

// ConnectNATS dials NATS and returns a publisher plus a cleanup that drains
// the connection.
func ConnectNATS(cfg NATSConfig) (*NATSPublisher, func(), error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, nil, fmt.Errorf("%w: nats url required", ErrPublishFailed)
	}

	opts := []nats.Option{}
	if cfg.Name != "" {
		opts = append(opts, nats.Name(cfg.Name))
	}
	if cfg.ConnTimeout > 0 {
		opts = append(opts, nats.Timeout(cfg.ConnTimeout))
	}
	if cfg.MaxReconnects != 0 {
		opts = append(opts, nats.MaxReconnects(cfg.MaxReconnects))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: nats connect: %w", ErrPublishFailed, err)
	}

	cleanup := func() {
		if !nc.IsClosed() {
			_ = nc.Drain()
			nc.Close()
		}
	}
	return NewNATSPublisher(natsClient{conn: nc}, cfg.Subject), cleanup, nil
}
