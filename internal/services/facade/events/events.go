// Package events publishes facade dispatch outcomes for offline reconciliation
// of ledger and log divergence.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultSubject is the subject dispatch events are published on.
const DefaultSubject = "txfacade.transaction.dispatched"

// ErrPublishFailed wraps every publish failure.
var ErrPublishFailed = errors.New("publish dispatch event failed")

// TransactionDispatched records what each backend reported for one transaction.
type TransactionDispatched struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	LedgerOK      bool      `json:"ledger_ok"`
	LogOK         bool      `json:"log_ok"`
	LedgerNanos   int64     `json:"ledger_nanos"`
	LogNanos      int64     `json:"log_nanos"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Diverged reports whether exactly one backend accepted the write.
func (e TransactionDispatched) Diverged() bool {
	return e.LedgerOK != e.LogOK
}

// Publisher delivers dispatch events.
type Publisher interface {
	PublishDispatched(ctx context.Context, event TransactionDispatched) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishDispatched(context.Context, TransactionDispatched) error { return nil }

// Client is the minimal publish surface the NATS publisher needs.
type Client interface {
	Publish(subject string, data []byte, headers map[string]string) error
}

// NATSPublisher serializes events as JSON and publishes them through Client.
type NATSPublisher struct {
	client  Client
	subject string
}

// NewNATSPublisher returns a publisher on subject, or DefaultSubject when blank.
func NewNATSPublisher(client Client, subject string) *NATSPublisher {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{client: client, subject: subject}
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string {
	return p.subject
}

// PublishDispatched publishes event. The transaction id doubles as the
// message id so a JetStream consumer can deduplicate redeliveries.
func (p *NATSPublisher) PublishDispatched(ctx context.Context, event TransactionDispatched) error {
	if p == nil || p.client == nil {
		return fmt.Errorf("%w: client is not configured", ErrPublishFailed)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPublishFailed, err)
	}
	headers := map[string]string{
		"Content-Type": "application/json",
		"Nats-Msg-Id":  event.TransactionID,
	}
	if err := p.client.Publish(p.subject, data, headers); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
