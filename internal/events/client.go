// Package events connects anvil to the NATS mesh: memory-update
// notifications come in, form lifecycle events go out.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects anvil consumes and emits.
const (
	// SubjectMemoryUpdated carries fresh company memory from the pipeline
	// that maintains it.
	SubjectMemoryUpdated = "memory.company.updated"
	// SubjectFormGenerated announces a newly generated and stored form.
	SubjectFormGenerated = "anvil.form.generated"
	// SubjectFormUpdated announces a conversational patch applied to a form.
	SubjectFormUpdated = "anvil.form.updated"
)

// MemoryUpdated is the inbound payload on SubjectMemoryUpdated. Memory is
// kept raw: the normalizer accepts any shape.
type MemoryUpdated struct {
	CompanyID string          `json:"company_id"`
	Memory    json.RawMessage `json:"memory"`
}

// FormGenerated is emitted after a form is mapped and stored.
type FormGenerated struct {
	CompanyID string `json:"company_id"`
	FormType  string `json:"form_type"`
	FormID    string `json:"form_id"`
}

// FormUpdated is emitted after a conversational turn patches a form.
type FormUpdated struct {
	CompanyID      string         `json:"company_id"`
	ConversationID string         `json:"conversation_id"`
	Updates        map[string]any `json:"updates"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
