// Package publish sends fetched listings to NATS with OpenTelemetry trace
// propagation.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

// DefaultFlushTimeout bounds Flush when ctx carries no deadline.
const DefaultFlushTimeout = 5 * time.Second

// Header names set on every published message.
const (
	HeaderSubreddit = "Subfeed-Subreddit"
	HeaderListing   = "Subfeed-Listing"
)

// natsHeaderCarrier adapts nats.Msg headers for OTel TextMapCarrier.
type natsHeaderCarrier nats.Msg

func (c *natsHeaderCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *natsHeaderCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *natsHeaderCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

// Publisher publishes listings under a subject prefix. The subject of a
// listing is <prefix>.<subreddit>.<listing>.
type Publisher struct {
	conn   Conn
	prefix string
	logger *slog.Logger
}

// NewPublisher returns a publisher over conn. A nil logger discards logs.
func NewPublisher(conn Conn, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{conn: conn, prefix: prefix, logger: logger}
}

// Connect dials url and returns the connection. Callers close it.
func Connect(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}
	return nc, nil
}

// Subject returns the subject a listing is published on.
func (p *Publisher) Subject(subreddit, listing string) string {
	return p.prefix + "." + subreddit + "." + listing
}

// Publish serializes v as JSON and publishes it for subreddit and listing.
// Each message carries a unique Nats-Msg-Id, so a JetStream stream on the
// subject drops redeliveries, and the trace context of ctx.
func (p *Publisher) Publish(ctx context.Context, subreddit, listing string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s listing: %w", listing, err)
	}

	id := uuid.NewString()
	msg := &nats.Msg{
		Subject: p.Subject(subreddit, listing),
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set(nats.MsgIdHdr, id)
	msg.Header.Set(HeaderSubreddit, subreddit)
	msg.Header.Set(HeaderListing, listing)
	otel.GetTextMapPropagator().Inject(ctx, (*natsHeaderCarrier)(msg))

	if err := p.conn.PublishMsg(msg); err != nil {
		return "", fmt.Errorf("publishing to %s: %w", msg.Subject, err)
	}

	p.logger.Debug("listing published", "subject", msg.Subject, "id", id, "bytes", len(data))
	return id, nil
}

// Flush waits until the server has processed every published message.
// nats requires a deadline, so one of DefaultFlushTimeout is added when ctx
// has none.
func (p *Publisher) Flush(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultFlushTimeout)
		defer cancel()
	}
	return p.conn.FlushWithContext(ctx)
}
