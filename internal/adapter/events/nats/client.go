package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	natspkg "github.com/nats-io/nats.go"

	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/port"
)

// queueGroup lets several service instances share one notification subject.
const queueGroup = "appdoc-notifiers"

type Client struct {
	nc *natspkg.Conn
}

func NewClient(url string) (*Client, error) {
	nc, err := natspkg.Connect(url,
		natspkg.Name("appdoc"),
		natspkg.MaxReconnects(-1),
		natspkg.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	return &Client{nc: nc}, nil
}

// Close drains in-flight messages before closing the connection.
func (c *Client) Close() {
	if err := c.nc.Drain(); err != nil {
		c.nc.Close()
	}
}

func (c *Client) IsConnected() bool {
	return c.nc != nil && c.nc.IsConnected()
}

// Subscribe delivers each message on subject to handler, load balanced across the queue group.
func (c *Client) Subscribe(subject string, handler func(data []byte) error) (*natspkg.Subscription, error) {
	return c.nc.QueueSubscribe(subject, queueGroup, func(msg *natspkg.Msg) {
		_ = handler(msg.Data)
	})
}

// PublishNotification publishes a NotificationRequested event on subject.
func (c *Client) PublishNotification(subject string, event domain.NotificationRequested) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification event: %w", err)
	}
	return c.nc.Publish(subject, b)
}

// NotificationHandler decodes NotificationRequested events and dispatches them.
type NotificationHandler struct {
	Dispatcher port.NotificationDispatcher
	Timeout    time.Duration
	Log        *slog.Logger
}

// Handle processes one event payload. Delivery failures are logged and returned;
// there is no redelivery.
func (h *NotificationHandler) Handle(data []byte) error {
	var event domain.NotificationRequested
	if err := json.Unmarshal(data, &event); err != nil {
		h.Log.Error("discarding malformed notification event", slog.String("error", err.Error()))
		return fmt.Errorf("decode notification event: %w", err)
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	msg := port.NotificationMessage{
		Event:    event.Event,
		To:       event.To,
		Title:    event.Title,
		Body:     event.Body,
		Metadata: event.Metadata,
	}
	if err := h.Dispatcher.Dispatch(ctx, msg, event.Channels...); err != nil {
		h.Log.Error("notification event not delivered",
			slog.String("event", event.Event),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
