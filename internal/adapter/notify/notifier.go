// Package notify delivers notification messages over chat webhooks and SMS.
//
// Every channel goes through the same send routine: build the payload with the
// channel's MessageBuilder, hand it to the channel's Client, and on failure log
// each underlying cause before returning them all in a *SendError.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/strogmv/appdoc/internal/pkg/circuitbreaker"
	"github.com/strogmv/appdoc/internal/pkg/logger"
	"github.com/strogmv/appdoc/internal/port"
)

const defaultTimeout = 10 * time.Second

var validate = validator.New(validator.WithRequiredStructEnabled())

// Notifier sends messages over one channel.
type Notifier struct {
	channel  string
	endpoint string
	builder  MessageBuilder
	client   Client
	breaker  *circuitbreaker.Breaker
	timeout  time.Duration
	log      *slog.Logger
}

var _ port.Notifier = (*Notifier)(nil)

type Option func(*Notifier)

// WithClient replaces the channel's transport.
func WithClient(c Client) Option {
	return func(n *Notifier) { n.client = c }
}

// WithBreaker guards the transport with b.
func WithBreaker(b *circuitbreaker.Breaker) Option {
	return func(n *Notifier) { n.breaker = b }
}

// WithTimeout bounds each send. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

func newNotifier(channel, endpoint string, builder MessageBuilder, client Client, log *slog.Logger, opts []Option) (*Notifier, error) {
	if builder == nil {
		return nil, fmt.Errorf("%w: %s message builder is required", ErrInvalidConfig, channel)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: %s logger is required", ErrInvalidConfig, channel)
	}
	n := &Notifier{
		channel:  channel,
		endpoint: endpoint,
		builder:  builder,
		client:   client,
		timeout:  defaultTimeout,
		log:      log.With(slog.String("channel", channel)),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.client == nil {
		return nil, fmt.Errorf("%w: %s client is required", ErrInvalidConfig, channel)
	}
	return n, nil
}

func (n *Notifier) Name() string { return n.channel }

// Notify formats msg for the channel and sends it. Failures are returned as *SendError.
func (n *Notifier) Notify(ctx context.Context, msg port.NotificationMessage) error {
	payload, err := n.builder.CreateMessage(msg)
	if err != nil {
		return fmt.Errorf("build %s message: %w", n.channel, err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	var resp Response
	send := func() error {
		var err error
		resp, err = n.client.Send(sendCtx, Request{
			Endpoint:    n.endpoint,
			Recipient:   msg.To,
			ContentType: n.builder.ContentType(),
			Body:        payload,
		})
		return err
	}
	if n.breaker != nil {
		err = n.breaker.Execute(send)
	} else {
		err = send()
	}
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return n.fail(ctx, ErrCircuitOpen)
	}
	if err != nil {
		return n.fail(ctx, err)
	}

	notificationsTotal.WithLabelValues(n.channel, "sent").Inc()
	logger.From(ctx, n.log).Log(ctx, logger.LevelTrace, "message sent",
		slog.Int("status", resp.StatusCode),
		slog.String("response", resp.Body))
	return nil
}

func (n *Notifier) fail(ctx context.Context, err error) error {
	causes := Flatten(err)
	log := logger.From(ctx, n.log)
	for _, cause := range causes {
		log.Error("failed to send message", slog.String("error", cause.Error()))
	}
	outcome := "failed"
	if errors.Is(err, ErrCircuitOpen) {
		outcome = "rejected"
	}
	notificationsTotal.WithLabelValues(n.channel, outcome).Inc()
	return &SendError{Channel: n.channel, Causes: causes}
}
