package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/strogmv/appdoc/internal/adapter/smsapi"
)

const (
	ChannelSlack = "slack"
	ChannelTeams = "teams"
	ChannelSMS   = "sms"
)

// WebhookConfig configures a chat webhook channel.
type WebhookConfig struct {
	URL        string        `validate:"required,url"`
	Timeout    time.Duration `validate:"gte=0"`
	HTTPClient *http.Client  `validate:"-"`
}

// SMSConfig configures the SMS gateway channel.
type SMSConfig struct {
	APIURL     string        `validate:"required,url"`
	APIKey     string        `validate:"required"`
	Timeout    time.Duration `validate:"gte=0"`
	HTTPClient *http.Client  `validate:"-"`
}

// NewWebhook builds a notifier that posts builder's payload to cfg.URL.
func NewWebhook(channel string, cfg WebhookConfig, builder MessageBuilder, log *slog.Logger, opts ...Option) (*Notifier, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, channel, err)
	}
	opts = append([]Option{WithTimeout(cfg.Timeout)}, opts...)
	return newNotifier(channel, cfg.URL, builder, NewHTTPClient(cfg.HTTPClient), log, opts)
}

func NewSlack(cfg WebhookConfig, builder SlackBuilder, log *slog.Logger, opts ...Option) (*Notifier, error) {
	return NewWebhook(ChannelSlack, cfg, builder, log, opts...)
}

func NewTeams(cfg WebhookConfig, log *slog.Logger, opts ...Option) (*Notifier, error) {
	return NewWebhook(ChannelTeams, cfg, TeamsBuilder{}, log, opts...)
}

// NewSMS builds a notifier that sends through the SMS gateway API.
func NewSMS(cfg SMSConfig, log *slog.Logger, opts ...Option) (*Notifier, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, ChannelSMS, err)
	}
	api, err := smsapi.New(cfg.APIURL, cfg.APIKey, cfg.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, ChannelSMS, err)
	}
	opts = append([]Option{WithTimeout(cfg.Timeout)}, opts...)
	return newNotifier(ChannelSMS, cfg.APIURL, SMSBuilder{}, SMSClient{API: api}, log, opts)
}

type smsSender interface {
	Send(ctx context.Context, recipient, message string) (smsapi.Response, error)
}

// SMSClient adapts the SMS gateway API to Client.
type SMSClient struct {
	API smsSender
}

func (c SMSClient) Send(ctx context.Context, r Request) (Response, error) {
	resp, err := c.API.Send(ctx, r.Recipient, string(r.Body))
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, err
	}
	body := resp.Body
	if resp.MessageID != "" {
		body = "message id " + resp.MessageID
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}
