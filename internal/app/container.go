package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	rediscache "github.com/strogmv/appdoc/internal/adapter/cache/redis"
	"github.com/strogmv/appdoc/internal/adapter/events/nats"
	"github.com/strogmv/appdoc/internal/adapter/notifications"
	"github.com/strogmv/appdoc/internal/adapter/notify"
	"github.com/strogmv/appdoc/internal/adapter/repository/memory"
	"github.com/strogmv/appdoc/internal/adapter/repository/postgres"
	"github.com/strogmv/appdoc/internal/adapter/templates"
	"github.com/strogmv/appdoc/internal/config"
	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/pkg/circuitbreaker"
	"github.com/strogmv/appdoc/internal/pkg/report"
	"github.com/strogmv/appdoc/internal/port"
	"github.com/strogmv/appdoc/internal/service"
	transporthttp "github.com/strogmv/appdoc/internal/transport/http"
	embedded "github.com/strogmv/appdoc/templates"
)

type Container struct {
	Config *config.Config
	Log    *slog.Logger

	RepoApplication port.ApplicationRepository

	SvcDocuments  *service.DocumentGenerator
	SvcDispatcher *notifications.Dispatcher
	Notifiers     []port.Notifier

	Events *nats.Client

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Log:    log,
	}

	repo, err := c.applicationRepository(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.RepoApplication = repo

	factory := service.NewViewModelFactory(cfg.SupportEmail, cfg.Signature, cfg.TaxRate())
	assembler, err := service.NewDocumentAssembler(
		templates.NewPathProvider(cfg.TemplatePaths()),
		templates.NewRenderer(nil, embedded.FS, "templates"),
		factory,
		log.With(slog.String("component", "assembler")),
	)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.SvcDocuments, err = service.NewDocumentGenerator(repo, assembler, report.NewGenerator(), log.With(slog.String("component", "documents")))
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Notifiers, err = buildNotifiers(cfg, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	defaults := defaultChannels(cfg.DefaultChannels, c.Notifiers, log)
	c.SvcDispatcher = notifications.NewDispatcher(defaults, log.With(slog.String("component", "dispatcher")), c.Notifiers...)

	if cfg.NATSURL != "" {
		events, err := nats.NewClient(cfg.NATSURL)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		c.Events = events
		c.closers = append(c.closers, events.Close)
	}

	return c, nil
}

// SubscribeNotifications consumes notification events when NATS is configured.
func (c *Container) SubscribeNotifications() error {
	if c.Events == nil {
		return nil
	}
	h := &nats.NotificationHandler{
		Dispatcher: c.SvcDispatcher,
		Timeout:    c.Config.RequestTimeout * 3,
		Log:        c.Log.With(slog.String("component", "events")),
	}
	sub, err := c.Events.Subscribe(c.Config.NATSSubject, h.Handle)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.Config.NATSSubject, err)
	}
	c.closers = append(c.closers, func() { _ = sub.Unsubscribe() })
	return nil
}

// HTTPHandler wires the HTTP surface over the container's services.
func (c *Container) HTTPHandler() *transporthttp.Handler {
	h := &transporthttp.Handler{
		Documents:      c.SvcDocuments,
		Dispatcher:     c.SvcDispatcher,
		Templates:      embedded.FS,
		DefaultBaseURI: c.Config.PublicBaseURI,
		Log:            c.Log.With(slog.String("component", "http")),
		Channels:       c.SvcDispatcher,
	}
	if c.Events != nil {
		h.Events = c.Events
	}
	return h
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *Container) applicationRepository(ctx context.Context) (port.ApplicationRepository, error) {
	cfg := c.Config
	var repo port.ApplicationRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		repo = postgres.NewApplicationRepository(pool)
	} else {
		seed, err := loadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		repo, err = memory.NewApplicationRepository(seed...)
		if err != nil {
			return nil, err
		}
	}

	if cfg.RedisAddr != "" {
		client, err := rediscache.NewClient(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = client.Close() })
		repo = rediscache.NewApplicationCache(repo, client, cfg.CacheTTL, c.Log.With(slog.String("component", "cache")))
	}
	return repo, nil
}

func loadSeed(path string) ([]domain.Application, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var apps []domain.Application
	if err := json.Unmarshal(b, &apps); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return apps, nil
}

// buildNotifiers constructs a notifier for every channel that has an endpoint configured.
func buildNotifiers(cfg *config.Config, log *slog.Logger) ([]port.Notifier, error) {
	breaker := func() notify.Option {
		return notify.WithBreaker(circuitbreaker.NewBreaker(cfg.BreakerThreshold, cfg.BreakerTimeout, 1))
	}
	var out []port.Notifier

	if cfg.SlackWebhookURI != "" {
		n, err := notify.NewSlack(notify.WebhookConfig{URL: cfg.SlackWebhookURI, Timeout: cfg.RequestTimeout},
			notify.SlackBuilder{Channel: cfg.SlackChannel}, log, breaker())
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if cfg.TeamsWebhookURI != "" {
		n, err := notify.NewTeams(notify.WebhookConfig{URL: cfg.TeamsWebhookURI, Timeout: cfg.RequestTimeout}, log, breaker())
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if cfg.SMSApiURI != "" || cfg.SMSApiKey != "" {
		n, err := notify.NewSMS(notify.SMSConfig{APIURL: cfg.SMSApiURI, APIKey: cfg.SMSApiKey, Timeout: cfg.RequestTimeout}, log, breaker())
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// defaultChannels keeps the requested defaults that have a notifier and warns
// about the rest. With no usable request every built channel is a default.
func defaultChannels(requested []string, notifiers []port.Notifier, log *slog.Logger) []string {
	built := make(map[string]bool, len(notifiers))
	all := make([]string, 0, len(notifiers))
	for _, n := range notifiers {
		name := strings.ToLower(n.Name())
		built[name] = true
		all = append(all, name)
	}

	var out []string
	for _, ch := range requested {
		ch = strings.ToLower(strings.TrimSpace(ch))
		if ch == "" {
			continue
		}
		if !built[ch] {
			log.Warn("default notification channel is not configured", slog.String("channel", ch))
			continue
		}
		out = append(out, ch)
	}
	if len(out) == 0 {
		return all
	}
	return out
}
