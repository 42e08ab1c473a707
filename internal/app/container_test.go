package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/appdoc/internal/adapter/repository/memory"
	"github.com/strogmv/appdoc/internal/config"
	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/pkg/logger"
	"github.com/strogmv/appdoc/internal/port"
	"github.com/strogmv/appdoc/internal/testsupport"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		PublicBaseURI:         "/",
		RequestTimeout:        time.Second,
		SupportEmail:          "support@example.com",
		Signature:             "The Team",
		PendingTemplatePath:   "/templates/application/pending.html",
		ActivatedTemplatePath: "/templates/application/activated.html",
		InReviewTemplatePath:  "/templates/application/in_review.html",
		BreakerThreshold:      3,
		BreakerTimeout:        time.Second,
	}
	return cfg.WithTaxRate(decimal.RequireFromString("0.15"))
}

func TestNewContainerGeneratesFromSeed(t *testing.T) {
	id := uuid.New()
	seed := []domain.Application{{
		ID:     id,
		State:  domain.StatePending,
		Person: domain.Person{FirstName: "Ada", Surname: "Lovelace"},
	}}
	b, err := json.Marshal(seed)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	cfg := testConfig(t)
	cfg.SeedFile = path

	c, err := NewContainer(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer c.Close()

	pdf, err := c.SvcDocuments.Generate(context.Background(), id, cfg.PublicBaseURI)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	missing, err := c.SvcDocuments.Generate(context.Background(), uuid.New(), cfg.PublicBaseURI)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBuildNotifiersOnlyConfiguredChannels(t *testing.T) {
	cfg := testConfig(t)
	cfg.SlackWebhookURI = "https://hooks.example.com/slack"

	notifiers, err := buildNotifiers(cfg, logger.Discard())
	require.NoError(t, err)
	require.Len(t, notifiers, 1)
	assert.Equal(t, "slack", notifiers[0].Name())
}

func TestBuildNotifiersRejectsIncompleteSMS(t *testing.T) {
	cfg := testConfig(t)
	cfg.SMSApiKey = "key"

	_, err := buildNotifiers(cfg, logger.Discard())
	assert.Error(t, err)
}

func TestLoadSeedRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := loadSeed(path)
	assert.Error(t, err)
}

func TestDefaultChannelsFollowBuiltNotifiers(t *testing.T) {
	cfg := testConfig(t)
	cfg.TeamsWebhookURI = "https://teams.example.com/hook"
	cfg.DefaultChannels = []string{"slack"}

	log, logs := testsupport.NewLogger()
	c, err := NewContainer(context.Background(), cfg, log)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"teams"}, c.SvcDispatcher.DefaultChannels())
	assert.Equal(t, 1, logs.Count(slog.LevelWarn))

	h := c.HTTPHandler()
	assert.Equal(t, []string{"teams"}, h.Channels.Channels())
	assert.Nil(t, h.Events)
}

func TestDefaultChannelsKeepsConfiguredSubset(t *testing.T) {
	log, logs := testsupport.NewLogger()
	notifiers := []port.Notifier{namedNotifier("slack"), namedNotifier("sms")}

	assert.Equal(t, []string{"sms"}, defaultChannels([]string{" SMS "}, notifiers, log))
	assert.Equal(t, []string{"slack", "sms"}, defaultChannels(nil, notifiers, log))
	assert.Empty(t, defaultChannels([]string{"teams"}, nil, log))
	assert.Equal(t, 1, logs.Count(slog.LevelWarn))
}

type namedNotifier string

func (n namedNotifier) Name() string { return string(n) }

func (namedNotifier) Notify(context.Context, port.NotificationMessage) error { return nil }

func TestNewContainerRejectsSeedWithoutID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"state":"pending"}]`), 0o600))

	cfg := testConfig(t)
	cfg.SeedFile = path
	_, err := NewContainer(context.Background(), cfg, logger.Discard())
	assert.ErrorIs(t, err, memory.ErrMissingID)
}
