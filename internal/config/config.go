package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" env-default:":8080"`
	PublicBaseURI  string        `env:"PUBLIC_BASE_URI" env-default:"http://localhost:8080/"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`

	SupportEmail string `env:"SUPPORT_EMAIL" env-required:"true"`
	Signature    string `env:"SIGNATURE" env-required:"true"`
	TaxRateRaw   string `env:"TAX_RATE" env-default:"0.15"`

	PendingTemplatePath   string `env:"TEMPLATE_PENDING_PATH" env-default:"/templates/application/pending.html"`
	ActivatedTemplatePath string `env:"TEMPLATE_ACTIVATED_PATH" env-default:"/templates/application/activated.html"`
	InReviewTemplatePath  string `env:"TEMPLATE_IN_REVIEW_PATH" env-default:"/templates/application/in_review.html"`

	SlackWebhookURI string   `env:"SLACK_WEBHOOK_URI"`
	SlackChannel    string   `env:"SLACK_CHANNEL"`
	TeamsWebhookURI string   `env:"TEAMS_WEBHOOK_URI"`
	SMSApiURI       string   `env:"SMS_API_URI"`
	SMSApiKey       string   `env:"SMS_API_KEY"`
	DefaultChannels []string `env:"NOTIFY_DEFAULT_CHANNELS" env-separator:","`

	BreakerThreshold int           `env:"BREAKER_THRESHOLD" env-default:"5"`
	BreakerTimeout   time.Duration `env:"BREAKER_TIMEOUT" env-default:"30s"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	SeedFile string `env:"SEED_FILE"`

	DatabaseURL string        `env:"DATABASE_URL"`
	RedisAddr   string        `env:"REDIS_ADDR"`
	CacheTTL    time.Duration `env:"CACHE_TTL" env-default:"1m"`
	NATSURL     string        `env:"NATS_URL"`
	NATSSubject string        `env:"NATS_NOTIFY_SUBJECT" env-default:"notifications.requested"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" env-default:"appdoc"`

	taxRate decimal.Decimal
}

func Load() (*Config, error) {
	var cfg Config

	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.parse(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) parse() error {
	rate, err := decimal.NewFromString(c.TaxRateRaw)
	if err != nil {
		return fmt.Errorf("config error: TAX_RATE %q: %w", c.TaxRateRaw, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("config error: TAX_RATE must not be negative, got %s", rate)
	}
	c.taxRate = rate
	return nil
}

// TaxRate is the multiplier applied to net fund amounts.
func (c *Config) TaxRate() decimal.Decimal {
	return c.taxRate
}

// WithTaxRate returns a copy of c using rate.
func (c *Config) WithTaxRate(rate decimal.Decimal) *Config {
	cp := *c
	cp.taxRate = rate
	return &cp
}

// TemplatePaths maps template keys to their configured path fragments.
func (c *Config) TemplatePaths() map[string]string {
	return map[string]string{
		"PendingApplication":   c.PendingTemplatePath,
		"ActivatedApplication": c.ActivatedTemplatePath,
		"InReviewApplication":  c.InReviewTemplatePath,
	}
}
