package internal

import (
	"anon-chat/errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	BotToken        string        `env:"BOT_TOKEN,required=true" validate:"required"`
	TelegramAPIURL  string        `env:"TELEGRAM_API_URL,default=https://api.telegram.org" validate:"required,url"`
	WebhookPath     string        `env:"WEBHOOK_PATH,required=true" validate:"required"`
	WebhookSecret   string        `env:"WEBHOOK_SECRET" validate:"omitempty,min=16,max=256"`
	WebhookURL      string        `env:"WEBHOOK_URL" validate:"omitempty,url"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=5000" validate:"min=1,max=65535"`
	GrpcPort        int           `env:"GRPC_PORT,default=5001" validate:"min=1,max=65535,nefield=Port"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	BufferSize      int           `env:"BUFFER_SIZE,default=256" validate:"min=1"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=2s" validate:"gt=0"`
	DeliveryTimeout time.Duration `env:"DELIVERY_TIMEOUT,default=5s" validate:"gt=0"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	MaxWait         time.Duration `env:"MAX_WAIT,default=0s" validate:"gte=0"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL,default=30s" validate:"gt=0"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,default=1m" validate:"gt=0"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	LimitOutcomes   *int          `env:"LIMIT_OUTCOMES" validate:"omitempty,min=1"`
	RedisAddr       string        `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB,default=0" validate:"min=0"`
	DedupTTL        time.Duration `env:"DEDUP_TTL,default=24h" validate:"gt=0"`
	AdminSecret     string        `env:"ADMIN_SECRET" validate:"omitempty,min=16"`
	Owner           string        `env:"OWNER"`
	Group           string        `env:"GROUP"`
	Channel         string        `env:"CHANNEL"`
}

// Validate checks the decoded values beyond presence.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) SweeperEnabled() bool {
	return c.MaxWait > 0
}
