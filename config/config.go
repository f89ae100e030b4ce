package config

import (
	"errors"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"time"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Api struct {
		Telegram struct {
			Token       string        `envconfig:"API_TELEGRAM_TOKEN" required:"true"`
			PollTimeout time.Duration `envconfig:"API_TELEGRAM_POLL_TIMEOUT" default:"10s" required:"true"`
		}
		ThemeParks struct {
			Uri     string        `envconfig:"API_THEMEPARKS_URI" default:"https://api.themeparks.wiki/v1" required:"true"`
			Timeout time.Duration `envconfig:"API_THEMEPARKS_TIMEOUT" default:"30s" required:"true"`
		}
		Ops struct {
			Port uint16 `envconfig:"API_OPS_PORT" default:"8080" required:"true"`
		}
	}
	Db      DbConfig
	Tracker TrackerConfig
	Notify  struct {
		// RateLimit is the max number of direct messages sent per second.
		RateLimit int `envconfig:"NOTIFY_RATE_LIMIT" default:"25" required:"true"`
	}
	Log struct {
		Level int    `envconfig:"LOG_LEVEL" default:"-4" required:"true"`
		File  string `envconfig:"LOG_FILE" default:""`
	}
}

type DbConfig struct {
	Uri     string `envconfig:"DB_URI" required:"true"`
	Migrate bool   `envconfig:"DB_MIGRATE" default:"true"`
	Conn    struct {
		RetryMax time.Duration `envconfig:"DB_CONN_RETRY_MAX" default:"1m" required:"true"`
	}
}

type TrackerConfig struct {
	Interval         time.Duration `envconfig:"TRACKER_INTERVAL" default:"5s" required:"true"`
	FetchConcurrency int           `envconfig:"TRACKER_FETCH_CONCURRENCY" default:"16" required:"true"`
}

func NewConfigFromEnv() (cfg Config, err error) {
	err = envconfig.Process("", &cfg)
	switch {
	case err != nil:
	case cfg.Notify.RateLimit <= 0:
		err = fmt.Errorf("%w: NOTIFY_RATE_LIMIT should be positive, got %d", ErrInvalid, cfg.Notify.RateLimit)
	case cfg.Tracker.Interval <= 0:
		err = fmt.Errorf("%w: TRACKER_INTERVAL should be positive, got %s", ErrInvalid, cfg.Tracker.Interval)
	}
	return
}
