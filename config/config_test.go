package config

import (
	"github.com/stretchr/testify/assert"
	"os"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	os.Setenv("API_TELEGRAM_TOKEN", "yohoho")
	os.Setenv("DB_URI", "postgres://localhost:5432/themeparks")
	os.Setenv("LOG_LEVEL", "4")
	os.Setenv("TRACKER_INTERVAL", "1m")
	os.Setenv("API_OPS_PORT", "56789")
	defer os.Clearenv()
	cfg, err := NewConfigFromEnv()
	assert.Nil(t, err)
	assert.Equal(t, "yohoho", cfg.Api.Telegram.Token)
	assert.Equal(t, "https://api.themeparks.wiki/v1", cfg.Api.ThemeParks.Uri)
	assert.Equal(t, uint16(56789), cfg.Api.Ops.Port)
	assert.Equal(t, "postgres://localhost:5432/themeparks", cfg.Db.Uri)
	assert.True(t, cfg.Db.Migrate)
	assert.Equal(t, 4, cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Tracker.Interval)
	assert.Equal(t, 16, cfg.Tracker.FetchConcurrency)
	assert.Equal(t, 25, cfg.Notify.RateLimit)
}

func TestConfig_MissingToken(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_URI", "postgres://localhost:5432/themeparks")
	defer os.Clearenv()
	_, err := NewConfigFromEnv()
	assert.NotNil(t, err)
}

func TestConfig_Invalid(t *testing.T) {
	cases := map[string]struct {
		key string
		val string
	}{
		"zero rate limit": {
			key: "NOTIFY_RATE_LIMIT",
			val: "0",
		},
		"negative rate limit": {
			key: "NOTIFY_RATE_LIMIT",
			val: "-1",
		},
		"zero interval": {
			key: "TRACKER_INTERVAL",
			val: "0s",
		},
	}
	for k, c := range cases {
		t.Run(k, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("API_TELEGRAM_TOKEN", "yohoho")
			os.Setenv("DB_URI", "postgres://localhost:5432/themeparks")
			os.Setenv(c.key, c.val)
			defer os.Clearenv()
			_, err := NewConfigFromEnv()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
