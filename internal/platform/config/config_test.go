package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 8*time.Hour, cfg.WorkdayDuration)
	assert.InDelta(t, 0.45, cfg.MatchThreshold, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.VerifierTimeout)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, "rollcall.audit", cfg.KafkaTopic)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ROLLCALL_ADDR", ":9999")
	t.Setenv("WORKDAY_DURATION", "6h")
	t.Setenv("MATCH_THRESHOLD", "0.3")
	t.Setenv("KAFKA_BROKERS", "broker-a:9092, broker-b:9092 ,")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 6*time.Hour, cfg.WorkdayDuration)
	assert.InDelta(t, 0.3, cfg.MatchThreshold, 1e-9)
	assert.Equal(t, []string{"broker-a:9092", "broker-b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL, "unparseable values fall back to the default")
}
