package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything main needs to wire the process. Values come
// from the environment so deployments stay twelve-factor; every field has a
// development default.
type Config struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration

	// Attendance rules
	WorkdayDuration time.Duration
	MatchThreshold  float64

	// Verification collaborator
	VerifierURL     string
	VerifierTimeout time.Duration

	// Storage. Empty DSN/URL means the in-memory implementation.
	PostgresDSN   string
	RedisURL      string
	RedisCacheTTL time.Duration

	// Audit sink. Empty brokers means the in-process memory sink.
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:            envOr("ROLLCALL_ADDR", ":8080"),
		JWTSigningKey:   envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		TokenTTL:        durationOr("TOKEN_TTL", 12*time.Hour),
		WorkdayDuration: durationOr("WORKDAY_DURATION", 8*time.Hour),
		MatchThreshold:  floatOr("MATCH_THRESHOLD", 0.45),
		VerifierURL:     os.Getenv("VERIFIER_URL"),
		VerifierTimeout: durationOr("VERIFIER_TIMEOUT", 5*time.Second),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		RedisURL:        os.Getenv("REDIS_URL"),
		RedisCacheTTL:   durationOr("REDIS_CACHE_TTL", 30*time.Second),
		KafkaBrokers:    splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      envOr("KAFKA_AUDIT_TOPIC", "rollcall.audit"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func floatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
