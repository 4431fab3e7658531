package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RegistryConfig locates one backend registry.
type RegistryConfig struct {
	BaseURL string
	Token   string
}

// SessionConfig is the session recovery policy: the user-activity gap that
// counts as a timeout and the state lists steering the interrupt decision.
type SessionConfig struct {
	Timeout time.Duration
	// NoTimeoutRedirects are reached unchanged even after a gap.
	NoTimeoutRedirects []string
	// TimeoutRedirects divert straight to RedirectState, skipping the
	// recovery prompt.
	TimeoutRedirects []string
	RedirectState    string
	ResumeState      string
	StartState       string
	ExitState        string
}

// RedisConfig configures the session store connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Config is resolved once at startup and passed by reference into the
// components that need it.
type Config struct {
	Addr      string
	LogFormat string
	LogLevel  string

	// Per-request transport deadline; zero disables it.
	RequestTimeout time.Duration

	// InboundToken guards the message callback endpoint; empty disables
	// the check.
	InboundToken string

	IdentityStore  RegistryConfig
	Hub            RegistryConfig
	StagedMessaging RegistryConfig
	MessageSender  RegistryConfig
	ServiceRating  RegistryConfig

	Session SessionConfig
	Redis   RedisConfig
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Addr:           envOr("MAMACARE_ADDR", ":8080"),
		LogFormat:      envOr("LOG_FORMAT", "text"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),
		InboundToken:   os.Getenv("INBOUND_TOKEN"),

		IdentityStore:   registryFromEnv("IDENTITY_STORE"),
		Hub:             registryFromEnv("HUB"),
		StagedMessaging: registryFromEnv("STAGED_MESSAGING"),
		MessageSender:   registryFromEnv("MESSAGE_SENDER"),
		ServiceRating:   registryFromEnv("SERVICE_RATING"),

		Session: SessionConfig{
			Timeout:            envDuration("SESSION_TIMEOUT", 10*time.Minute),
			NoTimeoutRedirects: envList("SESSION_NO_TIMEOUT_REDIRECTS"),
			TimeoutRedirects:   envList("SESSION_TIMEOUT_REDIRECTS"),
			RedirectState:      envOr("SESSION_REDIRECT_STATE", "state_start"),
			ResumeState:        envOr("SESSION_RESUME_STATE", "state_timed_out"),
			StartState:         envOr("SESSION_START_STATE", "state_start"),
			ExitState:          envOr("SESSION_EXIT_STATE", "state_end"),
		},

		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func registryFromEnv(prefix string) RegistryConfig {
	return RegistryConfig{
		BaseURL: os.Getenv(prefix + "_URL"),
		Token:   os.Getenv(prefix + "_TOKEN"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
