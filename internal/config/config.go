package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

// Config aggregates runtime configuration for the bot.
type Config struct {
	App        AppConfig
	Discord    DiscordConfig
	Tickets    TicketsConfig
	Counter    CounterConfig
	Redis      RedisConfig
	Transcript TranscriptConfig
	Logger     LoggerConfig
}

// AppConfig controls the operational HTTP server.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// DiscordConfig holds the platform connection values.
type DiscordConfig struct {
	Token        string
	EntryCommand string
}

// TicketsConfig maps each ticket type to its category and ping targets.
type TicketsConfig struct {
	Categories map[domain.TicketType]string
	Pings      map[domain.TicketType][]string

	// RevokeClaimerSendOnClose controls whether closing a ticket also
	// strips the claimer's send permission. The historical behavior is to
	// leave it, so the claimer can still post internal notes after close.
	RevokeClaimerSendOnClose bool
}

// CounterBackend selects where ticket numbers are persisted.
type CounterBackend string

const (
	CounterBackendFile  CounterBackend = "file"
	CounterBackendRedis CounterBackend = "redis"
)

// CounterConfig holds counter persistence values.
type CounterConfig struct {
	Backend CounterBackend
	File    string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TranscriptConfig controls where closed-ticket transcripts go.
type TranscriptConfig struct {
	Dir          string
	LogChannelID string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. The Discord token is the only hard requirement.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := CounterBackend(getEnv("COUNTER_BACKEND", string(CounterBackendFile)))
	if backend != CounterBackendFile && backend != CounterBackendRedis {
		return nil, fmt.Errorf("invalid COUNTER_BACKEND %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "support-ticket-bot"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "8090"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Discord: DiscordConfig{
			Token:        token,
			EntryCommand: getEnv("ENTRY_COMMAND", "post-support"),
		},
		Tickets: TicketsConfig{
			Categories:               loadCategories(),
			Pings:                    loadPings(),
			RevokeClaimerSendOnClose: getEnvAsBool("CLOSE_REVOKE_CLAIMER_SEND", false),
		},
		Counter: CounterConfig{
			Backend: backend,
			File:    getEnv("COUNTER_FILE", "tickets.json"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Transcript: TranscriptConfig{
			Dir:          getEnv("TRANSCRIPTS_DIR", "transcripts"),
			LogChannelID: os.Getenv("TRANSCRIPT_LOG_CHANNEL"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

func loadCategories() map[domain.TicketType]string {
	categories := make(map[domain.TicketType]string)
	for _, t := range domain.TicketTypes() {
		if id := os.Getenv(envKeyForType("TICKET_CATEGORY_", t)); id != "" {
			categories[t] = id
		}
	}
	return categories
}

func loadPings() map[domain.TicketType][]string {
	pings := make(map[domain.TicketType][]string)
	for _, t := range domain.TicketTypes() {
		raw := os.Getenv(envKeyForType("TICKET_PINGS_", t))
		if raw == "" {
			continue
		}
		var ids []string
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			pings[t] = ids
		}
	}
	return pings
}

func envKeyForType(prefix string, t domain.TicketType) string {
	return prefix + strings.ToUpper(string(t))
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
