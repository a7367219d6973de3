package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/storm-alert-notifier/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Zone        string
	FeedBaseURL string

	NotifyURL     string
	SendUpdates   bool
	NotifyTimeout time.Duration

	CachePath       string
	CacheMaxEntries int

	FetchTimeout time.Duration
	PollSchedule string
	Policy       domain.Policy

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional notification-event sink.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "20s")
	if err != nil {
		return nil, err
	}
	notifyTimeout, err := parseDuration("NOTIFY_TIMEOUT", "20s")
	if err != nil {
		return nil, err
	}

	policy, err := parsePolicy()
	if err != nil {
		return nil, err
	}

	cacheMaxEntries, err := parsePositiveInt("CACHE_MAX_ENTRIES", 10)
	if err != nil {
		return nil, err
	}

	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}
	sendUpdates, err := parseBool("SEND_UPDATES", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Zone:        os.Getenv("NWS_ZONE"),
		FeedBaseURL: sharedcfg.EnvOrDefault("FEED_BASE_URL", "https://alerts.weather.gov/cap/wwaatmget.php"),

		NotifyURL:     os.Getenv("NOTIFY_URL"),
		SendUpdates:   sendUpdates,
		NotifyTimeout: notifyTimeout,

		CachePath:       sharedcfg.EnvOrDefault("CACHE_PATH", "data/alert_cache.json"),
		CacheMaxEntries: cacheMaxEntries,

		FetchTimeout: fetchTimeout,
		PollSchedule: sharedcfg.EnvOrDefault("POLL_SCHEDULE", "*/5 * * * *"),
		Policy:       policy,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "alert-notifications"),
	}

	if cfg.Zone == "" {
		return nil, errors.New("NWS_ZONE is required")
	}
	if cfg.NotifyURL == "" {
		return nil, errors.New("NOTIFY_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

// parsePolicy reads IMPORTANCE_POLICY as a JSON object of field name to
// allowed values. Unset means the default CAP policy. An explicitly empty
// object is rejected: a zero-entry policy would admit every non-expired
// alert, which is never what an operator wants from this knob.
func parsePolicy() (domain.Policy, error) {
	raw := os.Getenv("IMPORTANCE_POLICY")
	if raw == "" {
		return domain.DefaultPolicy(), nil
	}

	var policy domain.Policy
	if err := json.Unmarshal([]byte(raw), &policy); err != nil {
		return nil, fmt.Errorf("invalid IMPORTANCE_POLICY: %w", err)
	}
	if len(policy) == 0 {
		return nil, errors.New("IMPORTANCE_POLICY must not be empty; unset it to use the default policy")
	}
	for field, allowed := range policy {
		if len(allowed) == 0 {
			return nil, fmt.Errorf("IMPORTANCE_POLICY field %q has no allowed values", field)
		}
	}
	return policy, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
