package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrInvalidDelay   = errors.New("error getting CMP_FETCH_MIN_DELAY/CMP_FETCH_MAX_DELAY: delays must be non-negative and min must not exceed max")
	ErrInvalidTimeout = errors.New("error getting CMP_FETCH_TIMEOUT: timeout must be positive")
	ErrNoUserAgents   = errors.New("error getting CMP_FETCH_USER_AGENTS: identity pool is empty")
)

// DefaultUserAgents is the identity pool rotated across fetches when CMP_FETCH_USER_AGENTS is unset.
func DefaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.93 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
	}
}

type Config struct {
	Env         string // Env is the current environment: local, development, production.
	LogDir      string // LogDir holds the CSV comparison logs.
	StoragePath string // StoragePath is the SQLite archive file; empty disables the archive.
	HTTP        HTTP
	Fetch       Fetch
	Tg          Telegram
}

type HTTP struct {
	Addr      string
	GinMode   string
	RateRPS   float64 // RateRPS is the sustained request rate per client.
	RateBurst int
}

type Fetch struct {
	Timeout        time.Duration
	MinDelay       time.Duration // MinDelay is the inclusive lower bound of the politeness pause.
	MaxDelay       time.Duration // MaxDelay is the exclusive upper bound of the politeness pause.
	UserAgents     []string
	TLSFingerprint bool // TLSFingerprint switches the transport to a Chrome ClientHello.
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token; empty disables notifications.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// MustLoad loads the configuration from an optional .env file and environment variables.
func MustLoad() *Config {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	v.SetEnvPrefix("CMP")
	v.AutomaticEnv()

	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_DIR", "data")
	v.SetDefault("STORAGE_PATH", "")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("RATE_RPS", 2.0)
	v.SetDefault("RATE_BURST", 5)
	v.SetDefault("FETCH_TIMEOUT", "15s")
	v.SetDefault("FETCH_MIN_DELAY", "1s")
	v.SetDefault("FETCH_MAX_DELAY", "3s")
	v.SetDefault("FETCH_USER_AGENTS", DefaultUserAgents())
	v.SetDefault("FETCH_TLS_FINGERPRINT", false)
	v.SetDefault("TELEGRAM_TIMEOUT", "15s")

	cfg := &Config{
		Env:         v.GetString("ENV"),
		LogDir:      v.GetString("LOG_DIR"),
		StoragePath: v.GetString("STORAGE_PATH"),
		HTTP: HTTP{
			Addr:      v.GetString("HTTP_ADDR"),
			GinMode:   v.GetString("GIN_MODE"),
			RateRPS:   v.GetFloat64("RATE_RPS"),
			RateBurst: v.GetInt("RATE_BURST"),
		},
		Fetch: Fetch{
			Timeout:        v.GetDuration("FETCH_TIMEOUT"),
			MinDelay:       v.GetDuration("FETCH_MIN_DELAY"),
			MaxDelay:       v.GetDuration("FETCH_MAX_DELAY"),
			UserAgents:     userAgents(v),
			TLSFingerprint: v.GetBool("FETCH_TLS_FINGERPRINT"),
		},
		Tg: Telegram{
			Token:   v.GetString("TELEGRAM_TOKEN"),
			Timeout: v.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}

	if err := cfg.Fetch.Validate(); err != nil {
		panic(err)
	}

	return cfg
}

// Validate checks the fetch politeness settings.
func (f Fetch) Validate() error {
	if f.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if f.MinDelay < 0 || f.MaxDelay < 0 || f.MinDelay > f.MaxDelay {
		return ErrInvalidDelay
	}
	if len(f.UserAgents) == 0 {
		return ErrNoUserAgents
	}
	return nil
}

// userAgentSeparators never occur inside a browser User-Agent; commas and spaces do.
const userAgentSeparators = "|\n"

// userAgents splits the env override on '|' or newlines.
func userAgents(v *viper.Viper) []string {
	raw := v.Get("FETCH_USER_AGENTS")
	str, ok := raw.(string)
	if !ok {
		return v.GetStringSlice("FETCH_USER_AGENTS")
	}

	var agents []string
	for _, part := range strings.FieldsFunc(str, func(r rune) bool {
		return strings.ContainsRune(userAgentSeparators, r)
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			agents = append(agents, trimmed)
		}
	}
	return agents
}
