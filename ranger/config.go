package ranger

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/logger"
)

// Config holds the settings a *Ranger is built from,
// read from environment variables by NewConfig.
type Config struct {
	Env      signpost.Environment `env:"ENVIRONMENT" envDefault:"DEVELOPMENT"`
	BaseURL  string               `env:"BASE_URL"`
	Host     string               `env:"HOST" envDefault:"localhost"`
	Port     string               `env:"PORT" envDefault:":3000"`
	LogLevel logger.LogLevel      `env:"LOG_LEVEL" envDefault:"INFO"`

	ContactUs string `env:"CONTACT_US_EMAIL"`

	ServerIdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ServerReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	ServerWriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"5s"`

	SessionName       string `env:"SESSION_NAME" envDefault:"signpost"`
	SessionAuthKey    string `env:"SESSION_AUTH_KEY"`
	SessionEncryptKey string `env:"SESSION_ENCRYPTION_KEY"`
	SessionMaxAge     int    `env:"SESSION_MAX_AGE" envDefault:"604800"`

	RedisURI      string `env:"REDIS_URI"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	UseXSendfile   bool          `env:"USE_X_SENDFILE"`
	SendFileMaxAge time.Duration `env:"SEND_FILE_MAX_AGE" envDefault:"12h"`

	CORSOrigin string  `env:"CORS_ORIGIN"`
	RateLimit  float64 `env:"RATE_LIMIT" envDefault:"5"`
	RateBurst  int     `env:"RATE_BURST" envDefault:"20"`
}

// NewConfig reads a Config from environment variables,
// including those set in a .env file in the working directory.
func NewConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s", signpost.ErrBadConfig, err)
	}

	return cfg, nil
}

// Addr returns the address the web server listens on.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}

	return ":" + c.Port
}

// URL returns the base URL the application is served from.
//
// Without BASE_URL, the URL is built from HOST and PORT.
func (c Config) URL() (*url.URL, error) {
	raw := c.BaseURL
	if raw == "" {
		raw = "http://" + c.Host + c.Addr()
	}

	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL %q: %s", signpost.ErrBadConfig, raw, err)
	}

	return u, nil
}
