package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Auth          AuthConfig           `koanf:"auth"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"required"`
	WriteTimeout int    `koanf:"write_timeout" validate:"required"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	// URL is a postgres connection string. Empty selects the in-memory store.
	URL string `koanf:"url"`
}

type AuthConfig struct {
	// Tokens holds comma-separated "token=service" pairs.
	Tokens string `koanf:"tokens"`
}

// defaultTokens is the development token table used when none is configured.
var defaultTokens = map[string]string{
	"svc-reports-123":  "reports",
	"svc-payments-456": "payments",
	"svc-chat-789":     "chat",
}

// TokenMap parses the configured token table into token -> service form.
func (a AuthConfig) TokenMap() map[string]string {
	if strings.TrimSpace(a.Tokens) == "" {
		return defaultTokens
	}
	m := make(map[string]string)
	for _, pair := range strings.Split(a.Tokens, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, service, _ := strings.Cut(pair, "=")
		token = strings.TrimSpace(token)
		if token != "" {
			m[token] = strings.TrimSpace(service)
		}
	}
	return m
}

// LoadApp loads configuration from LOGCENTRAL_-prefixed environment
// variables using koanf. Section and key are separated by a double
// underscore, e.g. LOGCENTRAL_SERVER__PORT=8000. Invalid configuration is
// fatal.
func LoadApp() *Config {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")
	err := k.Load(env.Provider("LOGCENTRAL_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "LOGCENTRAL_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load env variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal config")
	}
	applyDefaults(cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		logger.Fatal().Err(err).Msg("could not validate config")
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}
	cfg.Observability.ServiceName = "logcentral"
	cfg.Observability.Environment = cfg.Primary.Env
	if err := cfg.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Primary.Env == "" {
		cfg.Primary.Env = "development"
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
}
