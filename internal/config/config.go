package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	SendinblueAPIKey    string // SENDINBLUE_API_KEY, magic-link delivery through Brevo
	MailFrom            string // MAIL_FROM sender email (default noreply@semdex.mu)
	MagicLinkBaseURL    string // verify endpoint the emailed link points at
	MagicLinkTTL        time.Duration
	AutoMigrate         bool
	SeedOnStart         bool
}

// IsProduction reports whether the app runs with production cookies and logging.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	return FromViper(v)
}

// FromViper builds a Config from an already populated Viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAGIC_LINK_TTL", "15m")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("SEED_ON_START", true)

	port := v.GetString("PORT")
	env := v.GetString("NODE_ENV")
	if env == "" {
		env = v.GetString("APP_ENV")
	}
	if env == "" {
		env = "development"
	}

	dbURL := v.GetString("DATABASE_URL")
	if dbURL == "" {
		switch env {
		case "production":
			dbURL = v.GetString("DATABASE_URL_PROD")
		case "test":
			dbURL = v.GetString("DATABASE_URL_TEST")
		default:
			dbURL = v.GetString("DATABASE_URL_DEV")
		}
	}

	ttl := v.GetDuration("MAGIC_LINK_TTL")
	if ttl <= 0 {
		return nil, errors.New("MAGIC_LINK_TTL must be a positive duration")
	}

	cfg := &Config{
		Env:                 env,
		Port:                port,
		LogLevel:            v.GetString("LOG_LEVEL"),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            v.GetString("REDIS_URL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   v.GetBool("ALLOW_CROSS_SITE_DEV"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		SendinblueAPIKey:    v.GetString("SENDINBLUE_API_KEY"),
		MailFrom:            v.GetString("MAIL_FROM"),
		MagicLinkBaseURL:    magicLinkBaseURL(v.GetString("MAGIC_LINK_BASE_URL"), port),
		MagicLinkTTL:        ttl,
		AutoMigrate:         v.GetBool("AUTO_MIGRATE"),
		SeedOnStart:         v.GetBool("SEED_ON_START"),
	}
	if cfg.IsProduction() && cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required in production")
	}
	return cfg, nil
}

func magicLinkBaseURL(s, port string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "http://localhost:" + port + "/api/v1/auth/magic-link/verify"
	}
	return s
}
