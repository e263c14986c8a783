package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env             string   `env:"APP_ENV" envDefault:"development"`
	MongoURI        string   `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/agency"`
	MongoDB         string   `env:"MONGO_DB"`
	ServerAddr      string   `env:"SERVER_ADDR" envDefault:":5000"`
	FrontendOrigins []string `env:"FRONTEND_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	RateLimitContact   int `env:"RATE_LIMIT_CONTACT" envDefault:"5"`
	RateLimitLogin     int `env:"RATE_LIMIT_LOGIN" envDefault:"10"`
	RateLimitWindowSec int `env:"RATE_LIMIT_WINDOW_SEC" envDefault:"900"`

	RedisURL        string `env:"REDIS_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`

	AdminAPIKey      string `env:"ADMIN_API_KEY"`
	JWTSecret        string `env:"JWT_SECRET"`
	JWTExpireMinutes int    `env:"JWT_EXPIRE_MINUTES" envDefault:"10080"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	BrevoAPIKey      string `env:"BREVO_API_KEY"`
	BrevoSandbox     bool   `env:"BREVO_SANDBOX" envDefault:"false"`
	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser         string `env:"SMTP_USER"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	MailSenderEmail  string `env:"MAIL_SENDER_EMAIL"`
	MailSenderName   string `env:"MAIL_SENDER_NAME" envDefault:"Agency"`
	MailNotifyEmail  string `env:"MAIL_NOTIFY_EMAIL"`

	TimezoneName string `env:"TZ" envDefault:"UTC"`

	loc *time.Location
}

// Load reads .env files (without overriding the process environment) and
// parses the configuration.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, err
	}
	cfg.loc = loc

	if cfg.MongoDB == "" {
		cfg.MongoDB = mongoDBFromURI(cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "agency"
	}
	return cfg, nil
}

// Location is the timezone used for persisted timestamps.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSec) * time.Second
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpireMinutes) * time.Minute
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// Only the first path segment names the database.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}

// loadDotEnv honours DOTENV_PATH, otherwise loads .env.local and .env from
// the working directory or the nearest parent that has one.
func loadDotEnv() {
	if p := strings.TrimSpace(os.Getenv("DOTENV_PATH")); p != "" {
		_ = godotenv.Load(p)
		return
	}

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	for dir := wd; ; {
		loaded := false
		for _, name := range []string{".env.local", ".env"} {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := godotenv.Load(p); err == nil {
				loaded = true
			}
		}
		if loaded {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
