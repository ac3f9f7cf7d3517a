package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env string `mapstructure:"env"`

	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	JWT struct {
		Secret                 string `mapstructure:"secret"`
		ExpirationHours        int    `mapstructure:"expiration_hours"`
		RefreshExpirationHours int    `mapstructure:"refresh_expiration_hours"`
		Issuer                 string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Mail struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
	} `mapstructure:"mail"`

	Alerts struct {
		LeadDays        []int    `mapstructure:"lead_days"`
		AdminEmails     []string `mapstructure:"admin_emails"`
		RunAt           string   `mapstructure:"run_at"`
		ScheduleEnabled bool     `mapstructure:"schedule_enabled"`
		LockTTLMinutes  int      `mapstructure:"lock_ttl_minutes"`
	} `mapstructure:"alerts"`

	Booking struct {
		// When false, an available period may omit check-in/check-out.
		RequireDatesWhenAvailable bool `mapstructure:"require_dates_when_available"`
	} `mapstructure:"booking"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Sentry struct {
		DSN     string `mapstructure:"dsn"`
		Release string `mapstructure:"release"`
	} `mapstructure:"sentry"`

	Timezone string `mapstructure:"timezone"`
}

// Load reads configs/config.yaml (optional), then applies environment overrides.
func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath())
	v.AutomaticEnv()
	setDefaults(v)

	// A missing config file is fine; a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.refresh_expiration_hours", 168)
	v.SetDefault("jwt.issuer", "property-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "property_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "no-reply@localhost")
	v.SetDefault("alerts.lead_days", []int{5, 1})
	v.SetDefault("alerts.run_at", "08:00")
	v.SetDefault("alerts.schedule_enabled", true)
	v.SetDefault("alerts.lock_ttl_minutes", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("timezone", "UTC")
}

func applyEnv(cfg *Config) {
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}

	// Database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if n, ok := envInt("DB_PORT"); ok {
		cfg.Database.Port = n
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if n, ok := envInt("REDIS_PORT"); ok {
		cfg.Redis.Port = n
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.Mail.Host = host
		cfg.Mail.Enabled = true
	}
	if n, ok := envInt("SMTP_PORT"); ok {
		cfg.Mail.Port = n
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		cfg.Mail.Username = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		cfg.Mail.Password = pass
	}
	if from := os.Getenv("SMTP_FROM"); from != "" {
		cfg.Mail.From = from
	}

	if emails := os.Getenv("ADMIN_EMAILS"); emails != "" {
		cfg.Alerts.AdminEmails = SplitList(emails)
	}
	if days := os.Getenv("ALERT_DAYS"); days != "" {
		if parsed, err := ParseLeadDays(SplitList(days)); err == nil {
			cfg.Alerts.LeadDays = parsed
		}
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		cfg.Sentry.DSN = dsn
	}
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	for _, d := range c.Alerts.LeadDays {
		if d < 0 {
			return fmt.Errorf("config: negative alert lead day %d", d)
		}
	}
	if _, _, err := c.AlertRunAt(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// AlertRunAt returns the hour and minute of the daily alert sweep.
func (c *Config) AlertRunAt() (int, int, error) {
	t, err := time.Parse("15:04", c.Alerts.RunAt)
	if err != nil {
		return 0, 0, fmt.Errorf("config: invalid alerts.run_at %q: %w", c.Alerts.RunAt, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Location resolves the business timezone used for "today".
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DatabaseURL builds the pgx connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseLeadDays converts textual day offsets to integers.
func ParseLeadDays(values []string) ([]int, error) {
	days := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid lead day %q: %w", v, err)
		}
		days = append(days, n)
	}
	return days, nil
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
