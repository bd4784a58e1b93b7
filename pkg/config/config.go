package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Google        GoogleConfig
	RateLimit     RateLimitConfig
	Notifications NotificationConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	FrontendURL string
	AutoMigrate bool
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

type JWTConfig struct {
	Secret         string
	ExpiryHours    int
	RememberMeDays int
}

// GoogleConfig enables ID-token verification for Google sign-in when ClientID is set.
type GoogleConfig struct {
	ClientID string
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type NotificationConfig struct {
	RetentionDays int
	PurgeCron     string
}

// DSN prefers DATABASE_URL when present.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (j *JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryHours) * time.Hour
}

func (j *JWTConfig) RememberMeExpiry() time.Duration {
	return time.Duration(j.RememberMeDays) * 24 * time.Hour
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsDevelopment() bool {
	return s.Env == "development"
}

// AllowedOrigins returns the CORS origins; empty means the router default.
func (s *ServerConfig) AllowedOrigins() []string {
	if s.FrontendURL == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(s.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (n *NotificationConfig) Retention() time.Duration {
	return time.Duration(n.RetentionDays) * 24 * time.Hour
}

func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "planit")
	v.SetDefault("DATABASE_PASSWORD", "planit_secret")
	v.SetDefault("DATABASE_NAME", "planit")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_REMEMBER_ME_DAYS", 30)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("NOTIFICATION_RETENTION_DAYS", 90)
	v.SetDefault("NOTIFICATION_PURGE_CRON", "0 3 * * *")

	// Load from .env file if present
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("SERVER_HOST"),
			Port:        v.GetInt("SERVER_PORT"),
			Env:         v.GetString("SERVER_ENV"),
			FrontendURL: v.GetString("FRONTEND_URL"),
			AutoMigrate: v.GetBool("AUTO_MIGRATE"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DATABASE_HOST"),
			Port:     v.GetInt("DATABASE_PORT"),
			User:     v.GetString("DATABASE_USER"),
			Password: v.GetString("DATABASE_PASSWORD"),
			Name:     v.GetString("DATABASE_NAME"),
			SSLMode:  v.GetString("DATABASE_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			ExpiryHours:    v.GetInt("JWT_EXPIRY_HOURS"),
			RememberMeDays: v.GetInt("JWT_REMEMBER_ME_DAYS"),
		},
		Google: GoogleConfig{
			ClientID: v.GetString("GOOGLE_CLIENT_ID"),
		},
		RateLimit: RateLimitConfig{
			Requests:      v.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Notifications: NotificationConfig{
			RetentionDays: v.GetInt("NOTIFICATION_RETENTION_DAYS"),
			PurgeCron:     v.GetString("NOTIFICATION_PURGE_CRON"),
		},
	}

	return cfg, nil
}
