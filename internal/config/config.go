package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the reminder service.
//
// Channel credentials and sender identities live here and are passed into
// the adapter constructors explicitly; business logic never reads the
// process environment directly.
type Config struct {
	Server    Server         `mapstructure:"server"`
	Database  Database       `mapstructure:"database"`
	Redis     Redis          `mapstructure:"redis"`
	SMS       SMS            `mapstructure:"sms"`
	Email     Email          `mapstructure:"email"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Retry     retry.Strategy `mapstructure:"retry"`
	Workers   struct {
		Count int `mapstructure:"count"` // number of concurrent child processors, 1 = sequential
	} `mapstructure:"workers"`
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port" validate:"required"`
}

// Database holds database master and slave configuration.
type Database struct {
	Master DatabaseNode   `mapstructure:"master"`
	Slaves []DatabaseNode `mapstructure:"slaves"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DatabaseNode holds connection parameters for a single database node.
type DatabaseNode struct {
	Host    string `mapstructure:"host" validate:"required"`
	Port    string `mapstructure:"port" validate:"required"`
	User    string `mapstructure:"user" validate:"required"`
	Pass    string `mapstructure:"pass"`
	Name    string `mapstructure:"name" validate:"required"`
	SSLMode string `mapstructure:"ssl_mode"`
}

// Redis holds connection parameters for the sent-marker store.
type Redis struct {
	Address  string `mapstructure:"address" validate:"required"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// SMS holds credentials for the bulk-SMS gateway. An empty username or
// API key leaves the SMS channel unconfigured; attempts on it are then
// skipped without a network call.
type SMS struct {
	Username string        `mapstructure:"username"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	SenderID string        `mapstructure:"sender_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Configured reports whether the SMS gateway credentials are present.
func (s SMS) Configured() bool {
	return s.Username != "" && s.APIKey != ""
}

// Email holds SMTP configuration for the email channel. An empty host
// leaves the email channel unconfigured.
type Email struct {
	SMTPHost string        `mapstructure:"smtp_host"`
	SMTPPort int           `mapstructure:"smtp_port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Configured reports whether the SMTP credentials are present.
func (e Email) Configured() bool {
	return e.SMTPHost != "" && e.Username != "" && e.Password != ""
}

// Scheduler holds the daily trigger configuration.
type Scheduler struct {
	CronSpec string `mapstructure:"cron_spec" validate:"required"` // e.g. "0 8 * * *"
	Timezone string `mapstructure:"timezone" validate:"required"`  // e.g. "Africa/Nairobi"
}

// DSN returns the PostgreSQL DSN string for connecting to this database node.
func (n DatabaseNode) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		n.User, n.Pass, n.Host, n.Port, n.Name, n.SSLMode,
	)
}

// mustBindEnv binds critical environment variables to Viper keys.
//
// It panics if any environment variable cannot be bound.
func mustBindEnv() {
	bindings := map[string]string{
		"database.master.host": "DB_HOST",
		"database.master.port": "DB_PORT",
		"database.master.user": "DB_USER",
		"database.master.pass": "DB_PASSWORD",
		"database.master.name": "DB_NAME",

		"redis.address":  "REDIS_ADDRESS",
		"redis.password": "REDIS_PASSWORD",
		"redis.database": "REDIS_DATABASE",

		"sms.username":  "AT_USERNAME",
		"sms.api_key":   "AT_APIKEY",
		"sms.sender_id": "AT_SENDER_ID",

		"email.smtp_host": "SMTP_HOST",
		"email.smtp_port": "SMTP_PORT",
		"email.username":  "SMTP_USER",
		"email.password":  "SMTP_PASS",
		"email.from":      "SMTP_FROM",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind env %s", env)
		}
	}
}

// Must loads the configuration from file and environment variables.
//
// It panics if configuration cannot be read or unmarshalled.
func Must() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to read config")
	}

	mustBindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msgf("failed to unmarshal config: %v", err)
	}

	return &cfg
}
