package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, reminder offsets, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
	Reminder   ReminderConfig
	Messaging  MessagingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// SchedulingConfig carries the slot arithmetic defaults applied when an agent
// has not tuned them explicitly.
type SchedulingConfig struct {
	DefaultViewingDurationMin int    `envconfig:"SCHEDULING_DEFAULT_VIEWING_DURATION_MIN" default:"60"`
	DefaultBufferMin          int    `envconfig:"SCHEDULING_DEFAULT_BUFFER_MIN" default:"30"`
	DefaultTimezone           string `envconfig:"SCHEDULING_DEFAULT_TIMEZONE" default:"Asia/Dubai"`
}

// ReminderConfig tunes the delayed-job worker. LongLead/ShortLead are the
// offsets subtracted from a viewing's scheduled time.
type ReminderConfig struct {
	LongLead     time.Duration `envconfig:"REMINDER_LONG_LEAD" default:"24h"`
	ShortLead    time.Duration `envconfig:"REMINDER_SHORT_LEAD" default:"2h"`
	PollInterval time.Duration `envconfig:"REMINDER_POLL_INTERVAL" default:"30s"`
	MaxAttempts  int32         `envconfig:"REMINDER_MAX_ATTEMPTS" default:"3"`
	BatchSize    int32         `envconfig:"REMINDER_BATCH_SIZE" default:"25"`
}

type MessagingConfig struct {
	BaseURL string        `envconfig:"MESSAGING_BASE_URL" default:"http://localhost:9090"`
	APIKey  string        `envconfig:"MESSAGING_API_KEY" default:""`
	Sender  string        `envconfig:"MESSAGING_SENDER" default:"viewings"`
	Timeout time.Duration `envconfig:"MESSAGING_TIMEOUT" default:"10s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		Scheduling: SchedulingConfig{
			DefaultViewingDurationMin: 60,
			DefaultBufferMin:          30,
			DefaultTimezone:           "Asia/Dubai",
		},
		Reminder: ReminderConfig{
			LongLead:     24 * time.Hour,
			ShortLead:    2 * time.Hour,
			PollInterval: 100 * time.Millisecond,
			MaxAttempts:  3,
			BatchSize:    25,
		},
		Messaging: MessagingConfig{
			BaseURL: "http://localhost:9090",
			Sender:  "viewings",
			Timeout: time.Second,
		},
	}
}
