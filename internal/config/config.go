package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// LogFile, when set, receives a copy of all logs and is rotated by size.
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	SQLiteDriver          string
	SQLiteDSN             string
	SQLitePath            string
	SQLiteMaxOpenConns    int
	SQLiteMaxIdleConns    int
	SQLiteConnMaxLifetime time.Duration

	OWMAPIKey          string
	OWMOneCallURL      string
	OWMAirPollutionURL string
	Latitude           float64
	Longitude          float64
	LocationName       string
	Timezone           *time.Location
	FetchTimeout       time.Duration
	FetchRatePerSec    float64

	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SMTPFrom          string
	Recipient         string
	BCCRecipients     []string
	SendFailureNotice bool

	// ScheduleTime is the daily send time, HH:MM in Timezone.
	ScheduleTime    string
	CleanupInterval time.Duration

	// MQTTBroker empty disables summary publication.
	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string
	MQTTTopic    string
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		LogLevel:           level,
		HTTPAddr:           envString("HTTP_ADDR", ":8080"),
		LogFile:            envString("LOG_FILE", ""),
		SQLiteDriver:       envString("SQLITE_DRIVER", "sqlite3"),
		SQLiteDSN:          envString("SQLITE_DSN", ""),
		SQLitePath:         envString("SQLITE_PATH", "data/weather-mail.db"),
		OWMAPIKey:          envString("OWM_API_KEY", ""),
		OWMOneCallURL:      envString("OWM_ONECALL_URL", "https://api.openweathermap.org/data/3.0/onecall"),
		OWMAirPollutionURL: envString("OWM_AIR_POLLUTION_URL", "https://api.openweathermap.org/data/2.5/air_pollution"),
		LocationName:       envString("WEATHER_LOCATION_NAME", "Seoul"),
		SMTPHost:           envString("SMTP_HOST", ""),
		SMTPUser:           envString("SMTP_USER", ""),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           envString("SMTP_FROM", ""),
		Recipient:          envString("RECIPIENT", ""),
		BCCRecipients:      splitList(os.Getenv("BCC_RECIPIENTS")),
		ScheduleTime:       envString("SCHEDULE_TIME", "07:00"),
		MQTTBroker:         envString("MQTT_BROKER", ""),
		MQTTClientID:       envString("MQTT_CLIENT_ID", "weather-mail"),
		MQTTTopic:          envString("MQTT_TOPIC", "weather/daily-summary"),
	}

	if cfg.LogMaxSizeMB, err = envInt("LOG_MAX_SIZE_MB", 10); err != nil {
		return Config{}, err
	}
	if cfg.LogMaxBackups, err = envInt("LOG_MAX_BACKUPS", 5); err != nil {
		return Config{}, err
	}
	if cfg.SQLiteMaxOpenConns, err = envInt("SQLITE_MAX_OPEN_CONNS", 1); err != nil {
		return Config{}, err
	}
	if cfg.SQLiteMaxIdleConns, err = envInt("SQLITE_MAX_IDLE_CONNS", 1); err != nil {
		return Config{}, err
	}
	if cfg.SQLiteConnMaxLifetime, err = envDuration("SQLITE_CONN_MAX_LIFETIME", 0); err != nil {
		return Config{}, err
	}
	if cfg.Latitude, err = envFloat("WEATHER_LAT", 37.541); err != nil {
		return Config{}, err
	}
	if cfg.Longitude, err = envFloat("WEATHER_LON", 126.986); err != nil {
		return Config{}, err
	}
	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return Config{}, fmt.Errorf("WEATHER_LAT out of range: %v (must be -90..90)", cfg.Latitude)
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return Config{}, fmt.Errorf("WEATHER_LON out of range: %v (must be -180..180)", cfg.Longitude)
	}

	tzName := envString("WEATHER_TIMEZONE", "Asia/Seoul")
	if cfg.Timezone, err = time.LoadLocation(tzName); err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_TIMEZONE %q: %w", tzName, err)
	}

	if cfg.FetchTimeout, err = envDuration("FETCH_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FetchRatePerSec, err = envFloat("FETCH_RATE_PER_SEC", 1); err != nil {
		return Config{}, err
	}
	if cfg.FetchRatePerSec <= 0 {
		return Config{}, fmt.Errorf("FETCH_RATE_PER_SEC must be positive, got %v", cfg.FetchRatePerSec)
	}

	if cfg.SMTPPort, err = envInt("SMTP_PORT", 587); err != nil {
		return Config{}, err
	}
	if cfg.SendFailureNotice, err = envBool("SEND_FAILURE_NOTICE", true); err != nil {
		return Config{}, err
	}

	if _, _, err := ParseClock(cfg.ScheduleTime); err != nil {
		return Config{}, fmt.Errorf("invalid SCHEDULE_TIME: %w", err)
	}
	if cfg.CleanupInterval, err = envDuration("CLEANUP_INTERVAL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.CleanupInterval <= 0 {
		return Config{}, fmt.Errorf("CLEANUP_INTERVAL must be positive, got %v", cfg.CleanupInterval)
	}

	if cfg.MQTTPort, err = envInt("MQTT_PORT", 1883); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

// ParseClock parses a zero-padded HH:MM time of day.
func ParseClock(s string) (hour, minute int, err error) {
	if len(s) != len("15:04") {
		return 0, 0, fmt.Errorf("%q is not HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not HH:MM: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
