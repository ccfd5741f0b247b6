package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SchedulingService/pkg/tzconv"
)

// ErrInvalidConfig возвращается, когда конфигурация содержит недопустимые значения
var ErrInvalidConfig = errors.New("config: invalid value")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Database   DatabaseConfig   `toml:"database"`
	Jobs       JobsConfig       `toml:"jobs"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// SchedulingConfig настройки планирования
type SchedulingConfig struct {
	// Timezone часовой пояс, в котором считается "сегодня" для списков бронирований и доли неявок
	Timezone string `toml:"timezone"`
	// WaitlistNotifyTTL сколько минут запись может находиться в notified до перевода в expired
	WaitlistNotifyTTL int    `toml:"waitlist_notify_ttl"`
	ICSProduct        string `toml:"ics_product"`
	ICSDomain         string `toml:"ics_domain"`
}

// DatabaseConfig настройки PostgreSQL для снимков состояния
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// JobsConfig расписания фоновых задач в формате cron
type JobsConfig struct {
	Enabled        bool   `toml:"enabled"`
	WaitlistExpiry string `toml:"waitlist_expiry"`
	SnapshotSave   string `toml:"snapshot_save"`
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// WaitlistTTL TTL записи листа ожидания в статусе notified
func (s SchedulingConfig) WaitlistTTL() time.Duration {
	return time.Duration(s.WaitlistNotifyTTL) * time.Minute
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "scheduling-service",
			Path:        "/metrics",
		},
		Scheduling: SchedulingConfig{
			Timezone:          "UTC",
			WaitlistNotifyTTL: 1440,
			ICSProduct:        "SMC",
			ICSDomain:         "scheduling.local",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Jobs: JobsConfig{
			WaitlistExpiry: "*/5 * * * *",
			SnapshotSave:   "*/1 * * * *",
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logs.level=%q", ErrInvalidConfig, c.Logs.Level)
	}

	if _, err := tzconv.LoadLocation(c.Scheduling.Timezone); err != nil {
		return fmt.Errorf("%w: scheduling.timezone=%q", ErrInvalidConfig, c.Scheduling.Timezone)
	}

	if c.Scheduling.WaitlistNotifyTTL <= 0 {
		return fmt.Errorf("%w: scheduling.waitlist_notify_ttl must be positive", ErrInvalidConfig)
	}

	if c.Scheduling.ICSProduct == "" || c.Scheduling.ICSDomain == "" {
		return fmt.Errorf("%w: scheduling.ics_product and scheduling.ics_domain are required", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	if c.Database.Enabled && c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required when database is enabled", ErrInvalidConfig)
	}

	if c.Jobs.Enabled {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		for name, spec := range map[string]string{
			"jobs.waitlist_expiry": c.Jobs.WaitlistExpiry,
			"jobs.snapshot_save":   c.Jobs.SnapshotSave,
		} {
			if _, err := parser.Parse(spec); err != nil {
				return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, spec, err)
			}
		}
	}

	return nil
}
