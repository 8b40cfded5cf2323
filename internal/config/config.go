package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	GoogleCalendar GoogleCalendarConfig `toml:"google_calendar"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`     // секунды
	WriteTimeout    int    `toml:"write_timeout"`    // секунды
	IdleTimeout     int    `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int    `toml:"shutdown_timeout"` // секунды
	AdminToken      string `toml:"admin_token"`      // токен для защищенных маршрутов
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// GoogleCalendarConfig настройки интеграции с Google Calendar
type GoogleCalendarConfig struct {
	// CalendarIDs список календарей практики; события читаются из всех,
	// записи создаются в первом (primary)
	CalendarIDs     []string `toml:"calendar_ids"`
	CredentialsFile string   `toml:"credentials_file"` // JSON сервисного аккаунта
	Timeout         int      `toml:"timeout"`          // секунды
}

// BookingConfig правила бронирования
type BookingConfig struct {
	Timezone               string   `toml:"timezone"`                  // таймзона практики
	SlotIntervalMinutes    int      `toml:"slot_interval_minutes"`     // кадентность слотов
	BufferMinutes          int      `toml:"buffer_minutes"`            // пауза между приёмами
	QuickSlotCount         int      `toml:"quick_slot_count"`          // количество быстрых опций
	QuickPickHorizonMonths int      `toml:"quick_pick_horizon_months"` // горизонт поиска быстрых опций
	MarkerKeyword          string   `toml:"marker_keyword"`            // summary-маркер продления часов
	PersonalKeywords       []string `toml:"personal_keywords"`
	AdminBlockKeywords     []string `toml:"admin_block_keywords"`
	AdminBlockPrefix       string   `toml:"admin_block_prefix"`
}

// Load загружает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if len(c.GoogleCalendar.CalendarIDs) == 0 {
		return fmt.Errorf("config: at least one google_calendar.calendar_ids entry is required")
	}
	if c.Booking.Timezone == "" {
		return fmt.Errorf("config: booking.timezone is required")
	}
	if c.Booking.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("config: booking.slot_interval_minutes must be positive")
	}
	if c.Booking.BufferMinutes < 0 {
		return fmt.Errorf("config: booking.buffer_minutes must not be negative")
	}
	return nil
}
