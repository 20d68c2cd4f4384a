package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Auth        AuthConfig        `toml:"auth"`
	Credentials CredentialsConfig `toml:"credentials"`
	Calendar    CalendarConfig    `toml:"google_calendar"`
	SMTP        SMTPConfig        `toml:"smtp"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки авторизации сотрудников
type AuthConfig struct {
	StaffToken string `toml:"staff_token"`
}

// CredentialsConfig настройки выдачи учетных данных бронирования
type CredentialsConfig struct {
	// Pepper серверный секрет, подмешиваемый в хеш ключа доступа.
	// Задается через переменную окружения, в файле держать не нужно.
	Pepper string `toml:"pepper"`
}

// CalendarConfig настройки внешнего календаря (Google Calendar)
type CalendarConfig struct {
	Enabled         bool   `toml:"enabled"`
	CredentialsFile string `toml:"credentials_file"`
	CalendarID      string `toml:"calendar_id"`
}

// SMTPConfig настройки почтовых уведомлений
type SMTPConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	FromName string `toml:"from_name"`
	// RatePerSecond ограничение скорости отправки писем
	RatePerSecond float64 `toml:"rate_per_second"`
	Burst         int     `toml:"burst"`
}

// Load загружает конфигурацию из toml файла.
// Секреты (pepper, staff token, пароли) можно переопределить через
// переменные окружения — файл конфигурации попадает в репозиторий,
// секреты не должны.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JLA_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JLA_STAFF_TOKEN"); v != "" {
		cfg.Auth.StaffToken = v
	}
	if v := os.Getenv("JLA_ACCESS_KEY_PEPPER"); v != "" {
		cfg.Credentials.Pepper = v
	}
	if v := os.Getenv("JLA_SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Credentials.Pepper == "" {
		return fmt.Errorf("config: credentials pepper is required (JLA_ACCESS_KEY_PEPPER)")
	}
	if c.Auth.StaffToken == "" {
		return fmt.Errorf("config: staff token is required (JLA_STAFF_TOKEN)")
	}
	return nil
}
