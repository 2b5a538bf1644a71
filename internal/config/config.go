package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Storage   StorageConfig   `toml:"storage"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Engine    EngineConfig    `toml:"engine"`
	Auth      AuthConfig      `toml:"auth"`
	OTP       OTPConfig       `toml:"otp"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Offices   []OfficeConfig  `toml:"offices"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig driver = "postgres" | "memory"
type StorageConfig struct {
	Driver string `toml:"driver"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type EngineConfig struct {
	AutoApprove     bool   `toml:"auto_approve"`
	Timezone        string `toml:"timezone"`
	DefaultOfficeID string `toml:"default_office_id"`
}

// Location часовой пояс, в котором считается "сегодня"
func (e EngineConfig) Location() (*time.Location, error) {
	return time.LoadLocation(e.Timezone)
}

type AuthConfig struct {
	JWTSecret string        `toml:"jwt_secret"`
	TokenTTL  int           `toml:"token_ttl"` // минуты
	Admins    []AdminConfig `toml:"admins"`
}

type AdminConfig struct {
	Email        string `toml:"email"`
	PasswordHash string `toml:"password_hash"` // bcrypt
	Role         string `toml:"role"`
}

type OTPConfig struct {
	Issuer      string `toml:"issuer"`
	TTL         int    `toml:"ttl"` // секунды
	MaxAttempts int    `toml:"max_attempts"`
	ExposeCode  bool   `toml:"expose_code"` // только для разработки
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"` // секунды
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

type OfficeConfig struct {
	ID             string `toml:"id"`
	Name           string `toml:"name"`
	Location       string `toml:"location"`
	TotalCarSlots  int    `toml:"total_car_slots"`
	TotalBikeSlots int    `toml:"total_bike_slots"`
}

func (o OfficeConfig) ToDomain() domain.Office {
	return domain.Office{
		ID:           o.ID,
		Name:         o.Name,
		Location:     o.Location,
		CarCapacity:  o.TotalCarSlots,
		BikeCapacity: o.TotalBikeSlots,
	}
}

// Default значения, которые остаются, если ключа нет в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "parking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "smc-parking-service",
			Path:        "/metrics",
		},
		Engine: EngineConfig{
			AutoApprove:     true,
			Timezone:        "UTC",
			DefaultOfficeID: domain.DefaultOfficeID,
		},
		Auth: AuthConfig{TokenTTL: 24 * 60},
		OTP: OTPConfig{
			Issuer:      "SMC Parking",
			TTL:         600,
			MaxAttempts: 5,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			Topic:        "parking-events",
			WriteTimeout: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 10,
			Burst:             5,
		},
	}
}

// Load читает .env (если есть), TOML-файл и переменные окружения, затем проверяет результат
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if len(cfg.Offices) == 0 {
		cfg.Offices = []OfficeConfig{{
			ID:             domain.DefaultOfficeID,
			Name:           domain.DefaultOfficeName,
			Location:       domain.DefaultOfficeLocation,
			TotalCarSlots:  domain.DefaultCarCapacity,
			TotalBikeSlots: domain.DefaultBikeCapacity,
		}}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := os.LookupEnv("ENGINE_AUTO_APPROVE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: ENGINE_AUTO_APPROVE=%q is not a bool", ErrInvalidConfig, v)
		}
		c.Engine.AutoApprove = b
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok && v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		c.Kafka.Brokers = splitList(v)
		c.Kafka.Enabled = true
	}
	return nil
}

// Validate отклоняет значения, с которыми сервис не сможет работать
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, v ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, v...))
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		add("server.http_port %d out of range", c.Server.HTTPPort)
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		add("storage.driver %q must be postgres or memory", c.Storage.Driver)
	}
	if _, err := c.Engine.Location(); err != nil {
		add("engine.timezone %q: %v", c.Engine.Timezone, err)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		add("auth.jwt_secret is empty")
	}
	if c.Auth.TokenTTL <= 0 {
		add("auth.token_ttl must be positive")
	}
	for i, a := range c.Auth.Admins {
		if strings.TrimSpace(a.Email) == "" || a.PasswordHash == "" {
			add("auth.admins[%d] needs email and password_hash", i)
		}
		if !domain.Role(a.Role).IsValid() {
			add("auth.admins[%d].role %q must be admin or super_admin", i, a.Role)
		}
	}
	if c.OTP.TTL <= 0 || c.OTP.MaxAttempts <= 0 {
		add("otp.ttl and otp.max_attempts must be positive")
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		add("kafka.brokers and kafka.topic are required when kafka is enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		add("redis.addr is required when redis is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		add("ratelimit.requests_per_minute and ratelimit.burst must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		add("metrics.path %q must start with /", c.Metrics.Path)
	}

	seen := make(map[string]struct{}, len(c.Offices))
	for i, o := range c.Offices {
		if o.ID == "" || o.Name == "" {
			add("offices[%d] needs id and name", i)
		}
		if _, dup := seen[o.ID]; dup {
			add("offices[%d].id %q is duplicated", i, o.ID)
		}
		seen[o.ID] = struct{}{}
		if o.TotalCarSlots < 0 || o.TotalBikeSlots < 0 ||
			o.TotalCarSlots > domain.MaxPoolCapacity || o.TotalBikeSlots > domain.MaxPoolCapacity {
			add("offices[%d] capacities must be within [0, %d]", i, domain.MaxPoolCapacity)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
