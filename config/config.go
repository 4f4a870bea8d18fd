package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
	Studios  []domain.Studio `yaml:"studios"`
}

type HTTPConfig struct {
	Address        string `yaml:"address"`
	RequestTimeout int    `yaml:"request_timeout_seconds"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	BookingsTopic     string   `yaml:"bookings_topic"`
	GroupID           string   `yaml:"group_id"`
}

type BookingConfig struct {
	HorizonDays      int `yaml:"horizon_days"`
	DayCacheTTL      int `yaml:"day_cache_ttl_seconds"`
}

func (b BookingConfig) Horizon() int {
	if b.HorizonDays <= 0 {
		return 7
	}
	return b.HorizonDays
}

func (b BookingConfig) CacheTTL() time.Duration {
	if b.DayCacheTTL <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.DayCacheTTL) * time.Second
}

type WorkerConfig struct {
	RefreshSweepSeconds int `yaml:"refresh_sweep_seconds"`
}

func (w WorkerConfig) SweepInterval() time.Duration {
	if w.RefreshSweepSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(w.RefreshSweepSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
