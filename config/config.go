package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT" validate:"required"`
	DatabaseURL       string `mapstructure:"DATABASE_URL" validate:"required"`
	DatabaseName      string `mapstructure:"DATABASE_NAME" validate:"required"`
	Env               string `mapstructure:"ENV" validate:"oneof=development staging production test"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN" validate:"gt=0"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR" validate:"required"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB" validate:"gte=0"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB" validate:"gte=0"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB" validate:"gte=0"`

	// Audition scheduling.
	PeriodCacheTTL time.Duration `mapstructure:"PERIOD_CACHE_TTL" validate:"gte=0"`
	ReminderLead   time.Duration `mapstructure:"REMINDER_LEAD" validate:"gte=0"`
	Timezone       string        `mapstructure:"TIMEZONE" validate:"required"`
}

var AppConfig Config

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "dreamhi")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_AUTH_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("PERIOD_CACHE_TTL", "10m")
	v.SetDefault("REMINDER_LEAD", "10m")
	v.SetDefault("TIMEZONE", "Asia/Seoul")
}

// Load reads configuration from an optional config.yaml (current directory or
// ./config) and the environment, applies defaults and validates the result.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the timezone can be loaded.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("config validation failed: unknown timezone %q: %w", cfg.Timezone, err)
	}
	return nil
}

// LoadConfig populates AppConfig or exits.
func LoadConfig() {
	cfg, err := Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the configured timezone, falling back to UTC.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
