// Package config handles loading the service configuration from
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds Kafka broker settings.
type KafkaConfig struct {
	Brokers []string
}

// ProviderConfig holds credentials and per-stage timeouts for the external
// speech, translation and maps providers. An empty key means the provider is
// not configured; the corresponding pipeline stage degrades instead of failing.
type ProviderConfig struct {
	SpeechAPIKey    string
	TranslateAPIKey string
	MapsAPIKey      string

	TranscribeTimeout time.Duration
	TranslateTimeout  time.Duration
	GeocodeTimeout    time.Duration
	RouteTimeout      time.Duration
}

// ServiceConfig holds all configuration for the navigation service.
type ServiceConfig struct {
	Port           string
	AppEnv         string
	APIKey         string
	TargetLanguage string
	DB             DatabaseConfig
	Kafka          KafkaConfig
	Providers      ProviderConfig
}

// Load reads configuration from environment variables with the NAV_ prefix
// (e.g. NAV_SERVICE_PORT, NAV_DB_HOST, NAV_MAPS_API_KEY).
func Load() (*ServiceConfig, error) {
	v := viper.New()

	v.SetDefault("SERVICE_PORT", "8000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_KEY", "change-me")
	v.SetDefault("TARGET_LANGUAGE", "en")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "blindstick")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("KAFKA_BROKERS", "localhost:9092")

	v.SetDefault("SPEECH_API_KEY", "")
	v.SetDefault("TRANSLATE_API_KEY", "")
	v.SetDefault("MAPS_API_KEY", "")
	v.SetDefault("TRANSCRIBE_TIMEOUT", "10s")
	v.SetDefault("TRANSLATE_TIMEOUT", "5s")
	v.SetDefault("GEOCODE_TIMEOUT", "5s")
	v.SetDefault("ROUTE_TIMEOUT", "10s")

	v.SetEnvPrefix("NAV")
	v.AutomaticEnv()

	cfg := &ServiceConfig{
		Port:           normalizePort(v.GetString("SERVICE_PORT")),
		AppEnv:         v.GetString("APP_ENV"),
		APIKey:         v.GetString("API_KEY"),
		TargetLanguage: strings.ToLower(v.GetString("TARGET_LANGUAGE")),
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		},
		Providers: ProviderConfig{
			SpeechAPIKey:      v.GetString("SPEECH_API_KEY"),
			TranslateAPIKey:   v.GetString("TRANSLATE_API_KEY"),
			MapsAPIKey:        v.GetString("MAPS_API_KEY"),
			TranscribeTimeout: v.GetDuration("TRANSCRIBE_TIMEOUT"),
			TranslateTimeout:  v.GetDuration("TRANSLATE_TIMEOUT"),
			GeocodeTimeout:    v.GetDuration("GEOCODE_TIMEOUT"),
			RouteTimeout:      v.GetDuration("ROUTE_TIMEOUT"),
		},
	}

	return cfg, nil
}

// normalizePort ensures the listen address has a leading colon.
func normalizePort(port string) string {
	if port == "" {
		return ":8000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
