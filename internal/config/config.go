package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	HTTPAddr        string
	JWTSecret       string
	AllowedOrigins  []string
	LogLevel        string
	RefreshInterval time.Duration
}

// NewViper returns a viper instance reading the environment, with a .env file
// in the working directory loaded first when present.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REFRESH_INTERVAL", "0s")
	return v
}

func Load() (Config, error) {
	return FromViper(NewViper())
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		DBHost:     v.GetString("POSTGRES_HOST"),
		DBPort:     v.GetString("POSTGRES_PORT"),
		DBUser:     v.GetString("POSTGRES_USER"),
		DBPassword: v.GetString("POSTGRES_PASSWORD"),
		DBName:     v.GetString("POSTGRES_DB"),
		HTTPAddr:   v.GetString("HTTP_ADDR"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		LogLevel:   v.GetString("LOG_LEVEL"),
	}

	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	interval, err := time.ParseDuration(v.GetString("REFRESH_INTERVAL"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	if interval < 0 {
		return Config{}, fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}
	cfg.RefreshInterval = interval

	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
