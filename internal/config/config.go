package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	WhatsApp WhatsAppConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// WhatsAppConfig tunes the browser automation session. PacingMin/PacingMax
// bound the randomized delay between UI actions; InputWaitTimeout bounds how
// long the driver waits for the message box before giving up on a recipient.
type WhatsAppConfig struct {
	ProfileDir       string
	Headless         bool
	BatchSize        int
	PacingMin        time.Duration
	PacingMax        time.Duration
	InputWaitTimeout time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "orderdesk")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "orderdesk")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("WA_PROFILE_DIR", "./whatsapp_session")
	viper.SetDefault("WA_HEADLESS", false)
	viper.SetDefault("WA_BATCH_SIZE", 2)
	viper.SetDefault("WA_PACING_MIN", "500ms")
	viper.SetDefault("WA_PACING_MAX", "3s")
	viper.SetDefault("WA_INPUT_WAIT_TIMEOUT", "15s")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	pacingMin, err := time.ParseDuration(viper.GetString("WA_PACING_MIN"))
	if err != nil {
		return nil, err
	}

	pacingMax, err := time.ParseDuration(viper.GetString("WA_PACING_MAX"))
	if err != nil {
		return nil, err
	}

	inputWaitTimeout, err := time.ParseDuration(viper.GetString("WA_INPUT_WAIT_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		WhatsApp: WhatsAppConfig{
			ProfileDir:       viper.GetString("WA_PROFILE_DIR"),
			Headless:         viper.GetBool("WA_HEADLESS"),
			BatchSize:        viper.GetInt("WA_BATCH_SIZE"),
			PacingMin:        pacingMin,
			PacingMax:        pacingMax,
			InputWaitTimeout: inputWaitTimeout,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
