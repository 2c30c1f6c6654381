package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds the client-process configuration. This is deliberately only
// transport/bookkeeping configuration: domain settings (paths, runners,
// stream-safe behavior) are owned by the backend and arrive as GlobalSettings.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	BackendURL         string `mapstructure:"BACKEND_URL"`
	DataDir            string `mapstructure:"YAGO_DATA_DIR"`
	UserAgent          string `mapstructure:"USERAGENT"`
	RequestTimeoutSecs int    `mapstructure:"REQUEST_TIMEOUT_SECS"`
	CachePath          string `mapstructure:"-"` // Not from env, derived
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)   // Path to look for the config file in
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")  // REQUIRED if the config file does not have the extension in the name

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	// Bind environment variables automatically.
	viper.AutomaticEnv()

	for _, key := range []string{"BACKEND_URL", "YAGO_DATA_DIR", "USERAGENT", "REQUEST_TIMEOUT_SECS"} {
		if bindErr := viper.BindEnv(key); bindErr != nil {
			slog.Warn("Unable to bind env var", "key", key, "error", bindErr)
		}
	}

	if vipErr = viper.Unmarshal(&config); vipErr != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vipErr)
	}

	processConfigDefaults(&config)

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	// Derive CachePath (lives in the data dir so the cache follows the install)
	config.CachePath = filepath.Join(config.DataDir, "library-cache.db")

	return config, nil
}

// processConfigDefaults fills in defaults for values the user did not set.
func processConfigDefaults(config *Config) {
	if config.BackendURL == "" {
		config.BackendURL = "http://127.0.0.1:7680"
		slog.Info("BACKEND_URL not set, defaulting to local backend", "url", config.BackendURL)
	}
	if config.UserAgent == "" {
		config.UserAgent = "yago-sync/dev"
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
	if config.RequestTimeoutSecs <= 0 {
		// Viper hands back zero both for "unset" and genuinely invalid values;
		// re-check the raw string so a bad value gets a warning.
		raw := viper.GetString("REQUEST_TIMEOUT_SECS")
		if raw != "" {
			if _, err := strconv.Atoi(raw); err != nil {
				slog.Warn("Invalid value for REQUEST_TIMEOUT_SECS, defaulting to 30", "value", raw, "error", err)
			}
		}
		config.RequestTimeoutSecs = 30
	}
}

// validateAndEnsureDirectories checks required paths and creates the data
// directory tree if missing.
func validateAndEnsureDirectories(config *Config) error {
	if config.DataDir == "" {
		slog.Error("YAGO_DATA_DIR is not set")
		return fmt.Errorf("YAGO_DATA_DIR is required")
	}

	if _, err := os.Stat(config.DataDir); os.IsNotExist(err) {
		slog.Info("Data directory does not exist, creating it", "path", config.DataDir)
		if err := os.MkdirAll(config.DataDir, 0755); err != nil {
			slog.Error("Failed to create data directory", "path", config.DataDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check data directory", "path", config.DataDir, "error", err)
		return err
	}

	// Logs subdirectory for per-session diagnostics exports
	logsDir := filepath.Join(config.DataDir, "logs")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		slog.Info("Logs directory does not exist, creating it", "path", logsDir)
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			slog.Error("Failed to create logs directory", "path", logsDir, "error", err)
			return err
		}
	} else if err != nil {
		slog.Error("Failed to check logs directory", "path", logsDir, "error", err)
		return err
	}

	return nil
}
