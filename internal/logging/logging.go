// Package logging builds the diagnostic logger. User-facing output never
// goes through it; commands append structured events to an optional log
// file for troubleshooting.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	configName  = "config"
	configType  = "toml"
	logLevelKey = "log.level"
	logFileKey  = "log.file"
	logDirMode  = 0o700
	logFileMode = 0o600
	configDir   = ".notetime"
	envPrefix   = "NOTETIME"
)

// New builds a zerolog.Logger from app config. With no log file
// configured it returns a disabled logger, keeping stdout and stderr
// free for command output.
func New(cfg *viper.Viper) (zerolog.Logger, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(logLevelKey, "info")
	cfg.SetDefault(logFileKey, "")
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return zerolog.Nop(), fmt.Errorf("read config file: %w", err)
		}
	}

	logFile := cfg.GetString(logFileKey)
	if logFile == "" {
		return zerolog.Nop(), nil
	}

	level, err := zerolog.ParseLevel(cfg.GetString(logLevelKey))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(logFile), logDirMode); err != nil {
		return zerolog.Nop(), fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("open log file: %w", err)
	}

	return zerolog.New(file).Level(level).With().Timestamp().Logger(), nil
}
