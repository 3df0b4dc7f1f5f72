package config

import (
	"strings"

	"github.com/bitmark-inc/logger"
)

// validLogLevels lists the levels the logger accepts.
var validLogLevels = map[string]bool{
	"trace":    true,
	"debug":    true,
	"info":     true,
	"warn":     true,
	"error":    true,
	"critical": true,
	"off":      true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.DBFile == "" {
		return ErrEmptyDBFile
	}
	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}
	if cfg.LogSize <= 0 {
		return ErrInvalidLogSize
	}
	if cfg.LogCount <= 0 {
		return ErrInvalidLogCount
	}
	return nil
}

// LoggerConfiguration maps the config onto the logger's initialisation
// structure.
func (c Config) LoggerConfiguration() logger.Configuration {
	return logger.Configuration{
		Directory: c.LogPath(),
		File:      c.LogFile,
		Size:      c.LogSize,
		Count:     c.LogCount,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: strings.ToLower(c.LogLevel),
		},
	}
}
