package config

import "errors"

var (
	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"trace\", \"debug\", \"info\", \"warn\", \"error\", \"critical\" or \"off\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrEmptyDBFile indicates the database file name is empty.
	ErrEmptyDBFile = errors.New("config: database file must not be empty")

	// ErrInvalidLogSize indicates the log rotation size is not positive.
	ErrInvalidLogSize = errors.New("config: log size must be positive")

	// ErrInvalidLogCount indicates the rotated log file count is not positive.
	ErrInvalidLogCount = errors.New("config: log count must be positive")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
