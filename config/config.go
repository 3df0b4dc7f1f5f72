// Package config loads and validates the ledger's runtime settings: where
// the database lives and how the component logger is set up. The file
// format is plain key=value lines with # comments; unknown keys are
// ignored so older binaries can read newer files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all runtime settings.
type Config struct {
	DataDir  string // directory holding the database and logs
	DBFile   string // database file name inside DataDir
	LogDir   string // log directory; empty means DataDir/log
	LogFile  string // log file name
	LogLevel string // default level for all components
	LogSize  int    // rotation size in bytes
	LogCount int    // rotated files kept
}

// DefaultConfig returns the built-in defaults. The data directory is
// ~/.vestmark, falling back to a relative directory if the home directory
// cannot be determined.
func DefaultConfig() Config {
	dataDir := ".vestmark"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".vestmark")
	}
	return Config{
		DataDir:  dataDir,
		DBFile:   "ledger.db",
		LogDir:   "",
		LogFile:  "ledger.log",
		LogLevel: "info",
		LogSize:  1048576,
		LogCount: 10,
	}
}

// DatabasePath returns the full path of the ledger database file.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// LogPath returns the directory the logger writes into.
func (c Config) LogPath() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return filepath.Join(c.DataDir, "log")
}

// LoadConfig reads a config file, starting from DefaultConfig for any keys
// the file does not set.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "dbfile":
			cfg.DBFile = value
		case "logdir":
			cfg.LogDir = value
		case "logfile":
			cfg.LogFile = value
		case "loglevel":
			cfg.LogLevel = value
		case "logsize":
			n, err := strconv.Atoi(value)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
			}
			cfg.LogSize = n
		case "logcount":
			n, err := strconv.Atoi(value)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
			}
			cfg.LogCount = n
		default:
			// Ignore unknown keys for forward compatibility.
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to path, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# vestmark ledger configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "dbfile = %s\n", cfg.DBFile)
	if cfg.LogDir != "" {
		fmt.Fprintf(&b, "logdir = %s\n", cfg.LogDir)
	}
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logsize = %d\n", cfg.LogSize)
	fmt.Fprintf(&b, "logcount = %d\n", cfg.LogCount)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
