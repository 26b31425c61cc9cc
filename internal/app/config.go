package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store backends selectable with TRIAD_STORE.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// ErrConfig is returned for invalid configuration.
var ErrConfig = errors.New("invalid config")

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string // config directory, e.g. $HOME/.triad
	Account string // root namespace for the account, e.g. the login
	Store   string // file | memory | postgres

	Passphrase string // seals file-store documents when set

	DatabaseURL string
	DBSchema    string
	DBMaxConns  int32
	DBTimeout   time.Duration

	APIURL string // auth API base URL, e.g. http://127.0.0.1:8081
	Proxy  string

	LogLevel  string
	LogFormat string // pretty | json

	MetricsAddr string
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		Home:    EnvString("TRIAD_HOME", defaultHome()),
		Account: EnvString("TRIAD_ACCOUNT", "default"),
		Store:   EnvString("TRIAD_STORE", StoreFile),

		Passphrase: os.Getenv("TRIAD_PASSPHRASE"),

		DatabaseURL: EnvString("TRIAD_DATABASE_URL", ""),
		DBSchema:    EnvString("TRIAD_DB_SCHEMA", "triad"),
		DBMaxConns:  EnvInt32("TRIAD_DB_MAX_CONNS", 4),
		DBTimeout:   EnvDuration("TRIAD_DB_TIMEOUT", 5*time.Second),

		APIURL: EnvString("TRIAD_API_URL", "http://127.0.0.1:8081"),
		Proxy:  EnvString("TRIAD_PROXY", ""),

		LogLevel:  EnvString("TRIAD_LOG_LEVEL", "info"),
		LogFormat: EnvString("TRIAD_LOG_FORMAT", "pretty"),

		MetricsAddr: EnvString("TRIAD_METRICS_ADDR", ""),
	}
}

// Validate checks cross-field invariants.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.Home == "" {
			return ErrConfig
		}
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return ErrConfig
		}
	default:
		return ErrConfig
	}
	if !validAccount(c.Account) {
		return ErrConfig
	}
	return nil
}

// validAccount reports whether name is usable as the account namespace: one
// non-empty path segment that is not a dot name.
func validAccount(name string) bool {
	if strings.TrimSpace(name) != name || name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".triad"
	}
	return filepath.Join(dir, ".triad")
}
