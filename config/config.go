// Package config provides environment-driven configuration for the watchlist
// server and its administrative commands.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// SessionStore names the backend that keeps session state.
type SessionStore string

const (
	SessionStoreCookie SessionStore = "cookie"
	SessionStoreRedis  SessionStore = "redis"
)

const (
	defaultSecret         = "1091"
	defaultPort           = 5000
	defaultLoginRateLimit = 10
)

// LoadEnvFile loads variables from the given .env files into the process
// environment. Missing files are skipped; variables already set win.
func LoadEnvFile(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("WATCHLIST_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(strings.ToLower(logLevel))
}

func IsDebug() bool {
	return os.Getenv("WATCHLIST_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("WATCHLIST_DB_FOLDER")
	if dbFolderPath != "" {
		return dbFolderPath
	}
	if IsDebug() {
		return "db"
	}
	return "/etc/watchlist"
}

func GetDBPath() string {
	return filepath.Join(GetDBFolderPath(), GetName()+".db")
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("WATCHLIST_LOG_FOLDER")
	if logFolderPath != "" {
		return logFolderPath
	}
	if IsDebug() {
		return "log"
	}
	return "/var/log"
}

// GetSecret returns the key used to sign session cookies.
func GetSecret() string {
	secret := os.Getenv("WATCHLIST_SECRET")
	if secret == "" {
		return defaultSecret
	}
	return secret
}

func GetListen() string {
	return os.Getenv("WATCHLIST_LISTEN")
}

func GetPort() (int, error) {
	return getInt("WATCHLIST_PORT", defaultPort)
}

// GetDomain returns the host name the panel must be reached through, or an
// empty string when any host is accepted.
func GetDomain() string {
	return os.Getenv("WATCHLIST_DOMAIN")
}

func GetSessionStore() SessionStore {
	store := os.Getenv("WATCHLIST_SESSION_STORE")
	if store == "" {
		return SessionStoreCookie
	}
	return SessionStore(strings.ToLower(store))
}

// GetRedisAddr returns the external redis address. Empty means an embedded
// instance is started instead.
func GetRedisAddr() string {
	return os.Getenv("WATCHLIST_REDIS_ADDR")
}

// GetSessionMaxAge returns the session lifetime in minutes; 0 keeps the
// cookie until the browser closes.
func GetSessionMaxAge() (int, error) {
	return getInt("WATCHLIST_SESSION_MAX_AGE", 0)
}

// GetTrustedProxies returns the proxy addresses or CIDRs whose forwarding
// headers are believed. Empty means the peer address is the client address.
func GetTrustedProxies() []string {
	value := os.Getenv("WATCHLIST_TRUSTED_PROXIES")
	if value == "" {
		return nil
	}
	var proxies []string
	for _, proxy := range strings.Split(value, ",") {
		if proxy = strings.TrimSpace(proxy); proxy != "" {
			proxies = append(proxies, proxy)
		}
	}
	return proxies
}

// GetLoginRateLimit returns how many login attempts one client may make per
// minute; 0 turns the limit off.
func GetLoginRateLimit() (int, error) {
	return getInt("WATCHLIST_LOGIN_RATE_LIMIT", defaultLoginRateLimit)
}

func getInt(key string, def int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &InvalidValueError{Key: key, Value: value}
	}
	return n, nil
}

// InvalidValueError reports an environment variable that could not be parsed.
type InvalidValueError struct {
	Key   string
	Value string
}

func (e *InvalidValueError) Error() string {
	return "invalid value for " + e.Key + ": " + strconv.Quote(e.Value)
}
