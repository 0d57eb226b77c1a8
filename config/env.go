package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName       = "Pizzeria"
	defaultAppEnv        = "local"
	defaultAppPort       = "3000"
	defaultHashingSecret = "change-me-in-production"
	defaultRedisAddr     = "localhost:6379"
	defaultStorageRoot   = ".data"
	defaultStripeBaseURL = "https://api.stripe.com"
	defaultMailgunURL    = "https://api.mailgun.net"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json, then .env, then the process environment over
// the defaults. Only the first call does any work.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_NAME":             defaultAppName,
		"APP_ENV":              defaultAppEnv,
		"APP_PORT":             defaultAppPort,
		"HTTPS_PORT":           "3001",
		"BASE_URL":             "http://localhost:" + defaultAppPort + "/",
		"COMPANY_NAME":         "Pizzeria, Inc.",
		"YEAR_CREATED":         "2020",
		"HASHING_SECRET":       defaultHashingSecret,
		"STORAGE_DISK":         "local",
		"STORAGE_LOCAL_ROOT":   defaultStorageRoot,
		"LOCK_DRIVER":          "local",
		"REDIS_ADDR":           defaultRedisAddr,
		"PAYMENT_DRIVER":       "fake",
		"STRIPE_BASE_URL":      defaultStripeBaseURL,
		"CURRENCY":             "usd",
		"MAIL_DRIVER":          "log",
		"MAIL_FROM":            "orders@pizzeria.test",
		"MAIL_FROM_NAME":       defaultAppName,
		"MAILGUN_BASE_URL":     defaultMailgunURL,
		"GATEWAY_TIMEOUT":      "10s",
		"GATEWAY_RETRIES":      "3",
		"TOKEN_SWEEP_INTERVAL": "2h",
		"RATE_LIMIT":           "200",
		"CORS_ORIGINS":         "*",
	}
}

func AppName() string { _ = Load(); return get("APP_NAME", defaultAppName) }

func AppEnv() string { _ = Load(); return get("APP_ENV", defaultAppEnv) }

func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }

// HashingSecret keys the HMAC used for password digests.
func HashingSecret() string {
	_ = Load()
	return get("HASHING_SECRET", defaultHashingSecret)
}

func RedisAddr() string { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }

func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", defaultStorageRoot) }

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3Prefix() string   { _ = Load(); return get("S3_PREFIX", "") }

// ── Gateways ─────────────────────────────────────────────────────────────────

func GatewayTimeout() time.Duration { return Duration("GATEWAY_TIMEOUT", 10*time.Second) }
func GatewayRetries() int           { return Int("GATEWAY_RETRIES", 3) }

// Duration reads key as a time.Duration ("90s", "2h"). Bad values fall back.
func Duration(key string, fallback time.Duration) time.Duration {
	_ = Load()
	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Int reads key as an int. Bad values fall back.
func Int(key string, fallback int) int {
	_ = Load()
	n, err := strconv.Atoi(get(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(v)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value, ok := values[key]; ok {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
		return fallback
	}
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single key at runtime. Mostly useful in tests.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}
