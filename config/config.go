package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultEnv            = "development"
	DefaultPort           = "8080"
	DefaultSessionSlot    = SlotCookie
	DefaultSessionTTLMin  = 10080
	DefaultKafkaTopic     = "access-gate.events"
	DefaultLogLevel       = "info"
	DefaultRedisKeyPrefix = "gate"
)

const (
	SlotCookie = "cookie"
	SlotRedis  = "redis"
)

type Config struct {
	Env            string
	Port           string
	DBURL          string
	SessionSlot    string
	SessionSecret  string
	SessionTTLMin  int
	CookieSecure   bool
	RedisURL       string
	RedisKeyPrefix string
	KafkaBrokers   []string
	KafkaTopic     string
	LogLevel       string
}

// fileValues holds the entries of the env file picked by the last Load call.
var fileValues map[string]string

// Load reads config/.env.dev or config/.env.prod (depending on ENV) and then
// the process environment. Variables set in the environment win over the file.
func Load() *Config {
	fileValues = nil
	env := getEnv("ENV", DefaultEnv)
	fileValues = readEnvFile(env)

	cfg := &Config{
		Env:            env,
		Port:           getEnv("PORT", DefaultPort),
		DBURL:          mustGetEnv("DB_URL"),
		SessionSlot:    strings.ToLower(getEnv("SESSION_SLOT", DefaultSessionSlot)),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTLMin:  getEnvAsInt("SESSION_TTL_MIN", DefaultSessionTTLMin),
		CookieSecure:   getEnvAsBool("COOKIE_SECURE", false),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", DefaultRedisKeyPrefix),
		KafkaBrokers:   getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:     getEnv("KAFKA_TOPIC", DefaultKafkaTopic),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
	}

	switch cfg.SessionSlot {
	case SlotCookie:
	case SlotRedis:
		cfg.RedisURL = mustGetEnv("REDIS_URL")
	default:
		log.Printf("Unknown SESSION_SLOT %q, using %s", cfg.SessionSlot, DefaultSessionSlot)
		cfg.SessionSlot = DefaultSessionSlot
	}

	return cfg
}

func readEnvFile(env string) map[string]string {
	name := ".env.dev"
	if env == "production" {
		name = ".env.prod"
	}
	path := filepath.Join("config", name)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		log.Printf("Failed to read %s: %v", path, err)
		return nil
	}
	return values
}

func lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fileValues[key]
}

func getEnv(key string, defaultVal string) string {
	if value := lookup(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := lookup(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := lookup(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := lookup(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(lookup(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
