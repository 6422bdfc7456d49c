package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions (JWT carried in an HttpOnly cookie)
	JWTSecret     string
	SessionExpiry time.Duration
	SessionCookie string
	CookieSecure  bool

	// Uploaded media
	MediaRoot string
	MediaURL  string

	// Filter options cache; empty disables redis
	RedisURL string
	CacheTTL time.Duration

	// Admin
	AdminEmails  string
	AdminUserIDs string
	AdminToken   string

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string

	// Maintenance
	LogRetention    time.Duration
	MaintenanceCron string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "job_portal"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "336h"), 336*time.Hour),
		SessionCookie: getEnv("SESSION_COOKIE", "sessionid"),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",

		MediaRoot: getEnv("MEDIA_ROOT", "media"),
		MediaURL:  getEnv("MEDIA_URL", "/media"),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute),

		AdminEmails:  getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs: getEnv("ADMIN_USER_IDS", ""),
		AdminToken:   getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),

		LogRetention:    parseDuration(getEnv("LOG_RETENTION", "720h"), 720*time.Hour),
		MaintenanceCron: getEnv("MAINTENANCE_CRON", "@daily"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// IsProduction reports whether uploaded media must be served by something
// other than this process.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) IsTest() bool {
	return c.AppEnv == "test"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
