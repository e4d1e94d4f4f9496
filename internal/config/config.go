package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string // ENV / NODE_ENV: production, development, etc.

	MongoURI      string
	MongoDatabase string
	PostgresURI   string // payment ledger; empty disables it
	RedisURI      string // cache, rate limit, revocations, payment feed; empty disables them

	JWTSecret       string
	SessionDuration time.Duration
	StripeSecretKey string

	AllowedOrigins   []string // CORS
	AllowedHost      string   // strict host check in production; empty skips it
	AdminOnlyCatalog bool     // require admin role for package writes
	TrustProxy       bool     // take the client address from X-Forwarded-For / X-Real-IP

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	CacheTTL  time.Duration
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", getEnv("NODE_ENV", "development"))))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:5173"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	logFormat := "text"
	if env == "production" {
		logFormat = "json"
	}

	return &Config{
		Port:        getEnv("PORT", getEnv("PORT_URL", "5000")),
		Environment: env,

		MongoURI:      getEnv("MONGODB_URI", mongoURIFromCredentials(os.Getenv("DB_USER"), os.Getenv("DB_PASS"), getEnv("DB_HOST", "cluster0.nhw49.mongodb.net"))),
		MongoDatabase: getEnv("MONGODB_DATABASE", "goExplore"),
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", ""),

		JWTSecret:       getEnv("JWT_SECRET", getEnv("JWT_SECRET_TOKEN", "")),
		SessionDuration: getDuration("SESSION_DURATION", 7*24*time.Hour),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", getEnv("VITE_GATWAY_KEY", "")),

		AllowedOrigins:   allowedOrigins,
		AllowedHost:      hostname(getEnv("ALLOWED_HOST", "")),
		AdminOnlyCatalog: getBool("ADMIN_ONLY_CATALOG", false),
		TrustProxy:       getBool("TRUSTED_PROXY", false),

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		CacheTTL:  getDuration("CACHE_TTL", 10*time.Minute),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", logFormat),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGODB_URI (or DB_USER/DB_PASS) is required")
	}
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWTSecret = "development-secret-change-me"
	}
	return nil
}

// mongoURIFromCredentials builds the Atlas connection string from DB_USER and DB_PASS.
func mongoURIFromCredentials(user, pass, host string) string {
	if user == "" || pass == "" {
		return "mongodb://localhost:27017"
	}
	return "mongodb+srv://" + url.QueryEscape(user) + ":" + url.QueryEscape(pass) + "@" + host + "/?appName=Cluster0"
}

// hostname strips scheme, path and port from a HOST-style value.
func hostname(raw string) string {
	h := strings.TrimSpace(raw)
	for _, prefix := range []string{"https://", "http://"} {
		h = strings.TrimPrefix(h, prefix)
	}
	if idx := strings.Index(h, "/"); idx != -1 {
		h = h[:idx]
	}
	if idx := strings.Index(h, ":"); idx != -1 {
		h = h[:idx]
	}
	return strings.TrimSpace(h)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
