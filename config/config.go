package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration loaded from environment variables
// and, optionally, a YAML file named by CONFIG_FILE. Environment wins over the file.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnLife     time.Duration
	MigrationsEnabled bool

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Redis (rate limiting)
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RateLimitEnabled bool

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun
	MailSendEnabled bool
	MailgunDomain   string
	MailgunAPIKey   string
	MailgunSender   string
	MailgunAPIBase  string
	MailgunTag      string

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESOrgsIndex        string

	// Phone numbers without a leading + are parsed in this region
	PhoneDefaultRegion string

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

type source struct {
	file map[string]string
}

func (s source) lookup(key string) (string, bool) {
	if v := os.Getenv(key); v != "" {
		return v, true
	}
	if v, ok := s.file[key]; ok && v != "" {
		return v, true
	}
	return "", false
}

func (s source) getenv(key, def string) string {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return def
}

func (s source) getbool(key string, def bool) bool {
	if v, ok := s.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func (s source) getint(key string, def int) int {
	if v, ok := s.lookup(key); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func (s source) getdur(key string, def time.Duration) time.Duration {
	if v, ok := s.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// readFile parses a flat YAML mapping of KEY: value pairs.
func readFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		out[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return out, nil
}

// Load loads configuration from environment variables
func Load() *Config {
	file, err := readFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Printf("ignoring config file: %v", err)
	}
	s := source{file: file}

	return &Config{
		AppName: s.getenv("APP_NAME", "orgauth-service"),
		Env:     s.getenv("APP_ENV", "development"),
		Port:    s.getenv("PORT", "3000"),
		GinMode: s.getenv("GIN_MODE", "release"),

		DatabaseURL:       s.getenv("DATABASE_URL", ""),
		DBHost:            s.getenv("DB_HOST", "localhost"),
		DBPort:            s.getenv("DB_PORT", "5432"),
		DBUser:            s.getenv("DB_USER", "postgres"),
		DBPassword:        s.getenv("DB_PASSWORD", "postgres"),
		DBName:            s.getenv("DB_NAME", "orgauth"),
		DBSSLMode:         s.getenv("DB_SSLMODE", "disable"),
		DBMaxConns:        int32(s.getint("DB_MAX_CONNS", 10)),
		DBMinConns:        int32(s.getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife:     s.getdur("DB_MAX_CONN_LIFETIME", time.Hour),
		MigrationsEnabled: s.getbool("MIGRATIONS_ENABLED", true),

		JWTSecret: s.getenv("JWT_SECRET", ""),
		JWTTTL:    s.getdur("JWT_EXPIRES_IN", 24*time.Hour),

		CookieDomain: s.getenv("COOKIE_DOMAIN", "localhost"),
		CookieSecure: s.getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: s.getenv("CORS_ALLOWED_ORIGINS", ""),

		RedisAddr:        s.getenv("REDIS_ADDR", ""),
		RedisPassword:    s.getenv("REDIS_PASSWORD", ""),
		RedisDB:          s.getint("REDIS_DB", 0),
		RateLimitEnabled: s.getbool("RATE_LIMIT_ENABLED", true),

		RabbitMQURL:        s.getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: s.getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailSendEnabled: s.getbool("MAIL_SEND_ENABLED", false),
		MailgunDomain:   s.getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:   s.getenv("MAILGUN_API_KEY", ""),
		MailgunSender:   s.getenv("MAILGUN_SENDER", ""),
		MailgunAPIBase:  s.getenv("MAILGUN_API_BASE", ""),
		MailgunTag:      s.getenv("MAILGUN_TAG", ""),

		ElasticsearchAddrs: s.getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  s.getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  s.getenv("ELASTICSEARCH_PASSWORD", ""),
		ESOrgsIndex:        s.getenv("ES_ORGS_INDEX", "organisations"),

		PhoneDefaultRegion: s.getenv("PHONE_DEFAULT_REGION", ""),

		HTTPLogEnabled: s.getbool("HTTP_LOG_ENABLED", false),
	}
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.Env == "production" {
			return errors.New("JWT_SECRET must be set in production")
		}
		log.Printf("JWT_SECRET not set; using an insecure development secret")
		c.JWTSecret = "dev-insecure-secret"
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

// PostgresDSN returns a DSN compatible with pgx. DATABASE_URL takes precedence over DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
