package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "github.com/pewpola/dao-condominium/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

// Governance describes the community the gateway serves.
type Governance struct {
	Manager         string
	FacadeAuthority string
	Implementation  string
	Blocks          int
	Floors          int
	UnitsPerFloor   int
}

// RedisConfig configures the shared facade pointer. An empty URL keeps the
// pointer in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PointerKey   string
}

// Database configures Postgres persistence. An empty URL keeps all
// governance state in memory.
type Database struct {
	URL         string
	LockTimeout time.Duration
}

// Kafka configures the audit sink. No brokers means audit events stay in the
// primary store.
type Kafka struct {
	Brokers          []string
	AuditTopic       string
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

type Config struct {
	Server     Server
	Governance Governance
	Redis      RedisConfig
	Database   Database
	Kafka      Kafka
	AuditQueue int
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds the configuration from CONDO_* environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}
	cfg := Config{
		Server: Server{
			Addr:          env.str("CONDO_ADDR", ":8080"),
			LogLevel:      env.str("CONDO_LOG_LEVEL", "info"),
			JWTSigningKey: env.str("CONDO_JWT_SIGNING_KEY", devSigningKey),
			JWTIssuer:     env.str("CONDO_JWT_ISSUER", "dao-condominium"),
			JWTAudience:   env.str("CONDO_JWT_AUDIENCE", "condominium-gateway"),
		},
		Governance: Governance{
			Manager:         env.str("CONDO_MANAGER", ""),
			FacadeAuthority: env.str("CONDO_FACADE_AUTHORITY", ""),
			Implementation:  env.str("CONDO_IMPLEMENTATION", "condominium-v1"),
			Blocks:          env.integer("CONDO_LAYOUT_BLOCKS", 2),
			Floors:          env.integer("CONDO_LAYOUT_FLOORS", 5),
			UnitsPerFloor:   env.integer("CONDO_LAYOUT_UNITS", 5),
		},
		Redis: RedisConfig{
			URL:          env.str("CONDO_REDIS_URL", ""),
			PoolSize:     env.integer("CONDO_REDIS_POOL_SIZE", 10),
			MinIdleConns: env.integer("CONDO_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  env.duration("CONDO_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  env.duration("CONDO_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: env.duration("CONDO_REDIS_WRITE_TIMEOUT", 3*time.Second),
			PointerKey:   env.str("CONDO_REDIS_POINTER_KEY", ""),
		},
		Database: Database{
			URL:         env.str("CONDO_DATABASE_URL", ""),
			LockTimeout: env.duration("CONDO_DATABASE_LOCK_TIMEOUT", 5*time.Second),
		},
		Kafka: Kafka{
			Brokers:          env.list("CONDO_KAFKA_BROKERS"),
			AuditTopic:       env.str("CONDO_KAFKA_AUDIT_TOPIC", "condo.audit"),
			BreakerThreshold: env.integer("CONDO_KAFKA_BREAKER_THRESHOLD", 5),
			BreakerCooldown:  env.duration("CONDO_KAFKA_BREAKER_COOLDOWN", 30*time.Second),
		},
		AuditQueue: env.integer("CONDO_AUDIT_QUEUE", 1024),
	}
	if env.err != nil {
		return Config{}, env.err
	}
	if cfg.Governance.Manager == "" {
		return Config{}, fmt.Errorf("CONDO_MANAGER is required")
	}
	if cfg.Governance.FacadeAuthority == "" {
		cfg.Governance.FacadeAuthority = cfg.Governance.Manager
	}
	return cfg, nil
}

// envReader records the first malformed value so FromEnv reports one error.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *envReader) integer(key string, fallback int) int {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}

func (e *envReader) list(key string) []string {
	return platformstrings.SplitList(e.getenv(key), ",")
}

func (e *envReader) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
