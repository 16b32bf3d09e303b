package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	AuthModeAuthenticated = "authenticated"
	AuthModeAnonymous     = "anonymous"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port      string `env:"PORT, default=3001"`
	Env       string `env:"APP_ENV, default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	AuthMode         string        `env:"AUTH_MODE, default=authenticated"`
	WebOrigin        string        `env:"WEB_ORIGIN, default=http://localhost:3001"`
	SessionTTL       time.Duration `env:"SESSION_TTL, default=24h"`
	FlashTTL         time.Duration `env:"FLASH_TTL, default=5m"`
	LastSeenThrottle time.Duration `env:"LAST_SEEN_THROTTLE, default=5m"`
	AdminUsernames   []string      `env:"ADMIN_USERNAMES"`

	SeedDemo               bool   `env:"SEED_DEMO, default=false"`
	BootstrapAdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	AuditSchedule          string `env:"AUDIT_SCHEDULE, default=@every 10m"`

	Database DatabaseConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER, default=postgres"`
	Host       string `env:"DB_HOST, default=127.0.0.1"`
	Port       string `env:"DB_PORT, default=5432"`
	User       string `env:"DB_USER, default=postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME, default=lending"`
	SSLMode    string `env:"DB_SSLMODE, default=disable"`
	SQLitePath string `env:"SQLITE_PATH, default=inventory.db"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=127.0.0.1:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// LoadEnv loads a .env file if one exists. Real environment variables win.
func LoadEnv() {
	_ = godotenv.Load()
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.AuthMode = strings.ToLower(strings.TrimSpace(c.AuthMode))
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	admins := c.AdminUsernames[:0]
	for _, a := range c.AdminUsernames {
		if t := strings.TrimSpace(a); t != "" {
			admins = append(admins, strings.ToLower(t))
		}
	}
	c.AdminUsernames = admins
}

func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeAuthenticated, AuthModeAnonymous:
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.AuthMode)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.Database.Driver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) Anonymous() bool { return c.AuthMode == AuthModeAnonymous }

func (c *Config) SecureCookies() bool { return strings.HasPrefix(c.WebOrigin, "https://") }

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}
