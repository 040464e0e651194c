package config

import (
	"fmt"
	"time"

	"microsite-shop/internal/logger"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read from the environment (and .env).
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	// Database: DATABASE_URL wins over the discrete DB_* settings.
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"microsite_shop"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBTimeZone  string `env:"DB_TIMEZONE" envDefault:"Asia/Jakarta"`

	JWTSecret        string        `env:"JWT_SECRET" envDefault:"super-secret-jwt-key-change-me"`
	JWTTTL           time.Duration `env:"JWT_TTL" envDefault:"168h"`
	AdminPassword    string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	LegacyAdminToken string        `env:"LEGACY_ADMIN_TOKEN" envDefault:"admin-session-token"`

	// Optional database admin account created on boot.
	AdminEmail        string `env:"ADMIN_EMAIL"`
	AdminSeedPassword string `env:"ADMIN_SEED_PASSWORD"`

	RajaOngkir RajaOngkirConfig `envPrefix:"RAJAONGKIR_"`

	UploadDir       string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	UploadURLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads"`
	UploadMaxWidth  uint   `env:"UPLOAD_MAX_WIDTH" envDefault:"1200"`

	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"*"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"20"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	Log logger.Config `envPrefix:"LOG_"`
}

type RajaOngkirConfig struct {
	APIKey  string        `env:"API_KEY"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://rajaongkir.komerce.id/api/v1"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Load reads .env (when present) and parses the environment into a Config.
// The returned bool reports whether a .env file was loaded.
func Load(files ...string) (*Config, bool, error) {
	loaded := godotenv.Load(files...) == nil

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, loaded, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, loaded, nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBTimeZone,
	)
}
