package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/var/run/mysqld/mysqld.sock)
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	JWTSecret string `env:"JWT_SECRET,required"`
	TokenTTL  int    `env:"TOKEN_TTL_HOURS" envDefault:"72"`

	MinOrderTotal    string `env:"MIN_ORDER_TOTAL" envDefault:"15000.00"`
	CartExpiryDays   int    `env:"CART_EXPIRY_DAYS" envDefault:"7"`
	ArchiveAfterDays int    `env:"ARCHIVE_AFTER_DAYS" envDefault:"30"`
	AgingNoticeDays  int    `env:"VERIFICATION_AGING_DAYS" envDefault:"3"`
	SweepInterval    int    `env:"SWEEP_INTERVAL_MINUTES" envDefault:"60"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if _, err := decimal.NewFromString(cfg.MinOrderTotal); err != nil {
		return nil, fmt.Errorf("invalid MIN_ORDER_TOTAL %q: %w", cfg.MinOrderTotal, err)
	}
	return &cfg, nil
}

// MinOrderAmount returns the checkout minimum; Load has already validated the string.
func (c *Config) MinOrderAmount() decimal.Decimal {
	d, _ := decimal.NewFromString(c.MinOrderTotal)
	return d
}

func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Hour
}

func (c *Config) SweepEvery() time.Duration {
	return time.Duration(c.SweepInterval) * time.Minute
}
