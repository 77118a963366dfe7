package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "savorbowl"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Pricing PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Pricing.TaxRateDecimal(); err != nil {
		return nil, err
	}
	if _, err := cfg.Pricing.ShippingFeeDecimal(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SAVORBOWL_APP_ENV" required:"true"`
	Port         string `envconfig:"SAVORBOWL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SAVORBOWL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SAVORBOWL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"SAVORBOWL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SAVORBOWL_REDIS_ADDR"`
	Password     string        `envconfig:"SAVORBOWL_REDIS_PASSWORD"`
	DB           int           `envconfig:"SAVORBOWL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SAVORBOWL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SAVORBOWL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SAVORBOWL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SAVORBOWL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SAVORBOWL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig carries the flat rates applied to every cart. Monetary values
// arrive as decimal strings so the engine never touches binary floats.
type PricingConfig struct {
	TaxRate     string        `envconfig:"SAVORBOWL_PRICING_TAX_RATE" default:"0.0825"`
	ShippingFee string        `envconfig:"SAVORBOWL_PRICING_SHIPPING_FEE" default:"5.00"`
	CartTTL     time.Duration `envconfig:"SAVORBOWL_PRICING_CART_TTL" default:"72h"`
}

func (p PricingConfig) TaxRateDecimal() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(p.TaxRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing tax rate %q: %w", p.TaxRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("tax rate must be non-negative, got %s", p.TaxRate)
	}
	return rate, nil
}

func (p PricingConfig) ShippingFeeDecimal() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(p.ShippingFee))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing shipping fee %q: %w", p.ShippingFee, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("shipping fee must be non-negative, got %s", p.ShippingFee)
	}
	return fee, nil
}
