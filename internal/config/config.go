package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL        string `env:"DATABASE_URL,required,notEmpty"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	ShareSecret        string `env:"SHARE_SECRET" envDefault:"dev-share-secret"`
	ShareTTLHours      int    `env:"SHARE_TTL_HOURS" envDefault:"168"`
	PillarProvider     string `env:"PILLAR_PROVIDER" envDefault:"builtin"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	DefaultTimezone    string `env:"DEFAULT_TIMEZONE" envDefault:"UTC"`
	// TrustedProxies lista IPs o CIDRs cuyo X-Forwarded-For se acepta. Vacio: ninguno.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.PillarProvider {
	case "builtin", "lunar":
	default:
		return fmt.Errorf("PILLAR_PROVIDER must be builtin or lunar, got %q", c.PillarProvider)
	}
	if c.ShareTTLHours <= 0 {
		return fmt.Errorf("SHARE_TTL_HOURS must be positive")
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}
	for i, p := range c.TrustedProxies {
		p = strings.TrimSpace(p)
		c.TrustedProxies[i] = p
		if _, err := netip.ParsePrefix(p); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(p); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: invalid entry %q", p)
		}
	}
	return nil
}

// ShareTTL devuelve la vigencia de los links compartidos.
func (c *Config) ShareTTL() time.Duration {
	return time.Duration(c.ShareTTLHours) * time.Hour
}
