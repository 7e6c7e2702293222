package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	SiteName   string `mapstructure:"SITE_NAME"`
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`

	// AllowDomains is the comma-separated allow-list of servable hostnames.
	// Empty disables host authorization.
	AllowDomains string `mapstructure:"ALLOW_DOMAINS"`
	// DirectDomains lists hostnames that redirect straight to the target
	// instead of rendering the interstitial page.
	DirectDomains string `mapstructure:"DIRECT_DOMAINS"`
	// ShortDomain, when set, is the canonical hostname used when building
	// short links in responses.
	ShortDomain string `mapstructure:"SHORT_DOMAIN"`

	SpecialDomains    string `mapstructure:"SPECIAL_DOMAINS"`
	InitialSlugLength int    `mapstructure:"INITIAL_SLUG_LENGTH"`

	TurnstileSecret    string `mapstructure:"TURNSTILE_SECRET_KEY"`
	TurnstileVerifyURL string `mapstructure:"TURNSTILE_VERIFY_URL"`

	GeoIPDBPath string `mapstructure:"GEOIP_DB_PATH"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	LogPath   string `mapstructure:"LOG_PATH"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "sqlite://short.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SITE_NAME", "Short")
	viper.SetDefault("ADMIN_EMAIL", "info@example.com")
	viper.SetDefault("SPECIAL_DOMAINS", "eu.org,us.kg,pages.dev,github.io")
	viper.SetDefault("INITIAL_SLUG_LENGTH", 6)
	viper.SetDefault("TURNSTILE_VERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify")
	viper.SetDefault("GEOIP_DB_PATH", "./geoip/GeoLite2-Country.mmdb")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "")
	viper.SetDefault("LOG_PATH", "")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}

// AllowedHosts returns the host allow-list, nil when unset.
func (c Config) AllowedHosts() []string {
	return splitList(c.AllowDomains)
}

// DirectHosts returns the no-interstitial hostnames, nil when unset.
func (c Config) DirectHosts() []string {
	return splitList(c.DirectDomains)
}

// SpecialSuffixes returns the multi-label public suffixes for the domain
// classifier, preserving list order: the first match wins.
func (c Config) SpecialSuffixes() []string {
	return splitList(c.SpecialDomains)
}

func splitList(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
