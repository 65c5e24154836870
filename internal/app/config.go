package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (BAKEHOUSE_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL  string `usage:"PostgreSQL connection URL (BAKEHOUSE_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	ImageBaseURL string `default:"" usage:"Base URL for product images (e.g. https://cdn.example.com)" flag:"image-base-url"`
	APIKeyPepper string `usage:"HMAC pepper for admin API key hashing" flag:"api-key-pepper"`
	Store        StoreConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Views        ViewsConfig
	Graceful     GracefulConfig
}

// StoreConfig identifies the bakery on invoices and WhatsApp checkout links.
type StoreConfig struct {
	Name     string `default:"Bliss Bakes" usage:"Store name printed on invoices"`
	Slogan   string `default:"Let's bliss together" usage:"Store slogan"`
	Address  string `default:"" usage:"Store street address"`
	City     string `default:"Dhaka" usage:"Store city"`
	Phone    string `default:"" usage:"Store contact phone printed on invoices"`
	WhatsApp string `usage:"WhatsApp number for checkout links, international format" flag:"store-whatsapp"`
	Currency string `default:"Tk " usage:"Currency prefix for chat messages"`
}

// RateLimitConfig controls the per-client token bucket rate limiter.
type RateLimitConfig struct {
	RPS   float64 `default:"10" usage:"Sustained requests per second per client"`
	Burst int     `default:"30" usage:"Momentary burst allowance per client"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"true" usage:"Allow credentials (session cookie)" flag:"cors-credentials"`
}

// ViewsConfig sizes the view-tracking bloom filter.
type ViewsConfig struct {
	ExpectedViews     uint    `default:"1000000" usage:"Expected distinct (session, product) view pairs" flag:"views-expected"`
	FalsePositiveRate float64 `default:"0.001" usage:"Bloom filter false positive rate" flag:"views-fp-rate"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BAKEHOUSE",
		Files:     []string{"config.yaml", "/etc/bakehouse/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set BAKEHOUSE_DATABASE_URL or DATABASE_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's BAKEHOUSE_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
