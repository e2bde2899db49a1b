package config

import (
	"fmt"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/mongo"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/redis"
)

// Config is the configuration of the planning service.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"APP_SERVICE" envDefault:"planning"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// empty keeps the environment default
	LogFormat string `env:"LOG_FORMAT"`

	Mongo      mongo.Config
	Redis      redis.Config
	Pagination Pagination `envPrefix:"PAGINATION_"`
	Taxonomy   Taxonomy   `envPrefix:"TAXONOMY_"`

	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"planning"`
	// roles document for the rbac authorizer; empty allows every action
	RolesFile string `env:"RBAC_ROLES_FILE"`
}

// Pagination bounds the page size of search use cases.
type Pagination struct {
	DefaultLimit int `env:"DEFAULT_LIMIT" envDefault:"10"`
	MaxLimit     int `env:"MAX_LIMIT" envDefault:"100"`
}

// Taxonomy configures the reference-data cache.
type Taxonomy struct {
	SeedFile  string        `env:"SEED_FILE"`
	CacheSize int           `env:"CACHE_SIZE" envDefault:"64"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Load parses Config and checks values the tags cannot express.
func Load(opts ...Option) (Config, error) {
	cfg, err := Parse[Config](opts...)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on failure.
func MustLoad(opts ...Option) Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func (c Config) Validate() error {
	p := c.Pagination
	if p.DefaultLimit <= 0 || p.MaxLimit <= 0 || p.DefaultLimit > p.MaxLimit {
		return fmt.Errorf("%w: default limit %d, max limit %d", ErrInvalidPagination, p.DefaultLimit, p.MaxLimit)
	}
	if c.Taxonomy.CacheSize <= 0 {
		return fmt.Errorf("%w: cache size must be positive", ErrInvalidTaxonomy)
	}
	return nil
}
