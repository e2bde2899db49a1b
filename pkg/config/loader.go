package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures how the environment is read.
type Option func(*loader)

type loader struct {
	files       []string
	environment map[string]string
	prefix      string
}

// WithEnvFiles loads the given .env files before parsing. Missing files are
// an error, unlike the default ".env" which is optional.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.files = append(l.files, files...)
	}
}

// WithEnvironment parses vars instead of the process environment. No .env
// file is read.
func WithEnvironment(vars map[string]string) Option {
	return func(l *loader) {
		l.environment = vars
	}
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(l *loader) {
		l.prefix = prefix
	}
}

// Parse fills a T from environment variables using its env struct tags.
//
//	type Cache struct {
//		Size int           `env:"TAXONOMY_CACHE_SIZE" envDefault:"64"`
//		TTL  time.Duration `env:"TAXONOMY_CACHE_TTL" envDefault:"5m"`
//	}
//
//	cache, err := config.Parse[Cache]()
func Parse[T any](opts ...Option) (T, error) {
	var l loader
	for _, opt := range opts {
		opt(&l)
	}

	var v T
	if l.environment == nil {
		if err := loadEnvFiles(l.files); err != nil {
			return v, err
		}
	}

	if err := env.ParseWithOptions(&v, env.Options{Environment: l.environment, Prefix: l.prefix}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustParse is Parse that panics on failure.
func MustParse[T any](opts ...Option) T {
	v, err := Parse[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return v
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		// the default .env is optional
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrEnvFile, err)
	}
	return nil
}
