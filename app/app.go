package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/modules/annualprogram"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/modules/project"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/config"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/logger"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/mongo"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/rbac"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/redis"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"
)

// App holds the assembled planning core.
type App struct {
	Config         config.Config
	Logger         *slog.Logger
	Metrics        *usecase.Metrics
	Taxonomy       *taxonomy.Cached
	Projects       *project.Module
	AnnualPrograms *annualprogram.Module

	checks  map[string]func(context.Context) error
	closers []func(context.Context) error
}

// Stores are the persistence collaborators of the modules.
type Stores struct {
	Projects       project.Store
	AnnualPrograms annualprogram.Store
	Taxonomy       taxonomy.Source
}

type options struct {
	logger      *slog.Logger
	registerer  prometheus.Registerer
	permissions project.Permissions
	writer      annualprogram.Writer
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer registers the use-case metrics on reg instead of the
// default prometheus registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithPermissions plugs the caller's capability check. Without it every
// action is allowed.
func WithPermissions(p project.Permissions) Option {
	return func(o *options) { o.permissions, o.writer = p, nil }
}

// WithAuthorizer checks every action against the role carried by the
// context. Project actions are checked as is, annual program writes as
// annualprogram.PermissionWrite.
func WithAuthorizer(auth *rbac.Authorizer) Option {
	return func(o *options) {
		o.permissions = func(ctx context.Context, action project.Action) bool {
			return auth.Allows(ctx, string(action))
		}
		o.writer = func(ctx context.Context) bool { return auth.Allows(ctx, annualprogram.PermissionWrite) }
	}
}

// NewWithStores assembles the modules over the given stores.
func NewWithStores(cfg config.Config, stores Stores, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if stores.Projects == nil || stores.AnnualPrograms == nil || stores.Taxonomy == nil {
		return nil, ErrMissingStore
	}

	o := &options{registerer: prometheus.DefaultRegisterer, permissions: project.AllowAll}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.New(
			logger.WithEnvironment(cfg.Env, cfg.Service),
			logger.WithLevelName(cfg.LogLevel),
			logger.WithFormat(logger.Format(cfg.LogFormat)),
		)
	}

	metrics := usecase.NewMetrics(cfg.MetricsNamespace, o.registerer)
	rt := usecase.NewRuntime(usecase.WithLogger(o.logger), usecase.WithMetrics(metrics))

	cached := taxonomy.NewCached(stores.Taxonomy, cfg.Taxonomy.CacheSize, cfg.Taxonomy.CacheTTL)
	validator := taxonomy.NewValidator(cached)
	perms, writer := o.permissions, o.writer
	if writer == nil {
		writer = func(ctx context.Context) bool { return perms(ctx, project.ActionWrite) }
	}

	return &App{
		Config:   cfg,
		Logger:   o.logger,
		Metrics:  metrics,
		Taxonomy: cached,
		Projects: project.NewModule(project.Config{
			Store:        stores.Projects,
			Taxonomy:     validator,
			Permissions:  perms,
			Runtime:      rt,
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		}),
		AnnualPrograms: annualprogram.NewModule(annualprogram.Config{
			Store:        stores.AnnualPrograms,
			Taxonomy:     validator,
			CanWrite:     writer,
			Runtime:      rt,
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		}),
		checks: map[string]func(context.Context) error{},
	}, nil
}

// New connects to MongoDB and Redis, seeds the reference data when a seed
// file is configured and assembles the modules. A configured roles file
// installs an rbac authorizer ahead of opts.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if cfg.RolesFile != "" {
		auth, err := rbac.LoadYAMLFile(cfg.RolesFile)
		if err != nil {
			return nil, err
		}
		opts = append([]Option{WithAuthorizer(auth)}, opts...)
	}

	var (
		client *mongodriver.Client
		cache  *goredis.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		client, err = mongo.New(gctx, cfg.Mongo)
		return err
	})
	g.Go(func() error {
		var err error
		cache, err = redis.Connect(gctx, cfg.Redis)
		return err
	})
	if err := g.Wait(); err != nil {
		if client != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
		}
		if cache != nil {
			_ = cache.Close()
		}
		return nil, err
	}

	db := client.Database(cfg.Mongo.Database)
	projects := project.NewMongoStore(db)
	source := taxonomy.NewRedisSource(cache, "")

	a, err := NewWithStores(cfg, Stores{
		Projects:       projects,
		AnnualPrograms: annualprogram.NewMongoStore(db),
		Taxonomy:       source,
	}, opts...)
	if err == nil {
		err = projects.EnsureIndexes(ctx)
	}
	if err == nil && cfg.Taxonomy.SeedFile != "" {
		err = seed(ctx, source, cfg.Taxonomy.SeedFile)
	}
	if err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		_ = cache.Close()
		return nil, err
	}

	a.checks["mongo"] = mongo.Healthcheck(client)
	a.checks["redis"] = redis.Healthcheck(cache)
	a.closers = append(a.closers,
		func(ctx context.Context) error { return client.Disconnect(ctx) },
		func(context.Context) error { return cache.Close() },
	)
	a.Logger.InfoContext(ctx, "planning core ready",
		logger.Component("app"),
		slog.String("database", cfg.Mongo.Database),
	)
	return a, nil
}

func seed(ctx context.Context, source *taxonomy.RedisSource, path string) error {
	mem, err := taxonomy.LoadYAMLFile(path)
	if err != nil {
		return err
	}
	if err := source.Seed(ctx, mem); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	return nil
}

// Health runs every registered check and joins their errors.
func (a *App) Health(ctx context.Context) error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(a.checks)) {
		if err := a.checks[name](ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the connections opened by New, last opened first.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, c := range slices.Backward(a.closers) {
		errs = append(errs, c(ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}
