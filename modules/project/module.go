package project

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/async"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"
)

// Action names what a caller attempts on projects.
type Action string

const (
	ActionWrite        Action = "project:write"
	ActionDelete       Action = "project:delete"
	ActionUpdateStatus Action = "project:updateStatus"
)

// Permissions answers whether the caller of ctx may perform action.
type Permissions func(ctx context.Context, action Action) bool

// AllowAll grants every action.
func AllowAll(context.Context, Action) bool { return true }

// Deletable statuses: a project that reached programming is kept.
var deletableStatuses = []Status{StatusWished, StatusPlanned, StatusReplanned}

type Config struct {
	Store       Store
	Taxonomy    *taxonomy.Validator
	Permissions Permissions
	Runtime     *usecase.Runtime

	// DefaultLimit and MaxLimit bound search pages; zero keeps the query defaults.
	DefaultLimit int
	MaxLimit     int
	Now          func() time.Time
}

// Module exposes the project use cases.
type Module struct {
	Get          *usecase.GetByID[*Project, View]
	Search       *usecase.Search[*Project, View]
	CountBy      *usecase.CountBy
	Delete       *usecase.Delete[*Project]
	UpdateStatus *usecase.UpdateStatus[*Project, Status, View]

	store       Store
	taxonomy    *taxonomy.Validator
	permissions Permissions
	now         func() time.Time
}

// NewModule wires the use cases over cfg. It panics when a collaborator is missing.
func NewModule(cfg Config) *Module {
	if cfg.Store == nil || cfg.Taxonomy == nil || cfg.Permissions == nil {
		panic("project: store, taxonomy validator and permissions are required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Runtime == nil {
		cfg.Runtime = usecase.NewRuntime()
	}
	opts := append(QueryOptions(cfg.MaxLimit), query.WithDefaultLimit(cfg.DefaultLimit))

	return &Module{
		Get: usecase.NewGetByID(usecase.GetByIDConfig[*Project, View]{
			Name:         "project.get",
			Entity:       "project",
			Finder:       cfg.Store,
			Mapper:       ToView,
			QueryOptions: opts,
			Runtime:      cfg.Runtime,
		}),
		Search: usecase.NewSearch(usecase.SearchConfig[*Project, View]{
			Name:         "project.search",
			Entity:       "project",
			Searcher:     cfg.Store,
			Mapper:       ToView,
			QueryOptions: opts,
			Validators:   []usecase.Validator[query.Props]{SearchTaxonomy(cfg.Taxonomy)},
			Runtime:      cfg.Runtime,
		}),
		CountBy: usecase.NewCountBy(usecase.CountByConfig{
			Name:         "project.countBy",
			Entity:       "project",
			Counter:      cfg.Store,
			QueryOptions: opts,
			Validators:   []usecase.Validator[query.Props]{SearchTaxonomy(cfg.Taxonomy)},
			Runtime:      cfg.Runtime,
		}),
		Delete: usecase.NewDelete(usecase.DeleteConfig[*Project]{
			Name:          "project.delete",
			Entity:        "project",
			Finder:        cfg.Store,
			Deleter:       cfg.Store,
			QueryOptions:  opts,
			Authorizers:   []usecase.Authorizer[*Project]{can[*Project](cfg.Permissions, ActionDelete)},
			BusinessRules: []usecase.BusinessRule[*Project]{deletable},
			Runtime:       cfg.Runtime,
		}),
		UpdateStatus: usecase.NewUpdateStatus(usecase.UpdateStatusConfig[*Project, Status, View]{
			Name:         "project.updateStatus",
			Entity:       "project",
			Finder:       cfg.Store,
			Saver:        cfg.Store,
			Machine:      NewMachine(cfg.Now),
			Mapper:       ToView,
			Statuses:     Statuses,
			QueryOptions: opts,
			Authorizers:  []usecase.Authorizer[*Project]{can[*Project](cfg.Permissions, ActionUpdateStatus)},
			Runtime:      cfg.Runtime,
		}),
		store:       cfg.Store,
		taxonomy:    cfg.Taxonomy,
		permissions: cfg.Permissions,
		now:         cfg.Now,
	}
}

func can[E any](perms Permissions, action Action) usecase.Authorizer[E] {
	return usecase.RequirePermission[E](func(ctx context.Context) bool {
		return perms(ctx, action)
	}, "missing permission "+string(action))
}

// Create validates props, checks their reference codes and stores a new
// project under the next identifier.
func (m *Module) Create(ctx context.Context, props Props) (View, error) {
	if !m.permissions(ctx, ActionWrite) {
		return View{}, core.Forbidden(core.Failures{guard.Forbidden("permission", "missing permission "+string(ActionWrite))})
	}

	id, err := m.store.NextID(ctx)
	if err != nil {
		return View{}, core.Unexpected("failed to reserve a project id", err)
	}
	now := m.now().UTC()
	props.ID, props.CreatedAt, props.UpdatedAt = id, now, now

	var built result.Result[*Project]
	valid := async.Validate(ctx,
		func(context.Context) result.Result[result.Void] {
			built = New(props)
			return result.Map(built, func(*Project) result.Void { return result.Void{} })
		},
		func(ctx context.Context) result.Result[result.Void] {
			return m.taxonomy.Check(ctx, TaxonomyRefs(props)...)
		},
	)
	if valid.IsFailure() {
		fs := valid.Failures()
		if fs.HasCode(core.CodeUnexpected) {
			return View{}, core.Unexpected("project validation could not complete", fs)
		}
		if fs.HasCode(core.CodeBusinessRule) && !fs.HasCode(core.CodeInvalidInput) && !fs.HasCode(core.CodeMissingValue) && !fs.HasCode(core.CodeTaxonomy) {
			return View{}, core.Unprocessable(fs)
		}
		return View{}, core.InvalidParameter(fs)
	}

	p := built.Value()
	if err := m.store.Save(ctx, p); err != nil {
		return View{}, core.Unexpected("failed to save project", err)
	}
	return ToView(ctx, p, nil)
}

func deletable(_ context.Context, p *Project) guard.Outcome {
	return guard.When(slices.Contains(deletableStatuses, p.status),
		guard.BusinessRule("status", fmt.Sprintf("a %s project cannot be deleted", p.status)))
}
