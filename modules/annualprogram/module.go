package annualprogram

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"
)

// PermissionWrite is the permission a role needs to change annual programs.
const PermissionWrite = "annualProgram:write"

// Writer reports whether the caller of ctx may change annual programs.
type Writer func(ctx context.Context) bool

type Config struct {
	Store    Store
	Taxonomy *taxonomy.Validator
	CanWrite Writer
	Runtime  *usecase.Runtime

	// DefaultLimit and MaxLimit bound search pages; zero keeps the query defaults.
	DefaultLimit int
	MaxLimit     int
	Now          func() time.Time
}

type Module struct {
	Get          *usecase.GetByID[*AnnualProgram, View]
	Search       *usecase.Search[*AnnualProgram, View]
	CountBy      *usecase.CountBy
	Delete       *usecase.Delete[*AnnualProgram]
	UpdateStatus *usecase.UpdateStatus[*AnnualProgram, Status, View]

	store    Store
	taxonomy *taxonomy.Validator
	canWrite Writer
	now      func() time.Time
}

func NewModule(cfg Config) *Module {
	if cfg.Store == nil || cfg.Taxonomy == nil || cfg.CanWrite == nil {
		panic("annualprogram: store, taxonomy validator and write permission are required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	opts := append(QueryOptions(cfg.MaxLimit), query.WithDefaultLimit(cfg.DefaultLimit))
	search := []usecase.Validator[query.Props]{searchTaxonomy(cfg.Taxonomy)}
	write := usecase.RequirePermission[*AnnualProgram](cfg.CanWrite, "missing permission to write annual programs")

	return &Module{
		Get: usecase.NewGetByID(usecase.GetByIDConfig[*AnnualProgram, View]{
			Name:         "annualProgram.get",
			Entity:       "annual program",
			Finder:       cfg.Store,
			Mapper:       ToView,
			QueryOptions: opts,
			Runtime:      cfg.Runtime,
		}),
		Search: usecase.NewSearch(usecase.SearchConfig[*AnnualProgram, View]{
			Name:         "annualProgram.search",
			Entity:       "annual program",
			Searcher:     cfg.Store,
			Mapper:       ToView,
			QueryOptions: opts,
			Validators:   search,
			Runtime:      cfg.Runtime,
		}),
		CountBy: usecase.NewCountBy(usecase.CountByConfig{
			Name:         "annualProgram.countBy",
			Entity:       "annual program",
			Counter:      cfg.Store,
			QueryOptions: opts,
			Validators:   search,
			Runtime:      cfg.Runtime,
		}),
		Delete: usecase.NewDelete(usecase.DeleteConfig[*AnnualProgram]{
			Name:          "annualProgram.delete",
			Entity:        "annual program",
			Finder:        cfg.Store,
			Deleter:       cfg.Store,
			QueryOptions:  opts,
			Authorizers:   []usecase.Authorizer[*AnnualProgram]{write},
			BusinessRules: []usecase.BusinessRule[*AnnualProgram]{onlyNew},
			Runtime:       cfg.Runtime,
		}),
		UpdateStatus: usecase.NewUpdateStatus(usecase.UpdateStatusConfig[*AnnualProgram, Status, View]{
			Name:         "annualProgram.updateStatus",
			Entity:       "annual program",
			Finder:       cfg.Store,
			Saver:        stampedSaver{store: cfg.Store, now: cfg.Now},
			Machine:      NewMachine(),
			Mapper:       ToView,
			Statuses:     Statuses,
			QueryOptions: opts,
			Authorizers:  []usecase.Authorizer[*AnnualProgram]{write},
			Runtime:      cfg.Runtime,
		}),
		store:    cfg.Store,
		taxonomy: cfg.Taxonomy,
		canWrite: cfg.CanWrite,
		now:      cfg.Now,
	}
}

func onlyNew(_ context.Context, a *AnnualProgram) guard.Outcome {
	return guard.When(a.status == StatusNew,
		guard.BusinessRule("status", fmt.Sprintf("only a new annual program can be deleted, this one is %s", a.status)))
}

// stampedSaver refreshes UpdatedAt before saving.
type stampedSaver struct {
	store Store
	now   func() time.Time
}

func (s stampedSaver) Save(ctx context.Context, a *AnnualProgram) error {
	a.UpdatedAt = s.now().UTC()
	return s.store.Save(ctx, a)
}

// Create stores a new annual program under a fresh UUID.
func (m *Module) Create(ctx context.Context, props Props) (View, error) {
	if !m.canWrite(ctx) {
		return View{}, core.Forbidden(core.Failures{guard.Forbidden("permission", "missing permission to write annual programs")})
	}

	now := m.now().UTC()
	props.ID, props.Status, props.CreatedAt, props.UpdatedAt = uuid.NewString(), StatusNew, now, now

	built := New(props)
	valid := result.Combine(built, m.taxonomy.Check(ctx, TaxonomyRefs(props)...))
	if valid.IsFailure() {
		if fs := valid.Failures(); fs.HasCode(core.CodeUnexpected) {
			return View{}, core.Unexpected("annual program validation could not complete", fs)
		}
		return View{}, core.InvalidParameter(valid.Failures())
	}

	a := built.Value()
	if err := m.store.Save(ctx, a); err != nil {
		return View{}, core.Unexpected("failed to save annual program", err)
	}
	return ToView(ctx, a, nil)
}
