package app_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/app"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/modules/annualprogram"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/modules/project"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/config"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/logger"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/rbac"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"
)

func testConfig(t *testing.T, vars map[string]string) config.Config {
	t.Helper()
	env := map[string]string{"MONGODB_URL": "mongodb://localhost:27017"}
	for k, v := range vars {
		env[k] = v
	}
	cfg, err := config.Load(config.WithEnvironment(env))
	require.NoError(t, err)
	return cfg
}

func memoryStores() app.Stores {
	return app.Stores{
		Projects:       project.NewMemoryStore(),
		AnnualPrograms: annualprogram.NewMemoryStore(),
		Taxonomy: taxonomy.NewMemorySource(map[taxonomy.Group][]string{
			taxonomy.GroupBorough:     {"VM"},
			taxonomy.GroupExecutor:    {"di"},
			taxonomy.GroupProjectType: {"integrated"},
		}),
	}
}

func TestNewWithStores(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := prometheus.NewRegistry()
	a, err := app.NewWithStores(testConfig(t, map[string]string{"PAGINATION_DEFAULT_LIMIT": "1"}), memoryStores(),
		app.WithLogger(logger.Discard()),
		app.WithRegisterer(reg),
	)
	require.NoError(t, err)

	for _, name := range []string{"Sherbrooke", "Papineau"} {
		_, err := a.Projects.Create(ctx, project.Props{
			Name:       name,
			BoroughID:  "VM",
			ExecutorID: "di",
			TypeID:     "integrated",
			StartYear:  2026,
			EndYear:    2026,
			Geometry:   project.Geometry{Type: "Point", Coordinates: []float64{-73.6, 45.5}},
		})
		require.NoError(t, err)
	}

	page, err := a.Projects.Search.Execute(ctx, query.Props{}).Unwrap()
	require.NoError(t, err)
	assert.Len(t, page.Items, 1, "configured default limit")
	assert.Equal(t, int64(2), page.Paging.TotalCount)

	_, err = a.Projects.Search.Execute(ctx, query.Props{Limit: 1000}).Unwrap()
	assert.True(t, core.IsInvalidParameter(err), "configured max limit")

	_, err = a.Projects.Get.Execute(ctx, usecase.GetByIDCommand{ID: "P00404"}).Unwrap()
	assert.True(t, core.IsNotFound(err))

	v, err := a.AnnualPrograms.Create(ctx, annualprogram.Props{ExecutorID: "di", Year: 2026})
	require.NoError(t, err)
	_, err = a.AnnualPrograms.Get.Execute(ctx, usecase.GetByIDCommand{ID: v.ID}).Unwrap()
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics.Executions.WithLabelValues("project.search", usecase.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics.Executions.WithLabelValues("project.get", "not_found")))

	assert.NoError(t, a.Health(ctx))
	assert.NoError(t, a.Close(ctx))
}

func TestNewWithStoresRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := app.NewWithStores(testConfig(t, nil), app.Stores{}, app.WithRegisterer(prometheus.NewRegistry()))
	require.ErrorIs(t, err, app.ErrMissingStore)

	cfg := testConfig(t, nil)
	cfg.Pagination.MaxLimit = 0
	_, err = app.NewWithStores(cfg, memoryStores(), app.WithRegisterer(prometheus.NewRegistry()))
	require.ErrorIs(t, err, config.ErrInvalidPagination)
}

func TestPermissions(t *testing.T) {
	t.Parallel()

	a, err := app.NewWithStores(testConfig(t, nil), memoryStores(),
		app.WithLogger(logger.Discard()),
		app.WithRegisterer(prometheus.NewRegistry()),
		app.WithPermissions(func(context.Context, project.Action) bool { return false }),
	)
	require.NoError(t, err)

	_, err = a.AnnualPrograms.Create(context.Background(), annualprogram.Props{ExecutorID: "di", Year: 2026})
	assert.True(t, core.IsForbidden(err))
}

func TestAuthorizer(t *testing.T) {
	t.Parallel()

	auth, err := rbac.NewAuthorizer(map[string]rbac.Role{
		"planner": {Permissions: []string{"project:write"}},
		"manager": {Permissions: []string{annualprogram.PermissionWrite}, Inherits: []string{"planner"}},
	})
	require.NoError(t, err)

	a, err := app.NewWithStores(testConfig(t, nil), memoryStores(),
		app.WithLogger(logger.Discard()),
		app.WithRegisterer(prometheus.NewRegistry()),
		app.WithAuthorizer(auth),
	)
	require.NoError(t, err)

	props := annualprogram.Props{ExecutorID: "di", Year: 2026}
	_, err = a.AnnualPrograms.Create(rbac.WithRole(context.Background(), "planner"), props)
	assert.True(t, core.IsForbidden(err))

	_, err = a.AnnualPrograms.Create(rbac.WithRole(context.Background(), "manager"), props)
	assert.NoError(t, err)

	_, err = a.AnnualPrograms.Create(context.Background(), props)
	assert.True(t, core.IsForbidden(err), "no role in context")
}
