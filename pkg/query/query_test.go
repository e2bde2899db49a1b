package query_test

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("negative offset fails", func(t *testing.T) {
		t.Parallel()

		res := query.Create(query.Props{Offset: -1, Limit: 10})
		require.True(t, res.IsFailure())
		assert.True(t, res.Failures().Has("offset"))
		assert.Equal(t, core.CodeInvalidInput, res.Failures()[0].Code)
	})

	t.Run("parses descending order", func(t *testing.T) {
		t.Parallel()

		res := query.Create(query.Props{Offset: 0, Limit: 10, OrderBy: "-createdAt"})
		require.True(t, res.IsSuccess())

		opts := res.Value()
		assert.Equal(t, []query.Order{{Field: "createdAt", Direction: query.Desc}}, opts.OrderBy())
		assert.Equal(t, 0, opts.Offset())
		assert.Equal(t, 10, opts.Limit())
	})

	t.Run("numeric strings coerce", func(t *testing.T) {
		t.Parallel()

		res := query.Create(query.Props{Offset: "20", Limit: "5"})
		require.True(t, res.IsSuccess())
		assert.Equal(t, 20, res.Value().Offset())
		assert.Equal(t, 5, res.Value().Limit())
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()

		res := query.Create(query.Props{Offset: "x", Limit: -2, OrderBy: "name,,"})
		require.True(t, res.IsFailure())
		assert.Equal(t, []string{"offset", "limit", "orderBy"}, res.Failures().Targets())
	})

	t.Run("expand and fields become sets", func(t *testing.T) {
		t.Parallel()

		res := query.Create(
			query.Props{Expand: "interventions,annualDistribution,interventions", Fields: "name, id"},
			query.WithExpandable("interventions", "annualDistribution"),
		)
		require.True(t, res.IsSuccess())

		opts := res.Value()
		assert.Equal(t, []string{"annualDistribution", "interventions"}, opts.Expand())
		assert.Equal(t, []string{"id", "name"}, opts.Fields())
		assert.True(t, opts.HasExpand("interventions"))
		assert.True(t, opts.Selects("name"))
		assert.False(t, opts.Selects("geometry"))
	})
}

func TestWhitelists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		props  query.Props
		opts   []query.Option
		target string
	}{
		{"expand without whitelist", query.Props{Expand: "interventions"}, nil, "expand"},
		{"unknown expand", query.Props{Expand: "owner"}, []query.Option{query.WithExpandable("interventions")}, "expand"},
		{"unsortable field", query.Props{OrderBy: "-budget"}, []query.Option{query.WithSortable("name")}, "orderBy"},
		{"unselectable field", query.Props{Fields: "secret"}, []query.Option{query.WithSelectable("name")}, "fields"},
		{"countBy without whitelist", query.Props{CountBy: "status"}, nil, "countBy"},
		{"unknown countBy", query.Props{CountBy: "name"}, []query.Option{query.WithCountable("status")}, "countBy"},
		{"limit above max", query.Props{Limit: 500}, []query.Option{query.WithMaxLimit(100)}, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := query.Guard(tt.props, tt.opts...)
			require.False(t, outcome.Succeeded)
			assert.Equal(t, []string{tt.target}, outcome.Failures.Targets())
		})
	}

	res := query.Create(query.Props{CountBy: "status"}, query.WithCountable("status", "boroughId"))
	require.True(t, res.IsSuccess())
	assert.Equal(t, "status", res.Value().CountBy())
}

func TestCriteriaGuardAndDefaults(t *testing.T) {
	t.Parallel()

	statuses := []string{"planned", "programmed"}
	criteriaGuard := func(c query.Criteria) guard.Outcome {
		return guard.Check(guard.Argument{
			Name:   "status",
			Value:  c.List("status"),
			Checks: []guard.CheckKind{guard.OneOf},
			Extra:  guard.Extra(statuses...),
		})
	}
	var hookRuns int
	opts := []query.Option{
		query.WithCriteriaGuard(criteriaGuard),
		query.WithDefaultCriteria(func(c query.Criteria) {
			hookRuns++
			if !c.Has("status") {
				c["status"] = statuses
			}
		}),
		query.WithDefaultOrderBy("-startYear"),
	}

	t.Run("failure skips defaults", func(t *testing.T) {
		res := query.Create(query.Props{Criteria: query.Criteria{"status": "wished"}, Offset: -1}, opts...)
		require.True(t, res.IsFailure())
		assert.Equal(t, []string{"offset", "status"}, res.Failures().Targets())
		assert.Zero(t, hookRuns)
	})

	t.Run("defaults fill omitted values", func(t *testing.T) {
		input := query.Criteria{}
		res := query.Create(query.Props{Criteria: input}, opts...)
		require.True(t, res.IsSuccess())
		assert.Equal(t, 1, hookRuns)
		assert.Equal(t, statuses, res.Value().Criteria()["status"])
		assert.Equal(t, []query.Order{{Field: "startYear", Direction: query.Desc}}, res.Value().OrderBy())
		assert.Empty(t, input, "caller criteria untouched")
	})

	t.Run("explicit values win", func(t *testing.T) {
		res := query.Create(query.Props{Criteria: query.Criteria{"status": "planned"}, OrderBy: "name"}, opts...)
		require.True(t, res.IsSuccess())
		assert.Equal(t, []string{"planned"}, res.Value().Criteria().List("status"))
		assert.Equal(t, []query.Order{{Field: "name", Direction: query.Asc}}, res.Value().OrderBy())
	})
}

func TestDerivedShapes(t *testing.T) {
	t.Parallel()

	t.Run("find one", func(t *testing.T) {
		t.Parallel()

		res := query.FindOne(query.Props{Offset: 40, Limit: 100})
		require.True(t, res.IsSuccess())
		assert.Equal(t, 0, res.Value().Offset())
		assert.Equal(t, 1, res.Value().Limit())
	})

	t.Run("paginated defaults", func(t *testing.T) {
		t.Parallel()

		res := query.FindPaginated(query.Props{})
		require.True(t, res.IsSuccess())
		assert.Equal(t, 0, res.Value().Offset())
		assert.Equal(t, query.DefaultLimit, res.Value().Limit())

		res = query.FindPaginated(query.Props{}, query.WithDefaultLimit(25))
		require.True(t, res.IsSuccess())
		assert.Equal(t, 25, res.Value().Limit())
	})

	t.Run("paginated rejects zero limit", func(t *testing.T) {
		t.Parallel()

		res := query.FindPaginated(query.Props{Limit: 0})
		require.True(t, res.IsFailure())
		assert.True(t, res.Failures().Has("limit"))
	})

	t.Run("find by uuid", func(t *testing.T) {
		t.Parallel()

		id := uuid.NewString()
		res := query.FindByUUID(id, query.Props{})
		require.True(t, res.IsSuccess())
		got, ok := res.Value().ID()
		require.True(t, ok)
		assert.Equal(t, id, got)
		assert.Equal(t, 1, res.Value().Limit())

		res = query.FindByUUID("not-a-uuid", query.Props{})
		require.True(t, res.IsFailure())
		assert.Equal(t, "id", res.Failures()[0].Target)
		assert.Equal(t, core.CodeInvalidInput, res.Failures()[0].Code)
	})

	t.Run("find by id with pattern", func(t *testing.T) {
		t.Parallel()

		opt := query.WithIDCheck(guard.MatchesPattern, regexp.MustCompile(`^P\d{5}$`))
		assert.True(t, query.FindByID("P00001", query.Props{}, opt).IsSuccess())
		assert.True(t, query.FindByID("X1", query.Props{}, opt).IsFailure())

		res := query.FindByID(nil, query.Props{}, opt)
		require.True(t, res.IsFailure())
		assert.Equal(t, core.CodeMissingValue, res.Failures()[0].Code)

		res = query.FindByID("", query.Props{})
		require.True(t, res.IsFailure())
		assert.Equal(t, core.CodeMissingValue, res.Failures()[0].Code)
	})

	t.Run("guards agree with builds", func(t *testing.T) {
		t.Parallel()

		opt := query.WithIDCheck(guard.MatchesPattern, regexp.MustCompile(`^P\d{5}$`))
		assert.True(t, query.GuardFindByID("P00001", query.Props{}, opt).Succeeded)
		outcome := query.GuardFindByID("X1", query.Props{Fields: "a,,b"}, opt)
		require.True(t, outcome.IsFailure())
		assert.ElementsMatch(t, []string{"id", "fields"}, outcome.Failures.Targets())

		assert.True(t, query.GuardFindByUUID(uuid.NewString(), query.Props{}).Succeeded)
		assert.True(t, query.GuardFindByUUID("not-a-uuid", query.Props{}).IsFailure())

		assert.True(t, query.GuardFindPaginated(query.Props{}).Succeeded, "default limit applies")
		assert.True(t, query.GuardFindPaginated(query.Props{Limit: 0}).Failures.Has("limit"))
	})
}

func TestCriteria(t *testing.T) {
	t.Parallel()

	c := query.Criteria{
		"status":    "planned, programmed",
		"boroughId": []string{"VM", "RDP"},
		"startYear": query.Range{From: 2020},
		"typeId":    nil,
		"count":     3,
	}
	assert.Equal(t, []string{"planned", "programmed"}, c.List("status"))
	assert.Equal(t, []string{"VM", "RDP"}, c.List("boroughId"))
	assert.Equal(t, []string{"3"}, c.List("count"))
	assert.Nil(t, c.List("typeId"))
	assert.False(t, c.Has("typeId"))
	assert.False(t, c["startYear"].(query.Range).IsOpen())
	assert.True(t, query.Range{}.IsOpen())

	var nilCriteria query.Criteria
	assert.NotNil(t, nilCriteria.Clone())
}

func TestPaging(t *testing.T) {
	t.Parallel()

	res := query.FindPaginated(query.Props{Offset: 10, Limit: 10})
	require.True(t, res.IsSuccess())

	paging := query.NewPaging(res.Value(), 25)
	assert.Equal(t, query.Paging{Offset: 10, Limit: 10, TotalCount: 25}, paging)
	assert.True(t, paging.HasMore())
	assert.False(t, query.NewPaging(res.Value(), 20).HasMore())
}
