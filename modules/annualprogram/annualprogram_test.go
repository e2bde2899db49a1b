package annualprogram_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/modules/annualprogram"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/logger"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/taxonomy"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/usecase"
)

var (
	newID         = uuid.NewString()
	programmingID = uuid.NewString()
	submittedID   = uuid.NewString()
)

func program(t *testing.T, id string, year int, budget float64, status annualprogram.Status) *annualprogram.AnnualProgram {
	t.Helper()
	res := annualprogram.New(annualprogram.Props{ID: id, ExecutorID: "di", Year: year, BudgetCap: budget, Status: status})
	require.True(t, res.IsSuccess(), "%v", res.Err())
	return res.Value()
}

func newModule(t *testing.T, canWrite bool) *annualprogram.Module {
	t.Helper()
	store := annualprogram.NewMemoryStore(
		program(t, newID, 2026, 0, annualprogram.StatusNew),
		program(t, programmingID, 2025, 0, annualprogram.StatusProgramming),
		program(t, submittedID, 2024, 1_000_000, annualprogram.StatusSubmittedFinal),
	)
	return annualprogram.NewModule(annualprogram.Config{
		Store:    store,
		Taxonomy: taxonomy.NewValidator(taxonomy.NewMemorySource(map[taxonomy.Group][]string{taxonomy.GroupExecutor: {"di", "other"}})),
		CanWrite: func(context.Context) bool { return canWrite },
		Runtime:  usecase.NewRuntime(usecase.WithLogger(logger.Discard())),
		MaxLimit: 100,
		Now:      func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) },
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	res := annualprogram.New(annualprogram.Props{ID: "1", Year: -1, BudgetCap: -5})
	require.True(t, res.IsFailure())
	assert.ElementsMatch(t, []string{"id", "executorId", "year", "budgetCap"}, res.Failures().Targets())

	a := program(t, newID, 2026, 0, "")
	assert.Equal(t, annualprogram.StatusNew, a.Status())
}

func TestGetAndSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newModule(t, true)

	_, err := m.Get.Execute(ctx, usecase.GetByIDCommand{ID: "P00001"}).Unwrap()
	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, core.KindInvalidParameter, e.Kind)
	assert.Equal(t, []string{"id"}, e.Failures.Targets())

	_, err = m.Get.Execute(ctx, usecase.GetByIDCommand{ID: uuid.NewString()}).Unwrap()
	assert.True(t, core.IsNotFound(err))

	v, err := m.Get.Execute(ctx, usecase.GetByIDCommand{ID: submittedID, Fields: "year,status"}).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, annualprogram.View{ID: submittedID, Year: 2024, Status: annualprogram.StatusSubmittedFinal}, v)

	page, err := m.Search.Execute(ctx, query.Props{Criteria: query.Criteria{"year": query.Range{From: "2025"}}}).Unwrap()
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2026, page.Items[0].Year)

	_, err = m.Search.Execute(ctx, query.Props{Criteria: query.Criteria{"executorId": "unknown", "year": "abc"}}).Unwrap()
	require.ErrorAs(t, err, &e)
	assert.ElementsMatch(t, []string{"executorId", "year"}, e.Failures.Targets())

	_, err = m.Search.Execute(ctx, query.Props{Criteria: query.Criteria{"status": ""}}).Unwrap()
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"status"}, e.Failures.Targets())

	counts, err := m.CountBy.Execute(ctx, query.Props{CountBy: "status"}).Unwrap()
	require.NoError(t, err)
	assert.Len(t, counts, 3)
}

func TestDeleteOnlyNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newModule(t, true)

	_, err := m.Delete.Execute(ctx, usecase.DeleteCommand{ID: programmingID}).Unwrap()
	assert.True(t, core.IsUnprocessable(err))

	require.True(t, m.Delete.Execute(ctx, usecase.DeleteCommand{ID: newID}).IsRight())
	_, err = m.Get.Execute(ctx, usecase.GetByIDCommand{ID: newID}).Unwrap()
	assert.True(t, core.IsNotFound(err))

	_, err = newModule(t, false).Delete.Execute(ctx, usecase.DeleteCommand{ID: newID}).Unwrap()
	assert.True(t, core.IsForbidden(err))
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newModule(t, true)

	v, err := m.UpdateStatus.Execute(ctx, usecase.UpdateStatusCommand[annualprogram.Status]{ID: newID, Status: annualprogram.StatusProgramming}).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, annualprogram.StatusProgramming, v.Status)
	require.NotNil(t, v.UpdatedAt)
	assert.Equal(t, 2026, v.UpdatedAt.Year())

	_, err = m.UpdateStatus.Execute(ctx, usecase.UpdateStatusCommand[annualprogram.Status]{ID: programmingID, Status: annualprogram.StatusSubmittedFinal}).Unwrap()
	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, core.KindUnprocessable, e.Kind)
	assert.Equal(t, []string{"budgetCap"}, e.Failures.Targets())

	_, err = m.UpdateStatus.Execute(ctx, usecase.UpdateStatusCommand[annualprogram.Status]{ID: submittedID, Status: annualprogram.StatusNew}).Unwrap()
	require.ErrorAs(t, err, &e)
	assert.True(t, e.Failures.HasCode(core.CodeInvalidStatusTransition))
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newModule(t, true)

	v, err := m.Create(ctx, annualprogram.Props{ExecutorID: "other", Year: 2027, BudgetCap: 10})
	require.NoError(t, err)
	assert.NoError(t, uuid.Validate(v.ID))
	assert.Equal(t, annualprogram.StatusNew, v.Status)

	_, err = m.Create(ctx, annualprogram.Props{ExecutorID: "nobody", Year: 2027})
	assert.True(t, core.IsInvalidParameter(err))
}
