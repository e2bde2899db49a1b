//go:build integration

package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/modules/project"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/mongo"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/query"
)

func newMongoStore(t *testing.T) *project.MongoStore {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := mongo.NewWithDatabase(ctx, mongo.Config{
		ConnectionURL:  url,
		Database:       "planning_test",
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    10,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Client().Disconnect(context.Background()) })

	store := project.NewMongoStore(db)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestMongoStore(t *testing.T) {
	ctx := context.Background()
	store := newMongoStore(t)

	for _, p := range fixtures(t) {
		require.NoError(t, store.Save(ctx, p))
	}

	got, err := store.Find(ctx, create(t, query.Props{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"P00004", "P00002", "P00001"}, ids(got))

	got, err = store.Find(ctx, create(t, query.Props{Criteria: query.Criteria{"q": "NOTRE", "startYear": query.Range{From: 2027}}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"P00004"}, ids(got))

	n, err := store.Count(ctx, create(t, query.Props{Criteria: query.Criteria{"boroughId": "VM"}}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	groups, err := store.CountBy(ctx, create(t, query.Props{CountBy: "boroughId"}))
	require.NoError(t, err)
	assert.Equal(t, []query.CountBy{{Key: "VM", Count: 2}, {Key: "RDP", Count: 1}}, groups)

	p, found, err := store.FindOne(ctx, create(t, query.Props{Criteria: query.Criteria{"id": "P00003"}}))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, project.StatusCanceled, p.Status())

	id, err := store.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "P00001", id)

	require.NoError(t, store.Delete(ctx, "P00003"))
	require.ErrorIs(t, store.Delete(ctx, "P00003"), project.ErrProjectNotFound)
}
