package mongostore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bloglist/app/models"
	"bloglist/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func startMongo(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	store, err := Connect(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "bloglist_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })
	return store
}

func TestMongoStore(t *testing.T) {
	store := startMongo(t)
	ctx := context.Background()
	posts, users := store.Posts(), store.Users()

	user := &models.User{Username: "root", Name: "Superuser", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))

	t.Run("duplicate username", func(t *testing.T) {
		err := users.Create(ctx, &models.User{Username: "root"})
		assert.ErrorIs(t, err, repositories.ErrDuplicateUsername)
	})

	t.Run("get user", func(t *testing.T) {
		got, err := users.GetByUsername(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)

		_, err = users.GetByID(ctx, models.NewID())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	var first, second *models.Post
	t.Run("create and list posts", func(t *testing.T) {
		first = models.NewPost(models.PostInput{Title: "first", URL: "http://a"})
		first.User = user.ID
		second = models.NewPost(models.PostInput{Title: "second", URL: "http://b", Likes: 3})
		second.User = user.ID
		require.NoError(t, posts.Create(ctx, first))
		require.NoError(t, posts.Create(ctx, second))
		require.NoError(t, users.AddPost(ctx, user.ID, first.ID))
		require.NoError(t, users.AddPost(ctx, user.ID, second.ID))

		list, err := posts.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "first", list[0].Title)
		assert.Equal(t, models.Likes(3), list[1].Likes)
		assert.Equal(t, []string{}, list[0].Comments)
	})

	t.Run("update and comment", func(t *testing.T) {
		title := "renamed"
		got, err := posts.Update(ctx, first.ID, models.PostUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Equal(t, "http://a", got.URL)

		got, err = posts.AppendComments(ctx, first.ID, []string{"nice", "read"})
		require.NoError(t, err)
		assert.Equal(t, []string{"nice", "read"}, got.Comments)

		_, err = posts.Update(ctx, models.NewID(), models.PostUpdate{Title: &title})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, posts.Delete(ctx, second.ID))
		require.NoError(t, users.RemovePost(ctx, user.ID, second.ID))
		assert.ErrorIs(t, posts.Delete(ctx, second.ID), repositories.ErrNotFound)

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{first.ID}, got.Posts)
	})
}
