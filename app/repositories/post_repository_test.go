package repositories

import (
	"context"
	"sync"
	"testing"

	"bloglist/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerPostRepository(newTestDB(t))
	owner := models.NewID()

	newPost := func(title string) *models.Post {
		p := models.NewPost(models.PostInput{Title: title, Author: "Edsger W. Dijkstra", URL: "http://example.com/" + title})
		p.User = owner
		return p
	}

	t.Run("create and get post", func(t *testing.T) {
		post := newPost("first")
		require.NoError(t, repo.Create(ctx, post))
		assert.False(t, post.ID.IsZero())
		assert.False(t, post.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, got.Title)
		assert.Equal(t, owner, got.User)
		assert.Equal(t, []string{}, got.Comments)
		assert.True(t, post.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, models.NewID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list in creation order", func(t *testing.T) {
		second := newPost("second")
		third := newPost("third")
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, third))

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "first", posts[0].Title)
		assert.Equal(t, "second", posts[1].Title)
		assert.Equal(t, "third", posts[2].Title)
	})

	t.Run("update post", func(t *testing.T) {
		post := newPost("to-update")
		require.NoError(t, repo.Create(ctx, post))

		likes := models.Likes(8)
		updated, err := repo.Update(ctx, post.ID, models.PostUpdate{Title: strPtr("updated"), Likes: &likes})
		require.NoError(t, err)
		assert.Equal(t, "updated", updated.Title)
		assert.Equal(t, models.Likes(8), updated.Likes)
		assert.Equal(t, post.URL, updated.URL)
		assert.Equal(t, owner, updated.User)

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "updated", got.Title)
	})

	t.Run("invalid update leaves post unchanged", func(t *testing.T) {
		post := newPost("keep")
		require.NoError(t, repo.Create(ctx, post))

		_, err := repo.Update(ctx, post.ID, models.PostUpdate{URL: strPtr("")})
		var verr *models.ValidationError
		assert.ErrorAs(t, err, &verr)

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.URL, got.URL)
	})

	t.Run("update missing post", func(t *testing.T) {
		_, err := repo.Update(ctx, models.NewID(), models.PostUpdate{Title: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("append comments", func(t *testing.T) {
		post := newPost("commented")
		require.NoError(t, repo.Create(ctx, post))

		_, err := repo.AppendComments(ctx, post.ID, []string{"first!"})
		require.NoError(t, err)
		got, err := repo.AppendComments(ctx, post.ID, []string{"second", "third"})
		require.NoError(t, err)
		assert.Equal(t, []string{"first!", "second", "third"}, got.Comments)

		_, err = repo.AppendComments(ctx, models.NewID(), []string{"x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("concurrent comments are all kept", func(t *testing.T) {
		post := newPost("busy")
		require.NoError(t, repo.Create(ctx, post))

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.AppendComments(ctx, post.ID, []string{"hi"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, got.Comments, 4)
	})

	t.Run("delete post", func(t *testing.T) {
		post := newPost("doomed")
		require.NoError(t, repo.Create(ctx, post))

		require.NoError(t, repo.Delete(ctx, post.ID))
		_, err := repo.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, post.ID), ErrNotFound)
	})
}
