package stats

import (
	"testing"

	"bloglist/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listWithManyPosts() []*models.Post {
	return []*models.Post{
		{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
		{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://example.com/goto", Likes: 5},
		{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://example.com/csr", Likes: 12},
		{Title: "First class tests", Author: "Robert C. Martin", URL: "http://example.com/fct", Likes: 10},
		{Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://example.com/tdd", Likes: 0},
		{Title: "Type wars", Author: "Robert C. Martin", URL: "http://example.com/tw", Likes: 2},
	}
}

func TestTotalLikes(t *testing.T) {
	t.Run("of empty list is zero", func(t *testing.T) {
		assert.Equal(t, 0, TotalLikes(nil))
		assert.Equal(t, 0, TotalLikes([]*models.Post{}))
	})

	t.Run("when list has only one post equals the likes of that", func(t *testing.T) {
		posts := []*models.Post{{Title: "one", Likes: 5}}
		assert.Equal(t, 5, TotalLikes(posts))
	})

	t.Run("of a bigger list is calculated right", func(t *testing.T) {
		posts := listWithManyPosts()
		sum := 0
		for _, p := range posts {
			sum += int(p.Likes)
		}
		assert.Equal(t, 36, TotalLikes(posts))
		assert.Equal(t, sum, TotalLikes(posts))
	})
}

func TestFavouritePost(t *testing.T) {
	t.Run("of empty list is nil", func(t *testing.T) {
		assert.Nil(t, FavouritePost(nil))
	})

	t.Run("has likes at least those of every post", func(t *testing.T) {
		posts := listWithManyPosts()
		fav := FavouritePost(posts)
		require.NotNil(t, fav)
		assert.Equal(t, "Canonical string reduction", fav.Title)
		for _, p := range posts {
			assert.GreaterOrEqual(t, fav.Likes, p.Likes)
		}
	})

	t.Run("earliest maximum wins", func(t *testing.T) {
		posts := []*models.Post{
			{Title: "a", Likes: 1},
			{Title: "b", Likes: 9},
			{Title: "c", Likes: 9},
		}
		assert.Equal(t, "b", FavouritePost(posts).Title)
	})
}

func TestMostBlogs(t *testing.T) {
	t.Run("of empty list is nil", func(t *testing.T) {
		assert.Nil(t, MostBlogs(nil))
	})

	t.Run("selects by count", func(t *testing.T) {
		assert.Equal(t, &AuthorBlogs{Author: "Robert C. Martin", Blogs: 3}, MostBlogs(listWithManyPosts()))
	})

	t.Run("count beats author name ordering", func(t *testing.T) {
		posts := []*models.Post{
			{Author: "Zed"},
			{Author: "Alice"},
			{Author: "Alice"},
		}
		assert.Equal(t, &AuthorBlogs{Author: "Alice", Blogs: 2}, MostBlogs(posts))
	})

	t.Run("ties go to the first seen author", func(t *testing.T) {
		posts := []*models.Post{
			{Author: "Alice"},
			{Author: "Zed"},
			{Author: "Zed"},
			{Author: "Alice"},
		}
		assert.Equal(t, &AuthorBlogs{Author: "Alice", Blogs: 2}, MostBlogs(posts))
	})
}

func TestMostLikes(t *testing.T) {
	t.Run("of empty list is nil", func(t *testing.T) {
		assert.Nil(t, MostLikes(nil))
	})

	t.Run("returns the author with most likes in total", func(t *testing.T) {
		posts := listWithManyPosts()
		got := MostLikes(posts)
		require.NotNil(t, got)
		assert.Equal(t, &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, got)

		sum := 0
		for _, p := range posts {
			if p.Author == got.Author {
				sum += int(p.Likes)
			}
		}
		assert.Equal(t, sum, got.Likes)
	})

	t.Run("ties go to the first seen author", func(t *testing.T) {
		posts := []*models.Post{
			{Author: "B", Likes: 3},
			{Author: "A", Likes: 1},
			{Author: "A", Likes: 2},
		}
		assert.Equal(t, &AuthorLikes{Author: "B", Likes: 3}, MostLikes(posts))
	})
}
