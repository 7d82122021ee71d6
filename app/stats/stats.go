// Package stats folds a list of posts into derived facts. The functions are pure
// and never touch a store.
package stats

import "bloglist/app/models"

// AuthorBlogs is the number of posts written by one author.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the total likes collected by one author's posts.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums likes over all posts. It is 0 for an empty list.
func TotalLikes(posts []*models.Post) int {
	total := 0
	for _, p := range posts {
		total += int(p.Likes)
	}
	return total
}

// FavouritePost returns the post with the most likes, or nil for an empty list.
// On ties the earliest post wins.
func FavouritePost(posts []*models.Post) *models.Post {
	var best *models.Post
	for _, p := range posts {
		if best == nil || p.Likes > best.Likes {
			best = p
		}
	}
	return best
}

// MostBlogs returns the author with the most posts, or nil for an empty list.
// On ties the author seen first wins.
func MostBlogs(posts []*models.Post) *AuthorBlogs {
	authors, counts := groupBy(posts, func(*models.Post) int { return 1 })
	author, n, ok := maxFirst(authors, counts)
	if !ok {
		return nil
	}
	return &AuthorBlogs{Author: author, Blogs: n}
}

// MostLikes returns the author whose posts have the most likes in total, or nil for
// an empty list. On ties the author seen first wins.
func MostLikes(posts []*models.Post) *AuthorLikes {
	authors, sums := groupBy(posts, func(p *models.Post) int { return int(p.Likes) })
	author, n, ok := maxFirst(authors, sums)
	if !ok {
		return nil
	}
	return &AuthorLikes{Author: author, Likes: n}
}

// groupBy sums weight per author and returns authors in first-seen order.
func groupBy(posts []*models.Post, weight func(*models.Post) int) ([]string, map[string]int) {
	var order []string
	sums := make(map[string]int)
	for _, p := range posts {
		if _, seen := sums[p.Author]; !seen {
			order = append(order, p.Author)
		}
		sums[p.Author] += weight(p)
	}
	return order, sums
}

func maxFirst(order []string, values map[string]int) (string, int, bool) {
	if len(order) == 0 {
		return "", 0, false
	}
	best := order[0]
	for _, author := range order[1:] {
		if values[author] > values[best] {
			best = author
		}
	}
	return best, values[best], true
}
