package services

import (
	"context"
	"fmt"

	"bloglist/app/models"
	"bloglist/app/repositories"
	"bloglist/app/stats"
)

// Summary holds the aggregations over all stored posts. Pointer fields are nil
// when there are no posts.
type Summary struct {
	Posts         int                `json:"posts"`
	TotalLikes    int                `json:"totalLikes"`
	FavouritePost *models.Post       `json:"favouritePost"`
	MostBlogs     *stats.AuthorBlogs `json:"mostBlogs"`
	MostLikes     *stats.AuthorLikes `json:"mostLikes"`
}

// StatsService computes the summary from the post store
type StatsService struct {
	posts repositories.PostRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(posts repositories.PostRepository) *StatsService {
	return &StatsService{posts: posts}
}

// Summary loads every post and folds it into a Summary
func (s *StatsService) Summary(ctx context.Context) (*Summary, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &Summary{
		Posts:         len(posts),
		TotalLikes:    stats.TotalLikes(posts),
		FavouritePost: stats.FavouritePost(posts),
		MostBlogs:     stats.MostBlogs(posts),
		MostLikes:     stats.MostLikes(posts),
	}, nil
}
