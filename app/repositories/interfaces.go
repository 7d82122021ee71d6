package repositories

import (
	"context"

	"bloglist/app/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create assigns an id and creation time and stores the post.
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// List returns every post in creation order.
	List(ctx context.Context) ([]*models.Post, error)
	// Update applies the set fields of update and returns the stored result.
	Update(ctx context.Context, id primitive.ObjectID, update models.PostUpdate) (*models.Post, error)
	AppendComments(ctx context.Context, id primitive.ObjectID, comments []string) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create stores a new user. Usernames are unique.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// AddPost appends postID to the user's post list.
	AddPost(ctx context.Context, userID, postID primitive.ObjectID) error
	// RemovePost removes postID from the user's post list.
	RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error
}
