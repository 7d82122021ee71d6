package services

import (
	"context"
	"errors"
	"fmt"

	"bloglist/app/models"
	"bloglist/app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateUserRequest is the body accepted when registering a user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserService registers and lists users
type UserService struct {
	users  repositories.UserRepository
	posts  repositories.PostRepository
	hasher PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository, posts repositories.PostRepository, hasher PasswordHasher) *UserService {
	return &UserService{users: users, posts: posts, hasher: hasher}
}

// Create validates and stores a new user with a hashed password.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if len(req.Password) < models.MinPasswordLength {
		return nil, models.NewValidationError(fmt.Sprintf("password must be at least %d characters long", models.MinPasswordLength))
	}
	user := &models.User{Username: req.Username, Name: req.Name}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return nil, models.NewValidationError("username must be unique")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// List returns every user with summaries of their posts.
func (s *UserService) List(ctx context.Context) ([]models.PopulatedUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	byID := make(map[primitive.ObjectID]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	out := make([]models.PopulatedUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Populate(byID))
	}
	return out, nil
}
