package services

import (
	"context"
	"errors"
	"fmt"

	"bloglist/app/auth"
	"bloglist/app/models"
	"bloglist/app/repositories"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePostRequest is the input of PostService.Create.
type CreatePostRequest struct {
	Token string
	Body  models.PostInput
}

// AddCommentsRequest is the input of PostService.AddComments.
type AddCommentsRequest struct {
	ID       string
	Comments []string
}

// UpdatePostRequest is the input of PostService.Update. Token is only checked
// when owner-only updates are enabled.
type UpdatePostRequest struct {
	Token string
	ID    string
	Body  models.PostUpdate
}

// DeletePostRequest is the input of PostService.Delete.
type DeletePostRequest struct {
	Token string
	ID    string
}

// PostService handles business logic for blog posts
type PostService struct {
	posts           repositories.PostRepository
	users           repositories.UserRepository
	tokens          CallerResolver
	ownerOnlyUpdate bool
	log             logrus.FieldLogger
}

// PostOption configures a PostService.
type PostOption func(*PostService)

// WithOwnerOnlyUpdate makes updates follow the same ownership rule as deletes.
func WithOwnerOnlyUpdate(enabled bool) PostOption {
	return func(s *PostService) { s.ownerOnlyUpdate = enabled }
}

// WithLogger sets the logger used for audit messages.
func WithLogger(log logrus.FieldLogger) PostOption {
	return func(s *PostService) { s.log = log }
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, tokens CallerResolver, opts ...PostOption) *PostService {
	s := &PostService{
		posts:  posts,
		users:  users,
		tokens: tokens,
		log:    discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every post with its owner's summary joined in.
func (s *PostService) List(ctx context.Context) ([]models.PopulatedPost, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]models.PopulatedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Populate(byID[p.User]))
	}
	return out, nil
}

// Get retrieves a post by its string id
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	postID, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

// Create stores a new post owned by the caller and records it on the caller's user.
func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	owner, err := s.caller(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	post := models.NewPost(req.Body)
	if err := post.Validate(); err != nil {
		return nil, err
	}
	post.User = owner.ID

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if err := s.users.AddPost(ctx, owner.ID, post.ID); err != nil {
		if derr := s.posts.Delete(ctx, post.ID); derr != nil {
			s.log.WithError(derr).WithField("post", post.ID.Hex()).Error("failed to roll back post without owner")
		}
		return nil, fmt.Errorf("record post %s on user %s: %w", post.ID.Hex(), owner.ID.Hex(), err)
	}

	s.log.WithFields(logrus.Fields{"post": post.ID.Hex(), "user": owner.Username}).Info("post created")
	return post, nil
}

// AddComments appends comments to a post. No token is required.
func (s *PostService) AddComments(ctx context.Context, req AddCommentsRequest) (*models.Post, error) {
	postID, err := models.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateComments(req.Comments); err != nil {
		return nil, err
	}
	post, err := s.posts.AppendComments(ctx, postID, req.Comments)
	if err != nil {
		return nil, fmt.Errorf("comment on post %s: %w", req.ID, err)
	}
	return post, nil
}

// Update replaces the given fields of a post. The owner is kept as is.
func (s *PostService) Update(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	if s.ownerOnlyUpdate {
		caller, err := s.caller(ctx, req.Token)
		if err != nil {
			return nil, err
		}
		if _, err := s.ownedPost(ctx, req.ID, caller.ID); err != nil {
			return nil, err
		}
	}

	postID, err := models.ParseID(req.ID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.Update(ctx, postID, req.Body)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", req.ID, err)
	}
	return post, nil
}

// Delete removes a post owned by the caller and drops it from the owner's post list.
func (s *PostService) Delete(ctx context.Context, req DeletePostRequest) error {
	caller, err := s.caller(ctx, req.Token)
	if err != nil {
		return err
	}
	post, err := s.ownedPost(ctx, req.ID, caller.ID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post %s: %w", req.ID, err)
	}
	err = s.users.RemovePost(ctx, post.User, post.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		s.log.WithField("post", req.ID).Warn("owner removed while deleting post")
	} else if err != nil {
		return fmt.Errorf("remove post %s from user %s: %w", req.ID, post.User.Hex(), err)
	}

	s.log.WithFields(logrus.Fields{"post": req.ID, "user": caller.Username}).Info("post deleted")
	return nil
}

// caller resolves the token and loads the user behind it. A token whose user
// is gone is treated as invalid.
func (s *PostService) caller(ctx context.Context, token string) (*models.User, error) {
	callerID, err := s.tokens.ResolveCaller(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, callerID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s no longer exists", auth.ErrUnauthenticated, callerID.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("load caller %s: %w", callerID.Hex(), err)
	}
	return user, nil
}

// ownedPost loads the post and checks the caller owns it. The post is loaded
// before its owner is looked at.
func (s *PostService) ownedPost(ctx context.Context, id string, callerID primitive.ObjectID) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(post.User, callerID) {
		s.log.WithFields(logrus.Fields{"post": id, "caller": callerID.Hex()}).Warn("ownership check denied")
		return nil, ErrUnauthorized
	}
	return post, nil
}
