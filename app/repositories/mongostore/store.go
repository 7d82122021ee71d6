// Package mongostore implements the repositories on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"bloglist/app/models"
	"bloglist/app/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	postsCollection = "posts"
	usersCollection = "users"
)

// Store holds the client and the collections backing both repositories.
type Store struct {
	client *mongo.Client
	posts  *mongo.Collection
	users  *mongo.Collection
}

// Connect opens a client, pings the server and ensures the unique username index.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{client: client, posts: db.Collection(postsCollection), users: db.Collection(usersCollection)}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create username index: %w", err)
	}
	return s, nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Posts returns the post repository
func (s *Store) Posts() *PostRepository {
	return &PostRepository{coll: s.posts}
}

// Users returns the user repository
func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.users}
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	return err
}

// PostRepository implements repositories.PostRepository on a collection.
type PostRepository struct {
	coll *mongo.Collection
}

// Create inserts the post, filling in its id and creation time.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID returns repositories.ErrNotFound when no post has the id.
func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, mapErr(err)
	}
	return normalizePost(&post), nil
}

// List returns all posts ordered by id, which follows creation order.
func (r *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	posts := []*models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	for _, p := range posts {
		normalizePost(p)
	}
	return posts, nil
}

// Update validates the result before writing, so an invalid update leaves the stored post unchanged.
func (r *PostRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.PostUpdate) (*models.Post, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := upd.Apply(current); err != nil {
		return nil, err
	}

	set := bson.M{
		"title":  current.Title,
		"author": current.Author,
		"url":    current.URL,
		"likes":  current.Likes,
	}
	return r.findAndUpdate(ctx, id, bson.M{"$set": set})
}

// AppendComments pushes the comments in a single update.
func (r *PostRepository) AppendComments(ctx context.Context, id primitive.ObjectID, comments []string) (*models.Post, error) {
	if err := models.ValidateComments(comments); err != nil {
		return nil, err
	}
	return r.findAndUpdate(ctx, id, bson.M{"$push": bson.M{"comments": bson.M{"$each": comments}}})
}

func (r *PostRepository) findAndUpdate(ctx context.Context, id primitive.ObjectID, change bson.M) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, change, opts).Decode(&post); err != nil {
		return nil, mapErr(err)
	}
	return normalizePost(&post), nil
}

// Delete removes the post.
func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// UserRepository implements repositories.UserRepository on a collection.
type UserRepository struct {
	coll *mongo.Collection
}

// Create inserts the user. A taken username yields repositories.ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.BeforeCreate()
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns repositories.ErrNotFound when no user has the id.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername looks a user up through the unique username index.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return normalizeUser(&user), nil
}

// List returns all users ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := []*models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for _, u := range users {
		normalizeUser(u)
	}
	return users, nil
}

// AddPost appends postID to the user's posts.
func (r *UserRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$push": bson.M{"posts": postID}})
}

// RemovePost pulls postID from the user's posts.
func (r *UserRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
}

func (r *UserRepository) updateOne(ctx context.Context, id primitive.ObjectID, change bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, change)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func normalizePost(p *models.Post) *models.Post {
	if p.Comments == nil {
		p.Comments = []string{}
	}
	return p
}

func normalizeUser(u *models.User) *models.User {
	if u.Posts == nil {
		u.Posts = []primitive.ObjectID{}
	}
	return u
}

var (
	_ repositories.PostRepository = (*PostRepository)(nil)
	_ repositories.UserRepository = (*UserRepository)(nil)
)
