package repositories

import (
	"context"

	"bloglist/app/models"

	"github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	return update(ctx, r.db, func(txn *badger.Txn) error {
		return setEntity(txn, entityKey(PostKeyPrefix, post.ID), post)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(PostKeyPrefix, id), &post)
	})
	if err != nil {
		return nil, err
	}
	return normalizePost(&post), nil
}

// List retrieves all posts. Ids are time ordered, so key order is creation order.
func (r *BadgerPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scan(txn, PostKeyPrefix, func(val []byte) error {
			var post models.Post
			if err := unmarshalEntity(val, &post); err != nil {
				return err
			}
			posts = append(posts, normalizePost(&post))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update replaces the fields set in upd and returns the updated post
func (r *BadgerPostRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.PostUpdate) (*models.Post, error) {
	return r.modify(ctx, id, upd.Apply)
}

// AppendComments adds comments to the end of the post's comment list
func (r *BadgerPostRepository) AppendComments(ctx context.Context, id primitive.ObjectID, comments []string) (*models.Post, error) {
	return r.modify(ctx, id, func(p *models.Post) error {
		return p.AddComments(comments...)
	})
}

// modify reads, changes and writes a post inside one transaction.
func (r *BadgerPostRepository) modify(ctx context.Context, id primitive.ObjectID, change func(*models.Post) error) (*models.Post, error) {
	var post models.Post
	key := entityKey(PostKeyPrefix, id)
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		post = models.Post{}
		if err := getEntity(txn, key, &post); err != nil {
			return err
		}
		normalizePost(&post)
		if err := change(&post); err != nil {
			return err
		}
		return setEntity(txn, key, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func normalizePost(p *models.Post) *models.Post {
	if p.Comments == nil {
		p.Comments = []string{}
	}
	return p
}
