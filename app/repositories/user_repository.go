package repositories

import (
	"context"
	"errors"

	"bloglist/app/models"

	"github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgerUserRepository implements UserRepository using BadgerDB.
// A username key maps each username to its user id.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

func usernameKey(username string) []byte {
	return []byte(UsernameKeyPrefix + username)
}

// Create creates a new user
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	user.BeforeCreate()
	return update(ctx, r.db, func(txn *badger.Txn) error {
		_, err := txn.Get(usernameKey(user.Username))
		if err == nil {
			return ErrDuplicateUsername
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set(usernameKey(user.Username), []byte(user.ID.Hex())); err != nil {
			return err
		}
		return setEntity(txn, entityKey(UserKeyPrefix, user.ID), user)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return getEntity(txn, entityKey(UserKeyPrefix, id), &user)
	})
	if err != nil {
		return nil, err
	}
	return normalizeUser(&user), nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		hex, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		id, err := primitive.ObjectIDFromHex(string(hex))
		if err != nil {
			return err
		}
		return getEntity(txn, entityKey(UserKeyPrefix, id), &user)
	})
	if err != nil {
		return nil, err
	}
	return normalizeUser(&user), nil
}

// List retrieves all users in creation order
func (r *BadgerUserRepository) List(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scan(txn, UserKeyPrefix, func(val []byte) error {
			var user models.User
			if err := unmarshalEntity(val, &user); err != nil {
				return err
			}
			users = append(users, normalizeUser(&user))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AddPost appends a post id to the user's list
func (r *BadgerUserRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.modify(ctx, userID, func(u *models.User) {
		u.AddPost(postID)
	})
}

// RemovePost removes a post id from the user's list
func (r *BadgerUserRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.modify(ctx, userID, func(u *models.User) {
		u.RemovePost(postID)
	})
}

func (r *BadgerUserRepository) modify(ctx context.Context, id primitive.ObjectID, change func(*models.User)) error {
	key := entityKey(UserKeyPrefix, id)
	return update(ctx, r.db, func(txn *badger.Txn) error {
		var user models.User
		if err := getEntity(txn, key, &user); err != nil {
			return err
		}
		change(normalizeUser(&user))
		return setEntity(txn, key, &user)
	})
}

func normalizeUser(u *models.User) *models.User {
	if u.Posts == nil {
		u.Posts = []primitive.ObjectID{}
	}
	return u
}
