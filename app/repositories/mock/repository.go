// Package mock provides in-memory repositories for service and controller tests.
package mock

import (
	"context"
	"sync"

	"bloglist/app/models"
	"bloglist/app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepository keeps posts in memory. Setting Err makes every call fail with it.
type PostRepository struct {
	posts map[primitive.ObjectID]*models.Post
	order []primitive.ObjectID
	mutex sync.RWMutex
	Err   error
}

// UserRepository keeps users in memory. Setting Err makes every call fail with it.
type UserRepository struct {
	users map[primitive.ObjectID]*models.User
	order []primitive.ObjectID
	mutex sync.RWMutex
	Err   error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[primitive.ObjectID]*models.Post)}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func copyPost(p *models.Post) *models.Post {
	c := *p
	c.Comments = append([]string{}, p.Comments...)
	return &c
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Posts = append([]primitive.ObjectID{}, u.Posts...)
	return &c
}

// PostRepository implementation
func (m *PostRepository) Create(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	post.BeforeCreate()
	m.posts[post.ID] = copyPost(post)
	m.order = append(m.order, post.ID)
	return nil
}

func (m *PostRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyPost(post), nil
}

func (m *PostRepository) List(_ context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	posts := []*models.Post{}
	for _, id := range m.order {
		if post, exists := m.posts[id]; exists {
			posts = append(posts, copyPost(post))
		}
	}
	return posts, nil
}

func (m *PostRepository) Update(_ context.Context, id primitive.ObjectID, upd models.PostUpdate) (*models.Post, error) {
	return m.modify(id, upd.Apply)
}

func (m *PostRepository) AppendComments(_ context.Context, id primitive.ObjectID, comments []string) (*models.Post, error) {
	return m.modify(id, func(p *models.Post) error {
		return p.AddComments(comments...)
	})
}

func (m *PostRepository) modify(id primitive.ObjectID, change func(*models.Post) error) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	stored, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post := copyPost(stored)
	if err := change(post); err != nil {
		return nil, err
	}
	m.posts[id] = post
	return copyPost(post), nil
}

func (m *PostRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// UserRepository implementation
func (m *UserRepository) Create(_ context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicateUsername
		}
	}
	user.BeforeCreate()
	m.users[user.ID] = copyUser(user)
	m.order = append(m.order, user.ID)
	return nil
}

func (m *UserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return copyUser(user), nil
}

func (m *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	for _, u := range m.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) List(_ context.Context) ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	users := []*models.User{}
	for _, id := range m.order {
		users = append(users, copyUser(m.users[id]))
	}
	return users, nil
}

func (m *UserRepository) AddPost(_ context.Context, userID, postID primitive.ObjectID) error {
	return m.modify(userID, func(u *models.User) { u.AddPost(postID) })
}

func (m *UserRepository) RemovePost(_ context.Context, userID, postID primitive.ObjectID) error {
	return m.modify(userID, func(u *models.User) { u.RemovePost(postID) })
}

func (m *UserRepository) modify(id primitive.ObjectID, change func(*models.User)) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	user, exists := m.users[id]
	if !exists {
		return repositories.ErrNotFound
	}
	change(user)
	return nil
}

var (
	_ repositories.PostRepository = (*PostRepository)(nil)
	_ repositories.UserRepository = (*UserRepository)(nil)
)
