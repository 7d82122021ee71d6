package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog post and the user who created it.
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title" validate:"required"`
	Author    string             `json:"author" bson:"author"`
	URL       string             `json:"url" bson:"url" validate:"required"`
	Likes     Likes              `json:"likes" bson:"likes" validate:"gte=0"`
	Comments  []string           `json:"comments" bson:"comments" validate:"-"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// User represents an account that owns zero or more posts.
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id"`
	Username     string               `json:"username" bson:"username" validate:"required,min=3"`
	Name         string               `json:"name" bson:"name"`
	PasswordHash string               `json:"-" bson:"password_hash"`
	Posts        []primitive.ObjectID `json:"posts" bson:"posts" validate:"-"`
}

// UserSummary is the part of a user joined into post listings.
type UserSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
}

// PostSummary is the part of a post joined into user listings.
type PostSummary struct {
	ID     primitive.ObjectID `json:"id"`
	Title  string             `json:"title"`
	Author string             `json:"author"`
	URL    string             `json:"url"`
	Likes  Likes              `json:"likes"`
}

// PopulatedPost is a post with its owner's summary in place of the owner id.
// User is nil when the owner record no longer exists.
type PopulatedPost struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Author    string             `json:"author"`
	URL       string             `json:"url"`
	Likes     Likes              `json:"likes"`
	Comments  []string           `json:"comments"`
	User      *UserSummary       `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
}

// PopulatedUser is a user with summaries of its posts in place of post ids.
type PopulatedUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Posts    []PostSummary      `json:"posts"`
}

// PostInput is the body accepted when creating a post.
type PostInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  Likes  `json:"likes"`
}

// PostUpdate carries the replaceable fields of a post. Nil fields are left unchanged.
type PostUpdate struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *Likes  `json:"likes"`
}
