package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinPasswordLength is the shortest password accepted for a new user.
const MinPasswordLength = 3

// Validate checks the username rule
func (u *User) Validate() error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field() == "Username" {
		return NewValidationError("username must be at least 3 characters long")
	}
	return NewValidationError(err.Error())
}

// BeforeCreate assigns an id and an empty post list
func (u *User) BeforeCreate() {
	if u.ID.IsZero() {
		u.ID = NewID()
	}
	if u.Posts == nil {
		u.Posts = []primitive.ObjectID{}
	}
}

// AddPost appends a post id to the user's post list
func (u *User) AddPost(id primitive.ObjectID) {
	u.Posts = append(u.Posts, id)
}

// RemovePost drops every occurrence of id and reports whether anything was removed.
func (u *User) RemovePost(id primitive.ObjectID) bool {
	kept := u.Posts[:0]
	removed := false
	for _, p := range u.Posts {
		if p == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	u.Posts = kept
	return removed
}

// Summary returns the fields of the user joined into post listings
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Name: u.Name}
}

// Populate replaces post ids with summaries of the given posts, keeping the user's order.
// Ids without a matching post are skipped.
func (u *User) Populate(posts map[primitive.ObjectID]*Post) PopulatedUser {
	out := PopulatedUser{ID: u.ID, Username: u.Username, Name: u.Name, Posts: []PostSummary{}}
	for _, id := range u.Posts {
		if p, ok := posts[id]; ok {
			out.Posts = append(out.Posts, p.Summary())
		}
	}
	return out
}
