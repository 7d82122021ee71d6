package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const msgTitleOrURLMissing = "title or url missing"

// NewPost builds an unsaved post from create input. A falsy likes value is already zero.
func NewPost(in PostInput) *Post {
	return &Post{
		Title:    in.Title,
		Author:   in.Author,
		URL:      in.URL,
		Likes:    in.Likes,
		Comments: []string{},
	}
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Title", "URL":
			return NewValidationError(msgTitleOrURLMissing)
		case "Likes":
			return NewValidationError("likes must not be negative")
		}
	}
	return NewValidationError(err.Error())
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.ID.IsZero() {
		p.ID = NewID()
	}
	if p.CreatedAt.IsZero() {
		// Millisecond precision survives every store round trip.
		p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	if p.Comments == nil {
		p.Comments = []string{}
	}
}

// ValidateComments rejects an empty batch or any blank comment.
func ValidateComments(comments []string) error {
	if len(comments) == 0 {
		return NewValidationError("comment missing")
	}
	for _, c := range comments {
		if strings.TrimSpace(c) == "" {
			return NewValidationError("comment missing")
		}
	}
	return nil
}

// AddComments appends comments in order. Blank comments are rejected.
func (p *Post) AddComments(comments ...string) error {
	if err := ValidateComments(comments); err != nil {
		return err
	}
	p.Comments = append(p.Comments, comments...)
	return nil
}

// Apply replaces the fields set in u and validates the result.
func (u PostUpdate) Apply(p *Post) error {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Author != nil {
		p.Author = *u.Author
	}
	if u.URL != nil {
		p.URL = *u.URL
	}
	if u.Likes != nil {
		p.Likes = *u.Likes
	}
	return p.Validate()
}

// Summary returns the fields of the post shown in user listings.
func (p *Post) Summary() PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title, Author: p.Author, URL: p.URL, Likes: p.Likes}
}

// Populate joins the owner summary into the post. A nil owner leaves user empty.
func (p *Post) Populate(owner *User) PopulatedPost {
	out := PopulatedPost{
		ID:        p.ID,
		Title:     p.Title,
		Author:    p.Author,
		URL:       p.URL,
		Likes:     p.Likes,
		Comments:  p.Comments,
		CreatedAt: p.CreatedAt,
	}
	if out.Comments == nil {
		out.Comments = []string{}
	}
	if owner != nil {
		s := owner.Summary()
		out.User = &s
	}
	return out
}
