package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"bloglist/app/middleware"
	"bloglist/app/models"
	"bloglist/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	responder
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log logrus.FieldLogger) *PostController {
	return &PostController{responder: responder{log: log}, postService: postService}
}

// Index lists all posts with their owners
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.List(r.Context())
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, posts)
}

// Show returns a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// Create stores a new post owned by the token's user
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var body models.PostInput
	if err := decodeBody(r, &body); err != nil {
		pc.handleError(w, r, err)
		return
	}

	post, err := pc.postService.Create(r.Context(), services.CreatePostRequest{
		Token: middleware.Token(r.Context()),
		Body:  body,
	})
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusCreated, post)
}

// stringList decodes either a single string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

type commentBody struct {
	Comment  stringList `json:"comment"`
	Comments stringList `json:"comments"`
}

// AddComments appends one or more comments to a post
func (pc *PostController) AddComments(w http.ResponseWriter, r *http.Request) {
	var body commentBody
	if err := decodeBody(r, &body); err != nil {
		pc.handleError(w, r, err)
		return
	}

	comments := append([]string{}, body.Comment...)
	comments = append(comments, body.Comments...)
	post, err := pc.postService.AddComments(r.Context(), services.AddCommentsRequest{
		ID:       mux.Vars(r)["id"],
		Comments: comments,
	})
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// Update replaces the fields given in the body
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	var body models.PostUpdate
	if err := decodeBody(r, &body); err != nil {
		pc.handleError(w, r, err)
		return
	}

	post, err := pc.postService.Update(r.Context(), services.UpdatePostRequest{
		Token: middleware.Token(r.Context()),
		ID:    mux.Vars(r)["id"],
		Body:  body,
	})
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	pc.sendJSON(w, http.StatusOK, post)
}

// Delete removes a post owned by the token's user
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	err := pc.postService.Delete(r.Context(), services.DeletePostRequest{
		Token: middleware.Token(r.Context()),
		ID:    mux.Vars(r)["id"],
	})
	if err != nil {
		pc.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
