package controllers

import (
	"net/http"

	"bloglist/app/services"

	"github.com/sirupsen/logrus"
)

// UserController handles registration and the user listing
type UserController struct {
	responder
	userService *services.UserService
}

func NewUserController(userService *services.UserService, log logrus.FieldLogger) *UserController {
	return &UserController{responder: responder{log: log}, userService: userService}
}

func (uc *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := uc.userService.List(r.Context())
	if err != nil {
		uc.handleError(w, r, err)
		return
	}
	uc.sendJSON(w, http.StatusOK, users)
}

func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var body services.CreateUserRequest
	if err := decodeBody(r, &body); err != nil {
		uc.handleError(w, r, err)
		return
	}
	user, err := uc.userService.Create(r.Context(), body)
	if err != nil {
		uc.handleError(w, r, err)
		return
	}
	uc.sendJSON(w, http.StatusCreated, user)
}
