package controllers

import (
	"net/http"

	"bloglist/app/services"

	"github.com/sirupsen/logrus"
)

// LoginController exchanges credentials for a token
type LoginController struct {
	responder
	loginService *services.LoginService
}

func NewLoginController(loginService *services.LoginService, log logrus.FieldLogger) *LoginController {
	return &LoginController{responder: responder{log: log}, loginService: loginService}
}

func (lc *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	var body services.LoginRequest
	if err := decodeBody(r, &body); err != nil {
		lc.handleError(w, r, err)
		return
	}
	resp, err := lc.loginService.Login(r.Context(), body)
	if err != nil {
		lc.handleError(w, r, err)
		return
	}
	lc.sendJSON(w, http.StatusOK, resp)
}
