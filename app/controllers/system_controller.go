package controllers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// SystemController serves the health check and the fallback for unknown routes
type SystemController struct {
	responder
}

func NewSystemController(log logrus.FieldLogger) *SystemController {
	return &SystemController{responder: responder{log: log}}
}

func (sc *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	sc.sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// NotFound answers unmatched API paths with a JSON error and anything else with plain text.
func (sc *SystemController) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		sc.sendError(w, http.StatusNotFound, "unknown endpoint")
		return
	}
	http.NotFound(w, r)
}
