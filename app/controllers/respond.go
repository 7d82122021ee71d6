// Package controllers translates HTTP requests into service calls and service
// results into JSON responses.
package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bloglist/app/auth"
	"bloglist/app/middleware"
	"bloglist/app/models"
	"bloglist/app/repositories"
	"bloglist/app/services"

	"github.com/sirupsen/logrus"
)

var errMalformedBody = errors.New("malformatted request body")

// responder writes JSON responses and maps service errors to statuses.
type responder struct {
	log logrus.FieldLogger
}

func (rs responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.log.WithError(err).Warn("failed to encode response")
	}
}

func (rs responder) sendError(w http.ResponseWriter, status int, message string) {
	rs.sendJSON(w, status, map[string]string{"error": message})
}

// handleError writes the response for err. Unknown errors are logged and
// answered with a generic 500.
func (rs responder) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		rs.sendError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, errMalformedBody):
		rs.sendError(w, http.StatusBadRequest, errMalformedBody.Error())
	case errors.Is(err, models.ErrMalformedID):
		rs.sendError(w, http.StatusBadRequest, models.ErrMalformedID.Error())
	case errors.Is(err, repositories.ErrNotFound):
		// Empty body, so no content type.
		w.Header().Del("Content-Type")
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, auth.ErrUnauthenticated):
		rs.sendError(w, http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
	case errors.Is(err, services.ErrUnauthorized):
		rs.sendError(w, http.StatusUnauthorized, services.ErrUnauthorized.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		rs.sendError(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	default:
		rs.log.WithFields(logrus.Fields{
			"path":       r.URL.Path,
			"request_id": middleware.GetRequestID(r.Context()),
		}).WithError(err).Error("request failed")
		rs.sendError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody decodes the JSON request body into v. Validation errors raised
// while decoding are kept so their message reaches the client.
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return fmt.Errorf("%w: %v", errMalformedBody, err)
}
