package controllers

import (
	"net/http"

	"bloglist/app/services"

	"github.com/sirupsen/logrus"
)

// StatsController serves the post aggregations
type StatsController struct {
	responder
	statsService *services.StatsService
}

func NewStatsController(statsService *services.StatsService, log logrus.FieldLogger) *StatsController {
	return &StatsController{responder: responder{log: log}, statsService: statsService}
}

func (sc *StatsController) Show(w http.ResponseWriter, r *http.Request) {
	summary, err := sc.statsService.Summary(r.Context())
	if err != nil {
		sc.handleError(w, r, err)
		return
	}
	sc.sendJSON(w, http.StatusOK, summary)
}
