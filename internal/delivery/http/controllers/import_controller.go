package controllers

import (
	"log/slog"
	"net/http"

	"multitrackscheduling/internal/delivery/http/helpers"
	"multitrackscheduling/internal/domain"
)

const errCodeBadGateway = "bad_gateway"

type ImportController struct {
	Logger  *slog.Logger
	Service domain.ImportService
}

func NewImportController(logger *slog.Logger, svc domain.ImportService) *ImportController {
	return &ImportController{Logger: logger, Service: svc}
}

// ImportSessionize godoc
// @Summary Import a Sessionize schedule
// @Description Registers Sessionize rooms and creates one event per session. Sessions the schedule rejects are listed with their outcome code.
// @Tags import
// @Produce json
// @Security BearerAuth
// @Param sessionizeID path string true "Sessionize event ID"
// @Success 200 {object} helpers.APIResponse{data=domain.ImportReport}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /import/sessionize/{sessionizeID} [post]
func (c *ImportController) ImportSessionize(w http.ResponseWriter, r *http.Request) {
	// A nil report means the fetch failed; anything else stopped mid-import.
	report, err := c.Service.ImportSessionize(r.Context(), r.PathValue("sessionizeID"))
	switch {
	case err == nil:
		helpers.WriteJSONSuccess(w, http.StatusOK, report)
	case report == nil:
		c.Logger.WarnContext(r.Context(), "sessionize fetch failed", "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, errCodeBadGateway, "could not fetch sessionize schedule")
	default:
		helpers.WriteInternalError(w, r, c.Logger, err)
	}
}
