package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"courtflow/internal/model"
	"courtflow/internal/service"
)

// HearingHandler handles hearing endpoints.
type HearingHandler struct {
	hearingService service.HearingService
}

// NewHearingHandler creates a new hearing handler.
func NewHearingHandler(hearingService service.HearingService) *HearingHandler {
	return &HearingHandler{hearingService: hearingService}
}

// ScheduleHearingRequest represents a hearing scheduling request.
type ScheduleHearingRequest struct {
	JudgeID     uint      `json:"judge_id" validate:"required"`
	HearingDate time.Time `json:"hearing_date" validate:"required"`
	Purpose     string    `json:"purpose" validate:"max=255"`
}

// UpdateHearingStatusRequest moves a hearing through its state machine.
type UpdateHearingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled ongoing completed adjourned cancelled"`
	// Reason is required when adjourning.
	Reason          string     `json:"reason" validate:"max=255"`
	NextHearingDate *time.Time `json:"next_hearing_date"`
}

// Schedule godoc
// @Summary Schedule a hearing under a case
// @Tags hearings
// @Accept json
// @Produce json
// @Param id path int true "Case ID"
// @Param request body ScheduleHearingRequest true "Hearing"
// @Success 201 {object} model.Hearing
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/hearings [post]
func (h *HearingHandler) Schedule(c echo.Context) error {
	caseID, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req ScheduleHearingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hearing, err := h.hearingService.Schedule(c.Request().Context(), caseID, req.JudgeID, req.HearingDate, req.Purpose)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, hearing)
}

// ListByCase godoc
// @Summary List hearings of a case
// @Tags hearings
// @Produce json
// @Param id path int true "Case ID"
// @Success 200 {array} model.Hearing
// @Security BearerAuth
// @Router /cases/{id}/hearings [get]
func (h *HearingHandler) ListByCase(c echo.Context) error {
	caseID, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	hearings, err := h.hearingService.ListByCase(c.Request().Context(), caseID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, hearings)
}

// Docket godoc
// @Summary List the calling judge's hearings
// @Tags hearings
// @Produce json
// @Success 200 {array} model.Hearing
// @Security BearerAuth
// @Router /hearings/docket [get]
func (h *HearingHandler) Docket(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	hearings, err := h.hearingService.ListByJudge(c.Request().Context(), p.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, hearings)
}

// Get godoc
// @Summary Get a hearing
// @Tags hearings
// @Produce json
// @Param id path int true "Hearing ID"
// @Success 200 {object} model.Hearing
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /hearings/{id} [get]
func (h *HearingHandler) Get(c echo.Context) error {
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	hearing, err := h.hearingService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, hearing)
}

// UpdateStatus godoc
// @Summary Move a hearing through its lifecycle
// @Tags hearings
// @Accept json
// @Produce json
// @Param id path int true "Hearing ID"
// @Param request body UpdateHearingStatusRequest true "Target status"
// @Success 200 {object} model.Hearing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /hearings/{id}/status [put]
func (h *HearingHandler) UpdateStatus(c echo.Context) error {
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req UpdateHearingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hearing, err := h.hearingService.UpdateStatus(c.Request().Context(), id,
		model.HearingStatus(req.Status), req.Reason, req.NextHearingDate)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, hearing)
}
