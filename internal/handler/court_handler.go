package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"courtflow/internal/service"
)

// CourtHandler handles court and case type reference data endpoints.
type CourtHandler struct {
	courtService    service.CourtService
	caseTypeService service.CaseTypeService
}

// NewCourtHandler creates a new court handler.
func NewCourtHandler(courtService service.CourtService, caseTypeService service.CaseTypeService) *CourtHandler {
	return &CourtHandler{courtService: courtService, caseTypeService: caseTypeService}
}

// CreateCourtRequest represents a court creation request.
type CreateCourtRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required,max=20"`
	Location string `json:"location"`
}

// UpdateCourtRequest represents a court update request.
type UpdateCourtRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

// CreateCaseTypeRequest represents a case type creation request.
type CreateCaseTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required,max=20"`
	Description string `json:"description"`
}

// UpdateCaseTypeRequest represents a case type update request.
type UpdateCaseTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// CreateCourt godoc
// @Summary Create a court
// @Tags courts
// @Accept json
// @Produce json
// @Param request body CreateCourtRequest true "Court"
// @Success 201 {object} model.Court
// @Security BearerAuth
// @Router /courts [post]
func (h *CourtHandler) CreateCourt(c echo.Context) error {
	var req CreateCourtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	court, err := h.courtService.Create(c.Request().Context(), req.Name, req.Code, req.Location)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, court)
}

// ListCourts godoc
// @Summary List courts
// @Tags courts
// @Produce json
// @Param active query bool false "Active only"
// @Success 200 {array} model.Court
// @Router /courts [get]
func (h *CourtHandler) ListCourts(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	courts, err := h.courtService.List(c.Request().Context(), activeOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, courts)
}

// GetCourt godoc
// @Summary Get a court
// @Tags courts
// @Produce json
// @Param id path int true "Court ID"
// @Success 200 {object} model.Court
// @Failure 404 {object} errors.ErrorResponse
// @Router /courts/{id} [get]
func (h *CourtHandler) GetCourt(c echo.Context) error {
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	court, err := h.courtService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, court)
}

// GetCourtBySlug godoc
// @Summary Get a court by its slug
// @Tags courts
// @Produce json
// @Param slug path string true "Court slug"
// @Success 200 {object} model.Court
// @Failure 404 {object} errors.ErrorResponse
// @Router /courts/slug/{slug} [get]
func (h *CourtHandler) GetCourtBySlug(c echo.Context) error {
	court, err := h.courtService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, court)
}

// UpdateCourt godoc
// @Summary Update a court
// @Tags courts
// @Accept json
// @Produce json
// @Param id path int true "Court ID"
// @Param request body UpdateCourtRequest true "Court fields"
// @Success 200 {object} model.Court
// @Security BearerAuth
// @Router /courts/{id} [put]
func (h *CourtHandler) UpdateCourt(c echo.Context) error {
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req UpdateCourtRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	court, err := h.courtService.Update(c.Request().Context(), id, req.Name, req.Location, req.Active)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, court)
}

// CreateCaseType godoc
// @Summary Create a case type
// @Tags case-types
// @Accept json
// @Produce json
// @Param request body CreateCaseTypeRequest true "Case type"
// @Success 201 {object} model.CaseType
// @Security BearerAuth
// @Router /case-types [post]
func (h *CourtHandler) CreateCaseType(c echo.Context) error {
	var req CreateCaseTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ct, err := h.caseTypeService.Create(c.Request().Context(), req.Name, req.Code, req.Description)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, ct)
}

// ListCaseTypes godoc
// @Summary List case types
// @Tags case-types
// @Produce json
// @Param active query bool false "Active only"
// @Success 200 {array} model.CaseType
// @Router /case-types [get]
func (h *CourtHandler) ListCaseTypes(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	cts, err := h.caseTypeService.List(c.Request().Context(), activeOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cts)
}

// UpdateCaseType godoc
// @Summary Update a case type
// @Tags case-types
// @Accept json
// @Produce json
// @Param id path int true "Case type ID"
// @Param request body UpdateCaseTypeRequest true "Case type fields"
// @Success 200 {object} model.CaseType
// @Security BearerAuth
// @Router /case-types/{id} [put]
func (h *CourtHandler) UpdateCaseType(c echo.Context) error {
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req UpdateCaseTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ct, err := h.caseTypeService.Update(c.Request().Context(), id, req.Name, req.Description, req.Active)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ct)
}
