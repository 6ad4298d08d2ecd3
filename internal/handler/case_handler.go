package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"courtflow/internal/model"
	"courtflow/internal/repository"
	"courtflow/internal/service"
)

// CaseHandler handles case endpoints, including parties.
type CaseHandler struct {
	caseService  service.CaseService
	partyService service.PartyService
}

// NewCaseHandler creates a new case handler.
func NewCaseHandler(caseService service.CaseService, partyService service.PartyService) *CaseHandler {
	return &CaseHandler{caseService: caseService, partyService: partyService}
}

// FileCaseRequest represents a case filing request.
type FileCaseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	CourtID     uint   `json:"court_id" validate:"required"`
	CaseTypeID  uint   `json:"case_type_id" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Public      bool   `json:"public"`
	Sensitive   bool   `json:"sensitive"`
}

// UpdateCaseRequest represents a case detail update.
type UpdateCaseRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Public      bool   `json:"public"`
	Sensitive   bool   `json:"sensitive"`
}

// UpdateCaseStateRequest moves a case along its lifecycle; either or both
// axes may be supplied.
type UpdateCaseStateRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=filed admitted hearing judgment closed archived"`
	Stage  string `json:"stage" validate:"omitempty,oneof=preliminary trial final"`
}

// AddPartyRequest represents adding a party to a case.
type AddPartyRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	PartyType string `json:"party_type" validate:"required,oneof=petitioner respondent advocate witness"`
	Advocate  string `json:"advocate"`
	UserID    *uint  `json:"user_id"`
}

// CaseListResponse wraps a case page.
type CaseListResponse struct {
	Total int64        `json:"total"`
	Cases []model.Case `json:"cases"`
}

// File godoc
// @Summary File a new case
// @Tags cases
// @Accept json
// @Produce json
// @Param request body FileCaseRequest true "Case"
// @Success 201 {object} model.Case
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases [post]
func (h *CaseHandler) File(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}

	var req FileCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.caseService.FileCase(c.Request().Context(), p.ID, service.CreateCaseInput{
		Title:       req.Title,
		Description: req.Description,
		CourtID:     req.CourtID,
		CaseTypeID:  req.CaseTypeID,
		Priority:    model.CasePriority(req.Priority),
		Public:      req.Public,
		Sensitive:   req.Sensitive,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Get godoc
// @Summary Get a case
// @Tags cases
// @Produce json
// @Param id path int true "Case ID"
// @Success 200 {object} model.Case
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases/{id} [get]
func (h *CaseHandler) Get(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	found, err := h.caseService.Get(c.Request().Context(), p.ID, p.Role, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, found)
}

// GetByNumber godoc
// @Summary Get a case by its case number
// @Tags cases
// @Produce json
// @Param number path string true "Case number"
// @Success 200 {object} model.Case
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases/number/{number} [get]
func (h *CaseHandler) GetByNumber(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}

	found, err := h.caseService.GetByNumber(c.Request().Context(), p.ID, p.Role, c.Param("number"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, found)
}

// List godoc
// @Summary List cases
// @Tags cases
// @Produce json
// @Param court_id query int false "Court"
// @Param case_type_id query int false "Case type"
// @Param status query string false "Status"
// @Param mine query bool false "Only cases filed by the caller"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} CaseListResponse
// @Security BearerAuth
// @Router /cases [get]
func (h *CaseHandler) List(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}

	filter := repository.CaseFilter{
		CourtID:    uint(queryInt(c, "court_id", 0)),
		CaseTypeID: uint(queryInt(c, "case_type_id", 0)),
		Status:     model.CaseStatus(c.QueryParam("status")),
		Limit:      queryInt(c, "limit", 20),
		Offset:     queryInt(c, "offset", 0),
	}
	if c.QueryParam("mine") == "true" {
		filter.FiledByID = p.ID
	}

	cases, total, err := h.caseService.List(c.Request().Context(), p.ID, p.Role, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, CaseListResponse{Total: total, Cases: cases})
}

// Search godoc
// @Summary Full-text search over public cases
// @Tags cases
// @Produce json
// @Param q query string true "Query"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /cases/search [get]
func (h *CaseHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}
	total, hits, err := h.caseService.Search(c.Request().Context(), query,
		queryInt(c, "offset", 0), queryInt(c, "limit", 20))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"total": total, "hits": hits})
}

// Update godoc
// @Summary Update case details (owner or admin)
// @Tags cases
// @Accept json
// @Produce json
// @Param id path int true "Case ID"
// @Param request body UpdateCaseRequest true "Case fields"
// @Success 200 {object} model.Case
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases/{id} [put]
func (h *CaseHandler) Update(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req UpdateCaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.caseService.UpdateDetails(c.Request().Context(), p.ID, p.Role, id, service.UpdateCaseInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.CasePriority(req.Priority),
		Public:      req.Public,
		Sensitive:   req.Sensitive,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateState godoc
// @Summary Move a case along its status/stage lifecycle
// @Tags cases
// @Accept json
// @Produce json
// @Param id path int true "Case ID"
// @Param request body UpdateCaseStateRequest true "Target state"
// @Success 200 {object} model.Case
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/state [put]
func (h *CaseHandler) UpdateState(c echo.Context) error {
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req UpdateCaseStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.caseService.UpdateState(c.Request().Context(), id,
		model.CaseStatus(req.Status), model.CaseStage(req.Stage))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// AddParty godoc
// @Summary Add a party to a case
// @Tags cases
// @Accept json
// @Produce json
// @Param id path int true "Case ID"
// @Param request body AddPartyRequest true "Party"
// @Success 201 {object} model.CaseParty
// @Security BearerAuth
// @Router /cases/{id}/parties [post]
func (h *CaseHandler) AddParty(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req AddPartyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	party, err := h.partyService.Add(c.Request().Context(), p.ID, p.Role, id,
		req.Name, req.PartyType, req.Advocate, req.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, party)
}

// ListParties godoc
// @Summary List parties on a case
// @Tags cases
// @Produce json
// @Param id path int true "Case ID"
// @Param active query bool false "Active only"
// @Success 200 {array} model.CaseParty
// @Security BearerAuth
// @Router /cases/{id}/parties [get]
func (h *CaseHandler) ListParties(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	parties, err := h.partyService.ListByCase(c.Request().Context(), p.ID, p.Role, id,
		c.QueryParam("active") == "true")
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, parties)
}

// DeactivateParty godoc
// @Summary Deactivate a party
// @Tags cases
// @Produce json
// @Param partyID path int true "Party ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /parties/{partyID} [delete]
func (h *CaseHandler) DeactivateParty(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "partyID")
	if herr != nil {
		return herr
	}
	if err := h.partyService.Deactivate(c.Request().Context(), p.ID, p.Role, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "party deactivated"})
}
