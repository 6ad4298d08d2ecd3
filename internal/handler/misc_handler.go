package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"courtflow/internal/service"
)

// MiscHandler groups the document, bookmark and notification endpoints.
type MiscHandler struct {
	documentService     service.DocumentService
	bookmarkService     service.BookmarkService
	notificationService service.NotificationService
}

// NewMiscHandler creates a handler for documents, bookmarks and notifications.
func NewMiscHandler(documentService service.DocumentService, bookmarkService service.BookmarkService, notificationService service.NotificationService) *MiscHandler {
	return &MiscHandler{
		documentService:     documentService,
		bookmarkService:     bookmarkService,
		notificationService: notificationService,
	}
}

// AttachDocumentRequest represents attaching document metadata to a case.
type AttachDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	DocType string `json:"doc_type" validate:"required,oneof=petition affidavit order judgment evidence other"`
	Public  bool   `json:"public"`
}

// AttachDocument godoc
// @Summary Attach document metadata to a case
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Case ID"
// @Param request body AttachDocumentRequest true "Document"
// @Success 201 {object} model.Document
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/documents [post]
func (h *MiscHandler) AttachDocument(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	caseID, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}

	var req AttachDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doc, err := h.documentService.Attach(c.Request().Context(), p.ID, p.Role, caseID, req.Title, req.DocType, req.Public)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// ListDocuments godoc
// @Summary List documents on a case
// @Tags documents
// @Produce json
// @Param id path int true "Case ID"
// @Success 200 {array} model.Document
// @Security BearerAuth
// @Router /cases/{id}/documents [get]
func (h *MiscHandler) ListDocuments(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	caseID, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	docs, err := h.documentService.ListByCase(c.Request().Context(), p.ID, p.Role, caseID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, docs)
}

// RemoveDocument godoc
// @Summary Remove a document (uploader or admin)
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *MiscHandler) RemoveDocument(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	if err := h.documentService.Remove(c.Request().Context(), p.ID, p.Role, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "document removed"})
}

// AddBookmark godoc
// @Summary Bookmark a case
// @Tags bookmarks
// @Produce json
// @Param id path int true "Case ID"
// @Success 201 {object} model.Bookmark
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/bookmark [post]
func (h *MiscHandler) AddBookmark(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	caseID, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	b, err := h.bookmarkService.Add(c.Request().Context(), p.ID, p.Role, caseID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

// ListBookmarks godoc
// @Summary List the caller's bookmarks
// @Tags bookmarks
// @Produce json
// @Success 200 {array} model.Bookmark
// @Security BearerAuth
// @Router /bookmarks [get]
func (h *MiscHandler) ListBookmarks(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	bookmarks, err := h.bookmarkService.ListOwn(c.Request().Context(), p.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// RemoveBookmark godoc
// @Summary Remove a bookmark
// @Tags bookmarks
// @Produce json
// @Param id path int true "Bookmark ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /bookmarks/{id} [delete]
func (h *MiscHandler) RemoveBookmark(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	if err := h.bookmarkService.Remove(c.Request().Context(), p.ID, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "bookmark removed"})
}

// ListNotifications godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param unread query bool false "Unread only"
// @Success 200 {array} model.Notification
// @Security BearerAuth
// @Router /notifications [get]
func (h *MiscHandler) ListNotifications(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	notifications, err := h.notificationService.ListOwn(c.Request().Context(), p.ID,
		c.QueryParam("unread") == "true")
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (h *MiscHandler) MarkNotificationRead(c echo.Context) error {
	p, herr := principal(c)
	if herr != nil {
		return herr
	}
	id, herr := pathID(c, "id")
	if herr != nil {
		return herr
	}
	if err := h.notificationService.MarkRead(c.Request().Context(), p.ID, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "notification read"})
}
