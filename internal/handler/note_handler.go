package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/model"
	"finedu/backend/internal/service"
)

type NoteHandler struct {
	service service.NoteService
}

func NewNoteHandler(service service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// Request/Response types

type saveNoteRequest struct {
	ModuleName string  `json:"moduleName"`
	LessonName *string `json:"lessonName"`
	Content    string  `json:"content"`
}

type noteResponse struct {
	ID         string  `json:"id"`
	ModuleName string  `json:"moduleName"`
	LessonName *string `json:"lessonName,omitempty"`
	Content    string  `json:"content"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

type noteListResponse struct {
	Notes []noteResponse `json:"notes"`
	Total int            `json:"total"`
}

// RegisterRoutes registers the study note routes.
func (h *NoteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/notes", h.List)
	g.PUT("/notes", h.Save)
	g.DELETE("/notes/:id", h.Delete)
}

// List returns the current user's study notes.
// @Summary List notes
// @Description List the current user's study notes, optionally by module
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param module query string false "Filter by module name"
// @Success 200 {object} noteListResponse
// @Failure 500 {object} errorResponse
// @Router /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.service.List(c.Request().Context(), currentUserID(c), optionalQuery(c, "module"))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := noteListResponse{
		Notes: make([]noteResponse, 0, len(notes)),
		Total: len(notes),
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	return c.JSON(http.StatusOK, resp)
}

// Save creates or updates a note for one module/lesson.
// @Summary Save note
// @Description Create or update the note for one module/lesson
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body saveNoteRequest true "Note content"
// @Success 200 {object} noteResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /notes [put]
func (h *NoteHandler) Save(c echo.Context) error {
	var req saveNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	note, err := h.service.Save(c.Request().Context(), currentUserID(c), req.ModuleName, req.LessonName, req.Content)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete removes one note.
// @Summary Delete note
// @Description Delete one study note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid note id"})
	}

	if err := h.service.Delete(c.Request().Context(), currentUserID(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "note deleted"})
}

func toNoteResponse(n model.StudyNote) noteResponse {
	return noteResponse{
		ID:         strconv.FormatInt(n.ID, 10),
		ModuleName: n.ModuleName,
		LessonName: n.LessonName,
		Content:    n.NoteContent,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  n.UpdatedAt.Format(time.RFC3339),
	}
}
