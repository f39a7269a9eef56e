package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/response"
)

type deadlineManager interface {
	List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error)
	Create(ctx context.Context, req dto.DeadlineCreateRequest) (*models.Deadline, error)
	Update(ctx context.Context, id int64, req dto.DeadlineUpdateRequest) (*models.Deadline, error)
	Delete(ctx context.Context, id int64) error
	ExportCSV(ctx context.Context, filter models.DeadlineFilter) ([]byte, error)
}

// DeadlineHandler exposes deadline CRUD endpoints.
type DeadlineHandler struct {
	service deadlineManager
}

// NewDeadlineHandler builds a new handler.
func NewDeadlineHandler(service deadlineManager) *DeadlineHandler {
	return &DeadlineHandler{service: service}
}

func deadlineFilterFromQuery(c *gin.Context) models.DeadlineFilter {
	return models.DeadlineFilter{
		Email:      c.Query("email"),
		CourseCode: c.Query("course"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	}
}

// List godoc
// @Summary List deadlines for a student
// @Tags Deadlines
// @Produce json
// @Param email query string true "Student email"
// @Param course query string false "Course code filter"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /deadlines [get]
func (h *DeadlineHandler) List(c *gin.Context) {
	deadlines, err := h.service.List(c.Request.Context(), deadlineFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, deadlines, nil)
}

// Create godoc
// @Summary Add a manual deadline
// @Tags Deadlines
// @Accept json
// @Produce json
// @Param payload body dto.DeadlineCreateRequest true "Deadline payload"
// @Success 201 {object} response.Envelope
// @Router /deadlines [post]
func (h *DeadlineHandler) Create(c *gin.Context) {
	var req dto.DeadlineCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid deadline payload"))
		return
	}
	deadline, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, deadline)
}

// Update godoc
// @Summary Update a deadline
// @Tags Deadlines
// @Accept json
// @Produce json
// @Param id path int true "Deadline ID"
// @Param payload body dto.DeadlineUpdateRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /deadlines/{id} [put]
func (h *DeadlineHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid deadline id"))
		return
	}
	var req dto.DeadlineUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid deadline payload"))
		return
	}
	deadline, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, deadline, nil)
}

// Delete godoc
// @Summary Delete a deadline
// @Tags Deadlines
// @Param id path int true "Deadline ID"
// @Success 204
// @Router /deadlines/{id} [delete]
func (h *DeadlineHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid deadline id"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Export deadlines as CSV
// @Tags Deadlines
// @Produce text/csv
// @Param email query string true "Student email"
// @Success 200 {string} string "CSV payload"
// @Router /deadlines/export.csv [get]
func (h *DeadlineHandler) ExportCSV(c *gin.Context) {
	data, err := h.service.ExportCSV(c.Request.Context(), deadlineFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="deadlines.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}
