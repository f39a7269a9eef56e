package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/response"
)

type scheduleProvider interface {
	Get(ctx context.Context, email string) (models.Schedule, error)
	Summary(ctx context.Context, email string) (*models.WeeklySummary, error)
	ExportPDF(ctx context.Context, email string) ([]byte, error)
	ExportICS(ctx context.Context, email string) ([]byte, string, error)
	SendScheduleEmail(ctx context.Context, email string) error
}

// ScheduleHandler serves generated schedules and their exports.
type ScheduleHandler struct {
	service scheduleProvider
}

// NewScheduleHandler builds a new handler.
func NewScheduleHandler(service scheduleProvider) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Get godoc
// @Summary Get a student's schedule
// @Tags Schedules
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /schedules/{email} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.service.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Summary godoc
// @Summary Weekly summary of a student's schedule
// @Tags Schedules
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /schedules/{email}/summary [get]
func (h *ScheduleHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ExportPDF godoc
// @Summary Download the schedule as PDF
// @Tags Schedules
// @Produce application/pdf
// @Param email path string true "Student email"
// @Success 200 {string} string "PDF payload"
// @Router /schedules/{email}/export.pdf [get]
func (h *ScheduleHandler) ExportPDF(c *gin.Context) {
	data, err := h.service.ExportPDF(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="schedule.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExportICS godoc
// @Summary Download the schedule as an iCalendar file
// @Tags Schedules
// @Produce text/calendar
// @Param email path string true "Student email"
// @Success 200 {string} string "ICS payload"
// @Router /schedules/{email}/export.ics [get]
func (h *ScheduleHandler) ExportICS(c *gin.Context) {
	data, filename, err := h.service.ExportICS(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar", data)
}

// SendEmail godoc
// @Summary Email the schedule to its owner
// @Tags Schedules
// @Produce json
// @Param email path string true "Student email"
// @Success 202 {object} response.Envelope
// @Router /schedules/{email}/email [post]
func (h *ScheduleHandler) SendEmail(c *gin.Context) {
	email := c.Param("email")
	if err := h.service.SendScheduleEmail(c.Request.Context(), email); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"email": email, "status": "sent"}, nil)
}
