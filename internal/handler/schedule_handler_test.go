package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
)

type scheduleServiceMock struct {
	schedule  models.Schedule
	getErr    error
	summary   *models.WeeklySummary
	pdf       []byte
	ics       []byte
	icsName   string
	sendErr   error
	lastEmail string
}

func (m *scheduleServiceMock) Get(ctx context.Context, email string) (models.Schedule, error) {
	m.lastEmail = email
	return m.schedule, m.getErr
}

func (m *scheduleServiceMock) Summary(ctx context.Context, email string) (*models.WeeklySummary, error) {
	m.lastEmail = email
	return m.summary, m.getErr
}

func (m *scheduleServiceMock) ExportPDF(ctx context.Context, email string) ([]byte, error) {
	return m.pdf, m.getErr
}

func (m *scheduleServiceMock) ExportICS(ctx context.Context, email string) ([]byte, string, error) {
	return m.ics, m.icsName, m.getErr
}

func (m *scheduleServiceMock) SendScheduleEmail(ctx context.Context, email string) error {
	m.lastEmail = email
	return m.sendErr
}

func scheduleCtx(t *testing.T, method, target, email string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "email", Value: email}}
	return w, c
}

func TestScheduleHandlerGet(t *testing.T) {
	mockSvc := &scheduleServiceMock{schedule: models.Schedule{
		"2024-06-10": {{Time: "08:00", Activity: "🌅 Morning Routine & Wake Up", Type: models.ActivityTypeRoutine}},
	}}
	handler := NewScheduleHandler(mockSvc)

	w, c := scheduleCtx(t, http.MethodGet, "/schedules/amy@vu.edu", "amy@vu.edu")
	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "amy@vu.edu", mockSvc.lastEmail)
	assert.Contains(t, w.Body.String(), "2024-06-10")
}

func TestScheduleHandlerGetNotFound(t *testing.T) {
	mockSvc := &scheduleServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "no schedule for this email")}
	handler := NewScheduleHandler(mockSvc)

	w, c := scheduleCtx(t, http.MethodGet, "/schedules/ghost@vu.edu", "ghost@vu.edu")
	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandlerSummary(t *testing.T) {
	mockSvc := &scheduleServiceMock{summary: &models.WeeklySummary{DeadlinesThisWeek: 2, StudySessions: 15}}
	handler := NewScheduleHandler(mockSvc)

	w, c := scheduleCtx(t, http.MethodGet, "/schedules/amy@vu.edu/summary", "amy@vu.edu")
	handler.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deadlines_this_week":2`)
}

func TestScheduleHandlerExportICS(t *testing.T) {
	mockSvc := &scheduleServiceMock{ics: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), icsName: "studyflow_amy.ics"}
	handler := NewScheduleHandler(mockSvc)

	w, c := scheduleCtx(t, http.MethodGet, "/schedules/amy@vu.edu/export.ics", "amy@vu.edu")
	handler.ExportICS(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "studyflow_amy.ics")
}

func TestScheduleHandlerSendEmailFailure(t *testing.T) {
	mockSvc := &scheduleServiceMock{sendErr: appErrors.Clone(appErrors.ErrEmailDelivery, "")}
	handler := NewScheduleHandler(mockSvc)

	w, c := scheduleCtx(t, http.MethodPost, "/schedules/amy@vu.edu/email", "amy@vu.edu")
	handler.SendEmail(c)

	require.Equal(t, http.StatusBadGateway, w.Code)
}
