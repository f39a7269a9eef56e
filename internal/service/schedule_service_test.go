package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/scheduler"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/mailer"
)

type storedScheduleStub struct {
	data map[string][]byte
}

func (s *storedScheduleStub) GetByEmail(ctx context.Context, email string) (*models.StudentSchedule, error) {
	raw, ok := s.data[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.StudentSchedule{Email: email, ScheduleData: raw}, nil
}

type senderStub struct {
	sent []mailer.Message
	err  error
}

func (s *senderStub) Send(msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func scheduleJSON(t *testing.T) []byte {
	t.Helper()
	deadlines := []models.Deadline{{Date: "2024-06-12", Type: models.DeadlineTypeExam, Title: "Midterm", CourseCode: "CS101"}}
	schedule := scheduler.Synthesize(deadlines, scheduler.Preferences{}, plannerNow())
	raw, err := json.Marshal(schedule)
	require.NoError(t, err)
	return raw
}

func newScheduleServiceForTest(stored *storedScheduleStub, deadlines *deadlineStoreStub, sender *senderStub) *ScheduleService {
	return NewScheduleService(stored, deadlines, nil, nil, sender, NewMetricsService(), nil, plannerNow)
}

func TestScheduleServiceGetNotFound(t *testing.T) {
	svc := newScheduleServiceForTest(&storedScheduleStub{}, &deadlineStoreStub{}, nil)

	_, err := svc.Get(context.Background(), "ghost@vu.edu")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceSummaryCountsWeek(t *testing.T) {
	stored := &storedScheduleStub{data: map[string][]byte{"amy@vu.edu": scheduleJSON(t)}}
	svc := newScheduleServiceForTest(stored, &deadlineStoreStub{}, nil)

	summary, err := svc.Summary(context.Background(), "amy@vu.edu")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DeadlinesThisWeek)
	// Mon-Fri carry three pomodoro blocks, Sat-Sun two; review sessions
	// are prep for the exam and stay out of the study totals.
	assert.Equal(t, 19, summary.StudySessions)
	assert.InDelta(t, 33.0, summary.TotalStudyHours, 0.01)
	require.Len(t, summary.UpcomingDeadlines, 1)
	assert.Equal(t, "2024-06-12", summary.UpcomingDeadlines[0].Date)
	assert.Equal(t, "CS101", summary.UpcomingDeadlines[0].Course)
}

func TestSummarizeWeekAnchorsOnMonday(t *testing.T) {
	schedule := scheduler.Synthesize(nil, scheduler.Preferences{}, plannerNow())

	fromMonday := summarizeWeek(schedule, plannerNow())
	fromWednesday := summarizeWeek(schedule, time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, fromMonday, fromWednesday)
}

func TestScheduleServiceExportICS(t *testing.T) {
	stored := &storedScheduleStub{data: map[string][]byte{"amy@vu.edu": scheduleJSON(t)}}
	svc := newScheduleServiceForTest(stored, &deadlineStoreStub{}, nil)

	data, filename, err := svc.ExportICS(context.Background(), "amy@vu.edu")
	require.NoError(t, err)
	assert.Equal(t, "studyflow_amy.ics", filename)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "CATEGORIES:EDUCATION")
}

func TestScheduleServiceSendScheduleEmail(t *testing.T) {
	stored := &storedScheduleStub{data: map[string][]byte{"amy@vu.edu": scheduleJSON(t)}}
	deadlines := &deadlineStoreStub{stored: []models.Deadline{
		{Email: "amy@vu.edu", Date: "2024-06-12", Type: models.DeadlineTypeExam, Title: "Midterm", CourseCode: "CS101"},
	}}
	sender := &senderStub{}
	svc := newScheduleServiceForTest(stored, deadlines, sender)

	require.NoError(t, svc.SendScheduleEmail(context.Background(), "amy@vu.edu"))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "amy@vu.edu", msg.To)
	assert.Contains(t, msg.Subject, "Week of Jun 10")
	assert.Contains(t, msg.HTML, "Upcoming Deadlines")
	assert.Contains(t, msg.Text, "Midterm")
	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, "studyflow_amy.ics", msg.Attachments[0].Filename)
	assert.Equal(t, "text/calendar", msg.Attachments[0].ContentType)

	summary := msg.Attachments[1]
	assert.Equal(t, "StudyFlow_Summary.txt", summary.Filename)
	assert.Equal(t, "text/plain", summary.ContentType)
	assert.Contains(t, string(summary.Content), "STUDENT PREFERENCES")
	assert.Contains(t, string(summary.Content), "Wake Up Time: 08:00")
	assert.Contains(t, string(summary.Content), "Monday, June 10, 2024")
}

func TestScheduleServiceSendDeadlineReminders(t *testing.T) {
	deadlines := &deadlineStoreStub{stored: []models.Deadline{
		{Email: "amy@vu.edu", Date: "2024-06-11", Time: "23:59", Type: models.DeadlineTypeExam, Title: "Midterm", CourseCode: "CS101"},
		{Email: "amy@vu.edu", Date: "2024-06-13", Type: models.DeadlineTypeProject, Title: "Design doc"},
	}}
	sender := &senderStub{}
	svc := newScheduleServiceForTest(&storedScheduleStub{}, deadlines, sender)

	sent, err := svc.SendDeadlineReminders(context.Background(), "amy@vu.edu")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, sender.sent, 2)

	first := sender.sent[0]
	assert.Equal(t, "⚠️ Upcoming Deadline: Midterm", first.Subject)
	assert.Contains(t, first.HTML, "Days Remaining:</strong> 1")
	assert.Contains(t, first.HTML, "#f8d7da", "one day out renders as urgent")
	assert.Contains(t, first.Text, "Due: 2024-06-11 at 23:59")

	assert.Contains(t, sender.sent[1].HTML, "#fff3cd", "three days out is not urgent")
}

func TestScheduleServiceSendScheduleEmailDeliveryFailure(t *testing.T) {
	stored := &storedScheduleStub{data: map[string][]byte{"amy@vu.edu": scheduleJSON(t)}}
	sender := &senderStub{err: errors.New("relay refused")}
	svc := newScheduleServiceForTest(stored, &deadlineStoreStub{}, sender)

	err := svc.SendScheduleEmail(context.Background(), "amy@vu.edu")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmailDelivery.Code, appErrors.FromError(err).Code)
}

func TestDigestServiceRunSendsToAllRecipients(t *testing.T) {
	lister := &digestListerStub{emails: []string{"amy@vu.edu", "ben@vu.edu"}}
	mail := &digestMailerStub{failFor: "amy@vu.edu"}
	digest := NewDigestService(lister, mail, "", "", nil)

	digest.Run(context.Background())

	assert.Equal(t, []string{"amy@vu.edu", "ben@vu.edu"}, mail.attempted, "one failure does not stop the run")
}

func TestDigestServiceRunRemindersCoversAllRecipients(t *testing.T) {
	lister := &digestListerStub{emails: []string{"amy@vu.edu", "ben@vu.edu"}}
	mail := &digestMailerStub{failFor: "amy@vu.edu"}
	digest := NewDigestService(lister, mail, "", "", nil)

	digest.RunReminders(context.Background())

	assert.Equal(t, []string{"amy@vu.edu", "ben@vu.edu"}, mail.reminded, "one failure does not stop the run")
}

type digestListerStub struct {
	emails []string
}

func (s *digestListerStub) ListEmails(ctx context.Context) ([]string, error) {
	return s.emails, nil
}

type digestMailerStub struct {
	attempted []string
	reminded  []string
	failFor   string
}

func (s *digestMailerStub) SendScheduleEmail(ctx context.Context, email string) error {
	s.attempted = append(s.attempted, email)
	if email == s.failFor {
		return errors.New("boom")
	}
	return nil
}

func (s *digestMailerStub) SendDeadlineReminders(ctx context.Context, email string) (int, error) {
	s.reminded = append(s.reminded, email)
	if email == s.failFor {
		return 0, errors.New("boom")
	}
	return 1, nil
}
