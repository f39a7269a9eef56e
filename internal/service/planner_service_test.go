package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/scheduler"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/jobs"
)

type deadlineStoreStub struct {
	stored      []models.Deadline
	clearCalls  []string
	batchEmails []string
	listErr     error
}

func (s *deadlineStoreStub) DeleteByEmail(ctx context.Context, email string) error {
	s.clearCalls = append(s.clearCalls, email)
	s.stored = nil
	return nil
}

func (s *deadlineStoreStub) CreateBatch(ctx context.Context, email string, deadlines []models.Deadline) error {
	s.batchEmails = append(s.batchEmails, email)
	s.stored = append(s.stored, deadlines...)
	return nil
}

func (s *deadlineStoreStub) List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error) {
	return s.stored, s.listErr
}

type scheduleStoreStub struct {
	upserts map[string]types.JSONText
}

func (s *scheduleStoreStub) Upsert(ctx context.Context, email string, data types.JSONText) error {
	if s.upserts == nil {
		s.upserts = map[string]types.JSONText{}
	}
	s.upserts[email] = data
	return nil
}

type prefsStoreStub struct {
	saved map[string][]byte
}

func (s *prefsStoreStub) UpsertPreferences(ctx context.Context, email string, preferences []byte) error {
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[email] = preferences
	return nil
}

func (s *prefsStoreStub) GetPreferences(ctx context.Context, email string) (types.JSONText, error) {
	stored, ok := s.saved[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return types.JSONText(stored), nil
}

type cacheStub struct {
	invalidated []string
}

func (s *cacheStub) Invalidate(ctx context.Context, email string) {
	s.invalidated = append(s.invalidated, email)
}

type queueStub struct {
	enqueued []jobs.Job
	err      error
}

func (s *queueStub) Enqueue(job jobs.Job) error {
	if s.err != nil {
		return s.err
	}
	s.enqueued = append(s.enqueued, job)
	return nil
}

var plannerNow = func() time.Time {
	return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
}

const syllabusText = `Course: Intro to Programming
CS101 MWF 10:00 AM - 10:50 AM
Midterm exam on March 15, 2024.
Final project due May 1, 2024.`

func newPlannerForTest(deadlines *deadlineStoreStub, schedules *scheduleStoreStub, cache *cacheStub, queue *queueStub) *PlannerService {
	// A nil *cacheStub stored in the interface would still be non-nil to
	// the service's guard; only hand over stubs that exist.
	var cacheDep cacheInvalidator
	if cache != nil {
		cacheDep = cache
	}
	var queueDep emailDispatcher
	if queue != nil {
		queueDep = queue
	}
	return NewPlannerService(deadlines, schedules, &prefsStoreStub{}, cacheDep, queueDep, NewMetricsService(), nil, nil, plannerNow)
}

func TestPlannerProcessUploadHappyPath(t *testing.T) {
	deadlines := &deadlineStoreStub{}
	schedules := &scheduleStoreStub{}
	cache := &cacheStub{}
	queue := &queueStub{}
	planner := newPlannerForTest(deadlines, schedules, cache, queue)

	form := dto.UploadForm{Email: "amy@vu.edu", SendEmail: true}
	resp, err := planner.ProcessUpload(context.Background(), form, "syllabus.txt", []byte(syllabusText))
	require.NoError(t, err)

	assert.Equal(t, "amy@vu.edu", resp.Email)
	assert.Equal(t, scheduler.HorizonDays, resp.ScheduleDays)
	assert.True(t, resp.EmailQueued)
	assert.NotEmpty(t, resp.Parsed.Deadlines)
	assert.Contains(t, resp.Parsed.Courses.Codes, "CS101")

	assert.Equal(t, []string{"amy@vu.edu"}, deadlines.clearCalls)
	assert.Equal(t, []string{"amy@vu.edu"}, deadlines.batchEmails)
	assert.Equal(t, []string{"amy@vu.edu"}, cache.invalidated)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, EmailJobType, queue.enqueued[0].Type)

	var schedule models.Schedule
	require.NoError(t, json.Unmarshal(schedules.upserts["amy@vu.edu"], &schedule))
	assert.Len(t, schedule, scheduler.HorizonDays)
}

func TestPlannerProcessUploadRejectsUnknownExtension(t *testing.T) {
	planner := newPlannerForTest(&deadlineStoreStub{}, &scheduleStoreStub{}, nil, nil)

	_, err := planner.ProcessUpload(context.Background(), dto.UploadForm{Email: "amy@vu.edu"}, "notes.rtf", []byte("text"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFile.Code, appErrors.FromError(err).Code)
}

func TestPlannerProcessUploadEmptyDocumentYieldsBareSchedule(t *testing.T) {
	schedules := &scheduleStoreStub{}
	planner := newPlannerForTest(&deadlineStoreStub{}, schedules, nil, nil)

	resp, err := planner.ProcessUpload(context.Background(), dto.UploadForm{Email: "amy@vu.edu"}, "blank.txt", []byte("   \n\t "))
	require.NoError(t, err)
	assert.Empty(t, resp.Parsed.Deadlines)
	assert.Equal(t, scheduler.HorizonDays, resp.ScheduleDays)
	assert.Contains(t, schedules.upserts, "amy@vu.edu")
}

func TestPlannerProcessUploadValidatesForm(t *testing.T) {
	planner := newPlannerForTest(&deadlineStoreStub{}, &scheduleStoreStub{}, nil, nil)

	_, err := planner.ProcessUpload(context.Background(), dto.UploadForm{Email: "not-an-email"}, "syllabus.txt", []byte(syllabusText))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPlannerProcessUploadWithoutEmailFlag(t *testing.T) {
	queue := &queueStub{}
	planner := newPlannerForTest(&deadlineStoreStub{}, &scheduleStoreStub{}, nil, queue)

	resp, err := planner.ProcessUpload(context.Background(), dto.UploadForm{Email: "amy@vu.edu"}, "syllabus.txt", []byte(syllabusText))
	require.NoError(t, err)
	assert.False(t, resp.EmailQueued)
	assert.Empty(t, queue.enqueued)
}

func TestPlannerRegenerateUsesStoredDeadlines(t *testing.T) {
	deadlines := &deadlineStoreStub{stored: []models.Deadline{{
		Email: "amy@vu.edu", Date: "2024-06-20", Type: models.DeadlineTypeExam, Title: "Midterm",
	}}}
	schedules := &scheduleStoreStub{}
	planner := newPlannerForTest(deadlines, schedules, nil, nil)

	schedule, err := planner.Regenerate(context.Background(), "amy@vu.edu")
	require.NoError(t, err)

	var found bool
	for _, a := range schedule["2024-06-20"] {
		if a.Type == models.ActivityTypeDeadline {
			found = true
		}
	}
	assert.True(t, found, "deadline reflected in regenerated schedule")
}

func TestPlannerRegenerateKeepsUploadedPreferences(t *testing.T) {
	deadlines := &deadlineStoreStub{}
	schedules := &scheduleStoreStub{}
	planner := newPlannerForTest(deadlines, schedules, nil, nil)

	form := dto.UploadForm{Email: "amy@vu.edu", StudyStyle: "focused"}
	_, err := planner.ProcessUpload(context.Background(), form, "syllabus.txt", []byte(syllabusText))
	require.NoError(t, err)

	schedule, err := planner.Regenerate(context.Background(), "amy@vu.edu")
	require.NoError(t, err)

	day := schedule["2024-06-11"]
	var focused bool
	for _, a := range day {
		if strings.Contains(a.Activity, "Deep Focus") {
			focused = true
		}
	}
	assert.True(t, focused, "rebuild should keep the uploaded focused style")
}
