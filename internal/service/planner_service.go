package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/parser"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/scheduler"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/jobs"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/textextract"
)

type plannerDeadlineStore interface {
	DeleteByEmail(ctx context.Context, email string) error
	CreateBatch(ctx context.Context, email string, deadlines []models.Deadline) error
	List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error)
}

type plannerScheduleStore interface {
	Upsert(ctx context.Context, email string, data types.JSONText) error
}

type plannerPrefsStore interface {
	UpsertPreferences(ctx context.Context, email string, preferences []byte) error
	GetPreferences(ctx context.Context, email string) (types.JSONText, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

type emailDispatcher interface {
	Enqueue(job jobs.Job) error
}

// EmailJobType tags schedule delivery jobs on the background queue.
const EmailJobType = "schedule_email"

// EmailJobPayload is the queued request to mail a freshly built schedule.
type EmailJobPayload struct {
	Email string
}

// PlannerService runs the upload pipeline: extract text, parse the
// syllabus, replace the student's deadlines, synthesize the calendar and
// persist it.
type PlannerService struct {
	deadlines plannerDeadlineStore
	schedules plannerScheduleStore
	prefs     plannerPrefsStore
	cache     cacheInvalidator
	queue     emailDispatcher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPlannerService constructs the planner. now defaults to time.Now and is
// injectable for deterministic tests.
func NewPlannerService(
	deadlines plannerDeadlineStore,
	schedules plannerScheduleStore,
	prefs plannerPrefsStore,
	cache cacheInvalidator,
	queue emailDispatcher,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	now func() time.Time,
) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if now == nil {
		now = time.Now
	}
	return &PlannerService{
		deadlines: deadlines,
		schedules: schedules,
		prefs:     prefs,
		cache:     cache,
		queue:     queue,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       now,
	}
}

// ProcessUpload ingests one syllabus document for a student. Previous parsed
// deadlines for the email are replaced wholesale; the stored schedule is
// regenerated from the combined result.
func (s *PlannerService) ProcessUpload(ctx context.Context, form dto.UploadForm, filename string, data []byte) (*dto.UploadResponse, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid upload form")
	}
	if !textextract.Supported(filename) {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFile, "")
	}

	started := s.now()
	text, err := textextract.FromFile(filename, data)
	if err != nil {
		s.logger.Warn("text extraction failed", zap.String("file", filename), zap.Error(err))
		text = ""
	}
	if strings.TrimSpace(text) == "" {
		// An unreadable document still gets a deadline-free schedule.
		s.logger.Info("no readable text in document", zap.String("file", filename))
	}

	result := parser.Parse(text, started)
	s.metrics.ObserveParse(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."), time.Since(started))

	if err := s.deadlines.DeleteByEmail(ctx, form.Email); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous deadlines")
	}
	if err := s.deadlines.CreateBatch(ctx, form.Email, result.Deadlines); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store parsed deadlines")
	}

	prefs := scheduler.Preferences{
		Wakeup:     form.Wakeup,
		Sleep:      form.Sleep,
		StudyStyle: form.StudyStyle,
	}
	s.storePreferences(ctx, form.Email, prefs)

	schedule, err := s.regenerateWith(ctx, form.Email, prefs)
	if err != nil {
		return nil, err
	}

	queued := false
	if form.SendEmail && s.queue != nil {
		if err := s.queue.Enqueue(jobs.Job{
			ID:      form.Email,
			Type:    EmailJobType,
			Payload: EmailJobPayload{Email: form.Email},
		}); err != nil {
			s.logger.Warn("failed to queue schedule email", zap.String("email", form.Email), zap.Error(err))
		} else {
			queued = true
		}
	}

	return &dto.UploadResponse{
		Email: form.Email,
		Parsed: dto.ParseSummary{
			Dates:      result.Dates,
			Courses:    result.Courses,
			Deadlines:  result.Deadlines,
			ClassTimes: result.ClassTimes,
		},
		ScheduleDays: len(schedule),
		EmailQueued:  queued,
	}, nil
}

// Regenerate rebuilds and stores the schedule for a student from their
// current deadlines and last-uploaded preferences. Called after deadline
// mutations.
func (s *PlannerService) Regenerate(ctx context.Context, email string) (models.Schedule, error) {
	return s.regenerateWith(ctx, email, s.loadPreferences(ctx, email))
}

// storePreferences keeps the upload's daily rhythm so later rebuilds use it.
// Failures only degrade rebuilds to defaults, so they are logged, not fatal.
func (s *PlannerService) storePreferences(ctx context.Context, email string, prefs scheduler.Preferences) {
	if s.prefs == nil {
		return
	}
	payload, err := json.Marshal(prefs)
	if err == nil {
		err = s.prefs.UpsertPreferences(ctx, email, payload)
	}
	if err != nil {
		s.logger.Warn("failed to store preferences", zap.String("email", email), zap.Error(err))
	}
}

func (s *PlannerService) loadPreferences(ctx context.Context, email string) scheduler.Preferences {
	var prefs scheduler.Preferences
	if s.prefs == nil {
		return prefs
	}
	stored, err := s.prefs.GetPreferences(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to load preferences", zap.String("email", email), zap.Error(err))
		}
		return prefs
	}
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &prefs); err != nil {
			s.logger.Warn("stored preferences are corrupt", zap.String("email", email), zap.Error(err))
		}
	}
	return prefs
}

func (s *PlannerService) regenerateWith(ctx context.Context, email string, prefs scheduler.Preferences) (models.Schedule, error) {
	deadlines, err := s.deadlines.List(ctx, models.DeadlineFilter{Email: email})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load deadlines")
	}

	schedule := scheduler.Synthesize(deadlines, prefs, s.now())
	payload, err := json.Marshal(schedule)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule")
	}
	if err := s.schedules.Upsert(ctx, email, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, email)
	}
	s.metrics.ObserveScheduleGenerated()
	s.logger.Info("schedule generated",
		zap.String("email", email),
		zap.Int("days", len(schedule)),
		zap.Int("deadlines", len(deadlines)))
	return schedule, nil
}
