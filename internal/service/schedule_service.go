package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/scheduler"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/export"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/ical"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/mailer"
)

type scheduleStore interface {
	GetByEmail(ctx context.Context, email string) (*models.StudentSchedule, error)
}

type scheduleDeadlineStore interface {
	List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error)
}

type schedulePrefsStore interface {
	GetPreferences(ctx context.Context, email string) (types.JSONText, error)
}

const (
	scheduleCachePrefix = "schedule:"
	scheduleCacheTTL    = 10 * time.Minute
)

// ScheduleService serves stored schedules with a Redis read-through cache
// and renders their export and email forms.
type ScheduleService struct {
	schedules scheduleStore
	deadlines scheduleDeadlineStore
	prefs     schedulePrefsStore
	redis     *redis.Client
	sender    mailer.Sender
	pdf       *export.SchedulePDF
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(
	schedules scheduleStore,
	deadlines scheduleDeadlineStore,
	prefs schedulePrefsStore,
	redisClient *redis.Client,
	sender mailer.Sender,
	metrics *MetricsService,
	logger *zap.Logger,
	now func() time.Time,
) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		schedules: schedules,
		deadlines: deadlines,
		prefs:     prefs,
		redis:     redisClient,
		sender:    sender,
		pdf:       export.NewSchedulePDF(),
		metrics:   metrics,
		logger:    logger,
		now:       now,
	}
}

// Get returns the stored schedule for a student, consulting the cache first.
func (s *ScheduleService) Get(ctx context.Context, email string) (models.Schedule, error) {
	if cached, ok := s.fromCache(ctx, email); ok {
		return cached, nil
	}

	stored, err := s.schedules.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no schedule for this email")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	var schedule models.Schedule
	if err := json.Unmarshal(stored.ScheduleData, &schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored schedule is corrupt")
	}

	s.toCache(ctx, email, stored.ScheduleData)
	return schedule, nil
}

// Invalidate drops the cached schedule for a student.
func (s *ScheduleService) Invalidate(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, scheduleCachePrefix+email).Err(); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.String("email", email), zap.Error(err))
	}
}

// Summary aggregates the next seven days of the schedule.
func (s *ScheduleService) Summary(ctx context.Context, email string) (*models.WeeklySummary, error) {
	schedule, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	summary := summarizeWeek(schedule, s.now())
	return &summary, nil
}

// ExportPDF renders the stored schedule as a printable PDF.
func (s *ScheduleService) ExportPDF(ctx context.Context, email string) ([]byte, error) {
	schedule, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.Render(email, schedule)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return data, nil
}

// ExportICS renders the stored schedule as an importable calendar.
func (s *ScheduleService) ExportICS(ctx context.Context, email string) ([]byte, string, error) {
	schedule, err := s.Get(ctx, email)
	if err != nil {
		return nil, "", err
	}
	return ical.Render(schedule), ical.Filename(email), nil
}

// SendScheduleEmail composes and delivers the schedule email with its
// calendar attachment. Used by the upload queue and the weekly digest.
func (s *ScheduleService) SendScheduleEmail(ctx context.Context, email string) error {
	schedule, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	deadlines, err := s.deadlines.List(ctx, models.DeadlineFilter{Email: email})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load deadlines")
	}

	msg, err := ComposeScheduleEmail(email, schedule, deadlines, s.preferencesFor(ctx, email), s.now())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compose email")
	}

	if err := s.sender.Send(msg); err != nil {
		s.metrics.ObserveEmail(false)
		s.logger.Error("schedule email failed", zap.String("email", email), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrEmailDelivery.Code, appErrors.ErrEmailDelivery.Status, "")
	}
	s.metrics.ObserveEmail(true)
	s.logger.Info("schedule email sent", zap.String("email", email))
	return nil
}

// reminderWindowDays bounds how far ahead deadline reminders look.
const reminderWindowDays = 3

// SendDeadlineReminders mails one reminder per deadline falling due within
// the next few days. Returns the number of reminders sent.
func (s *ScheduleService) SendDeadlineReminders(ctx context.Context, email string) (int, error) {
	today := time.Date(s.now().Year(), s.now().Month(), s.now().Day(), 0, 0, 0, 0, time.UTC)
	deadlines, err := s.deadlines.List(ctx, models.DeadlineFilter{
		Email: email,
		From:  today.Format("2006-01-02"),
		To:    today.AddDate(0, 0, reminderWindowDays).Format("2006-01-02"),
	})
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load deadlines")
	}

	sent := 0
	for _, deadline := range deadlines {
		due, err := time.Parse("2006-01-02", deadline.Date)
		if err != nil {
			continue
		}
		daysUntil := int(due.Sub(today).Hours() / 24)

		msg, err := ComposeReminderEmail(email, deadline, daysUntil)
		if err != nil {
			return sent, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compose reminder")
		}
		if err := s.sender.Send(msg); err != nil {
			s.metrics.ObserveEmail(false)
			s.logger.Error("deadline reminder failed", zap.String("email", email), zap.Error(err))
			return sent, appErrors.Wrap(err, appErrors.ErrEmailDelivery.Code, appErrors.ErrEmailDelivery.Status, "")
		}
		s.metrics.ObserveEmail(true)
		sent++
	}
	return sent, nil
}

// preferencesFor loads the student's stored daily rhythm; zero preferences
// when nothing is stored.
func (s *ScheduleService) preferencesFor(ctx context.Context, email string) scheduler.Preferences {
	var prefs scheduler.Preferences
	if s.prefs == nil {
		return prefs
	}
	stored, err := s.prefs.GetPreferences(ctx, email)
	if err != nil || len(stored) == 0 {
		return prefs
	}
	if err := json.Unmarshal(stored, &prefs); err != nil {
		s.logger.Warn("stored preferences are corrupt", zap.String("email", email), zap.Error(err))
	}
	return prefs
}

func (s *ScheduleService) fromCache(ctx context.Context, email string) (models.Schedule, bool) {
	if s.redis == nil {
		return nil, false
	}
	raw, err := s.redis.Get(ctx, scheduleCachePrefix+email).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("schedule cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
		return nil, false
	}
	var schedule models.Schedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		s.metrics.RecordCacheOperation(false)
		return nil, false
	}
	s.metrics.RecordCacheOperation(true)
	return schedule, true
}

func (s *ScheduleService) toCache(ctx context.Context, email string, data []byte) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, scheduleCachePrefix+email, data, scheduleCacheTTL).Err(); err != nil {
		s.logger.Warn("schedule cache write failed", zap.Error(err))
	}
}

// summarizeWeek walks the current calendar week, Monday through Sunday, and
// totals study time, sessions and deadline entries. Review sessions are
// deadline prep, not scheduled study, and stay out of the totals.
func summarizeWeek(schedule models.Schedule, today time.Time) models.WeeklySummary {
	summary := models.WeeklySummary{UpcomingDeadlines: []models.UpcomingDeadline{}}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))

	var studyMinutes int
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i).Format("2006-01-02")
		for _, activity := range schedule[date] {
			switch activity.Type {
			case models.ActivityTypeStudy:
				summary.StudySessions++
				studyMinutes += activity.Duration
			case models.ActivityTypeDeadline:
				summary.DeadlinesThisWeek++
				summary.UpcomingDeadlines = append(summary.UpcomingDeadlines, models.UpcomingDeadline{
					Date:   date,
					Title:  activity.Activity,
					Course: activity.Course,
				})
			}
		}
	}
	summary.TotalStudyHours = float64(studyMinutes) / 60
	return summary
}
