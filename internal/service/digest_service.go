package service

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type digestScheduleLister interface {
	ListEmails(ctx context.Context) ([]string, error)
}

type scheduleMailer interface {
	SendScheduleEmail(ctx context.Context, email string) error
	SendDeadlineReminders(ctx context.Context, email string) (int, error)
}

// DigestService drives the recurring mail jobs: the full weekly digest on
// Monday mornings and daily reminders for deadlines falling due soon.
type DigestService struct {
	schedules    digestScheduleLister
	mail         scheduleMailer
	cron         *cron.Cron
	digestSpec   string
	reminderSpec string
	logger       *zap.Logger
}

// NewDigestService constructs the recurring mail jobs.
func NewDigestService(schedules digestScheduleLister, mail scheduleMailer, digestSpec, reminderSpec string, logger *zap.Logger) *DigestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if digestSpec == "" {
		digestSpec = "0 7 * * 1"
	}
	if reminderSpec == "" {
		reminderSpec = "0 8 * * *"
	}
	return &DigestService{
		schedules:    schedules,
		mail:         mail,
		cron:         cron.New(),
		digestSpec:   digestSpec,
		reminderSpec: reminderSpec,
		logger:       logger,
	}
}

// Start registers the cron entries and begins the timer.
func (s *DigestService) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.digestSpec, func() { s.Run(ctx) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.reminderSpec, func() { s.RunReminders(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("mail jobs scheduled",
		zap.String("digest_cron", s.digestSpec),
		zap.String("reminder_cron", s.reminderSpec))
	return nil
}

// Stop halts the cron timer, waiting for a running job to finish.
func (s *DigestService) Stop() {
	<-s.cron.Stop().Done()
}

// Run sends the digest to every student with a stored schedule. Failures on
// one recipient never block the rest.
func (s *DigestService) Run(ctx context.Context) {
	emails, err := s.schedules.ListEmails(ctx)
	if err != nil {
		s.logger.Error("digest run failed to list recipients", zap.Error(err))
		return
	}

	sent, failed := 0, 0
	for _, email := range emails {
		if err := s.mail.SendScheduleEmail(ctx, email); err != nil {
			failed++
			s.logger.Warn("digest delivery failed", zap.String("email", email), zap.Error(err))
			continue
		}
		sent++
	}
	s.logger.Info("weekly digest completed", zap.Int("sent", sent), zap.Int("failed", failed))
}

// RunReminders mails reminders for every student's imminent deadlines.
func (s *DigestService) RunReminders(ctx context.Context) {
	emails, err := s.schedules.ListEmails(ctx)
	if err != nil {
		s.logger.Error("reminder run failed to list recipients", zap.Error(err))
		return
	}

	sent, failed := 0, 0
	for _, email := range emails {
		n, err := s.mail.SendDeadlineReminders(ctx, email)
		sent += n
		if err != nil {
			failed++
			s.logger.Warn("reminder delivery failed", zap.String("email", email), zap.Error(err))
		}
	}
	s.logger.Info("deadline reminders completed", zap.Int("sent", sent), zap.Int("failed", failed))
}
