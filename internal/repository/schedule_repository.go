package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// ScheduleRepository persists generated schedules, one row per student email.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetByEmail returns the stored schedule for a student.
func (r *ScheduleRepository) GetByEmail(ctx context.Context, email string) (*models.StudentSchedule, error) {
	const query = `SELECT id, email, schedule_data, created_at, updated_at
FROM student_schedules WHERE email = $1`
	var schedule models.StudentSchedule
	if err := r.db.GetContext(ctx, &schedule, query, email); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Upsert stores the schedule for a student, replacing any previous one.
func (r *ScheduleRepository) Upsert(ctx context.Context, email string, data types.JSONText) error {
	now := time.Now().UTC()
	const query = `INSERT INTO student_schedules (email, schedule_data, created_at, updated_at)
VALUES ($1, $2, $3, $3)
ON CONFLICT (email) DO UPDATE SET schedule_data = EXCLUDED.schedule_data, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, email, data, now); err != nil {
		return fmt.Errorf("upsert schedule: %w", err)
	}
	return nil
}

// Delete removes a student's schedule.
func (r *ScheduleRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM student_schedules WHERE email = $1", email); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

// DeleteStale removes schedules untouched since the cutoff and returns how
// many were dropped.
func (r *ScheduleRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM student_schedules WHERE updated_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale schedules: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete stale schedules: %w", err)
	}
	return deleted, nil
}

// ListEmails returns every student with a stored schedule, for the weekly
// digest job.
func (r *ScheduleRepository) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	if err := r.db.SelectContext(ctx, &emails, "SELECT email FROM student_schedules ORDER BY email"); err != nil {
		return nil, fmt.Errorf("list schedule emails: %w", err)
	}
	return emails, nil
}
