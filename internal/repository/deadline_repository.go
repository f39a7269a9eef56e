package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// DeadlineRepository provides persistence for deadlines.
type DeadlineRepository struct {
	db *sqlx.DB
}

// NewDeadlineRepository creates the repository.
func NewDeadlineRepository(db *sqlx.DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

const deadlineColumns = "id, email, course_code, course_name, deadline_date, deadline_time, deadline_type, title, description, created_at"

// List returns deadlines for a student ordered by date, narrowed by the
// optional course and date-range filters.
func (r *DeadlineRepository) List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error) {
	where := []string{"email = $1"}
	args := []interface{}{filter.Email}
	if filter.CourseCode != "" {
		where = append(where, fmt.Sprintf("course_code = $%d", len(args)+1))
		args = append(args, filter.CourseCode)
	}
	if filter.From != "" {
		where = append(where, fmt.Sprintf("deadline_date >= $%d", len(args)+1))
		args = append(args, filter.From)
	}
	if filter.To != "" {
		where = append(where, fmt.Sprintf("deadline_date <= $%d", len(args)+1))
		args = append(args, filter.To)
	}

	query := fmt.Sprintf(`SELECT %s FROM deadlines WHERE %s ORDER BY deadline_date ASC, id ASC`,
		deadlineColumns, strings.Join(where, " AND "))
	var deadlines []models.Deadline
	if err := r.db.SelectContext(ctx, &deadlines, query, args...); err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	return deadlines, nil
}

// GetByID returns one deadline.
func (r *DeadlineRepository) GetByID(ctx context.Context, id int64) (*models.Deadline, error) {
	query := fmt.Sprintf("SELECT %s FROM deadlines WHERE id = $1", deadlineColumns)
	var deadline models.Deadline
	if err := r.db.GetContext(ctx, &deadline, query, id); err != nil {
		return nil, err
	}
	return &deadline, nil
}

// Create inserts a deadline and populates its generated ID.
func (r *DeadlineRepository) Create(ctx context.Context, deadline *models.Deadline) error {
	if deadline.CreatedAt.IsZero() {
		deadline.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO deadlines (email, course_code, course_name, deadline_date, deadline_time, deadline_type, title, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	if err := r.db.GetContext(ctx, &deadline.ID, query,
		deadline.Email,
		deadline.CourseCode,
		deadline.CourseName,
		deadline.Date,
		deadline.Time,
		deadline.Type,
		deadline.Title,
		deadline.Description,
		deadline.CreatedAt,
	); err != nil {
		return fmt.Errorf("create deadline: %w", err)
	}
	return nil
}

// CreateBatch inserts parsed deadlines for a student in one transaction.
func (r *DeadlineRepository) CreateBatch(ctx context.Context, email string, deadlines []models.Deadline) error {
	if len(deadlines) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin deadline batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	const query = `INSERT INTO deadlines (email, course_code, course_name, deadline_date, deadline_time, deadline_type, title, description, created_at)
VALUES (:email, :course_code, :course_name, :deadline_date, :deadline_time, :deadline_type, :title, :description, :created_at)`
	for i := range deadlines {
		deadlines[i].Email = email
		if deadlines[i].CreatedAt.IsZero() {
			deadlines[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, query, deadlines[i]); err != nil {
			return fmt.Errorf("insert deadline batch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit deadline batch: %w", err)
	}
	return nil
}

// Update modifies an existing deadline.
func (r *DeadlineRepository) Update(ctx context.Context, deadline *models.Deadline) error {
	const query = `UPDATE deadlines SET course_code = :course_code, course_name = :course_name,
deadline_date = :deadline_date, deadline_time = :deadline_time, deadline_type = :deadline_type,
title = :title, description = :description
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, deadline); err != nil {
		return fmt.Errorf("update deadline: %w", err)
	}
	return nil
}

// Delete removes a deadline.
func (r *DeadlineRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM deadlines WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete deadline: %w", err)
	}
	return nil
}

// DeleteByEmail clears a student's deadlines, used before re-ingesting a
// fresh syllabus upload.
func (r *DeadlineRepository) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM deadlines WHERE email = $1", email); err != nil {
		return fmt.Errorf("clear deadlines: %w", err)
	}
	return nil
}
