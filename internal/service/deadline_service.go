package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/export"
)

type deadlineStore interface {
	List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error)
	GetByID(ctx context.Context, id int64) (*models.Deadline, error)
	Create(ctx context.Context, deadline *models.Deadline) error
	Update(ctx context.Context, deadline *models.Deadline) error
	Delete(ctx context.Context, id int64) error
}

type scheduleRegenerator interface {
	Regenerate(ctx context.Context, email string) (models.Schedule, error)
}

// DeadlineService manages manual deadline CRUD. Every mutation rebuilds the
// owner's schedule so the calendar stays consistent with the deadline list.
type DeadlineService struct {
	repo      deadlineStore
	planner   scheduleRegenerator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDeadlineService constructs the deadline service.
func NewDeadlineService(repo deadlineStore, planner scheduleRegenerator, validate *validator.Validate, logger *zap.Logger) *DeadlineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DeadlineService{repo: repo, planner: planner, validator: validate, logger: logger}
}

// List returns a student's deadlines, optionally filtered.
func (s *DeadlineService) List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error) {
	if filter.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email filter is required")
	}
	deadlines, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deadlines")
	}
	return deadlines, nil
}

// Create adds a manual deadline and rebuilds the owner's schedule.
func (s *DeadlineService) Create(ctx context.Context, req dto.DeadlineCreateRequest) (*models.Deadline, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid deadline payload")
	}

	deadline := &models.Deadline{
		Email:       req.Email,
		CourseCode:  req.CourseCode,
		CourseName:  req.CourseName,
		Date:        req.Date,
		Time:        req.Time,
		Type:        models.DeadlineType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Source:      "manual",
	}
	if err := s.repo.Create(ctx, deadline); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create deadline")
	}

	s.regenerate(ctx, deadline.Email)
	return deadline, nil
}

// Update modifies a deadline in place and rebuilds the owner's schedule.
func (s *DeadlineService) Update(ctx context.Context, id int64, req dto.DeadlineUpdateRequest) (*models.Deadline, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid deadline payload")
	}

	deadline, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "deadline not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load deadline")
	}

	if req.CourseCode != nil {
		deadline.CourseCode = *req.CourseCode
	}
	if req.CourseName != nil {
		deadline.CourseName = *req.CourseName
	}
	if req.Date != nil {
		deadline.Date = *req.Date
	}
	if req.Time != nil {
		deadline.Time = *req.Time
	}
	if req.Type != nil {
		deadline.Type = models.DeadlineType(*req.Type)
	}
	if req.Title != nil {
		deadline.Title = *req.Title
	}
	if req.Description != nil {
		deadline.Description = *req.Description
	}

	if err := s.repo.Update(ctx, deadline); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update deadline")
	}

	s.regenerate(ctx, deadline.Email)
	return deadline, nil
}

// Delete removes a deadline and rebuilds the owner's schedule.
func (s *DeadlineService) Delete(ctx context.Context, id int64) error {
	deadline, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "deadline not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load deadline")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete deadline")
	}

	s.regenerate(ctx, deadline.Email)
	return nil
}

// ExportCSV renders a student's deadlines as CSV bytes.
func (s *DeadlineService) ExportCSV(ctx context.Context, filter models.DeadlineFilter) ([]byte, error) {
	deadlines, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := export.DeadlinesCSV(deadlines)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, nil
}

// regenerate rebuilds the schedule after a mutation. Failures are logged,
// not surfaced: the deadline change itself already committed.
func (s *DeadlineService) regenerate(ctx context.Context, email string) {
	if s.planner == nil {
		return
	}
	if _, err := s.planner.Regenerate(ctx, email); err != nil {
		s.logger.Warn("schedule rebuild after deadline change failed", zap.String("email", email), zap.Error(err))
	}
}
