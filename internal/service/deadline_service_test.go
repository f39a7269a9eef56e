package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
)

type deadlineCRUDStub struct {
	byID    map[int64]*models.Deadline
	listed  []models.Deadline
	created []*models.Deadline
	updated []*models.Deadline
	deleted []int64
}

func (s *deadlineCRUDStub) List(ctx context.Context, filter models.DeadlineFilter) ([]models.Deadline, error) {
	return s.listed, nil
}

func (s *deadlineCRUDStub) GetByID(ctx context.Context, id int64) (*models.Deadline, error) {
	if d, ok := s.byID[id]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (s *deadlineCRUDStub) Create(ctx context.Context, deadline *models.Deadline) error {
	deadline.ID = int64(len(s.created) + 1)
	s.created = append(s.created, deadline)
	return nil
}

func (s *deadlineCRUDStub) Update(ctx context.Context, deadline *models.Deadline) error {
	s.updated = append(s.updated, deadline)
	return nil
}

func (s *deadlineCRUDStub) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type regeneratorStub struct {
	emails []string
}

func (s *regeneratorStub) Regenerate(ctx context.Context, email string) (models.Schedule, error) {
	s.emails = append(s.emails, email)
	return models.Schedule{}, nil
}

func TestDeadlineServiceCreateRebuildsSchedule(t *testing.T) {
	repo := &deadlineCRUDStub{}
	planner := &regeneratorStub{}
	svc := NewDeadlineService(repo, planner, nil, nil)

	created, err := svc.Create(context.Background(), dto.DeadlineCreateRequest{
		Email: "amy@vu.edu",
		Date:  "2024-06-20",
		Type:  "exam",
		Title: "Midterm",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, created.ID)
	assert.Equal(t, "manual", created.Source)
	assert.Equal(t, []string{"amy@vu.edu"}, planner.emails)
}

func TestDeadlineServiceCreateValidates(t *testing.T) {
	svc := NewDeadlineService(&deadlineCRUDStub{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.DeadlineCreateRequest{
		Email: "amy@vu.edu",
		Date:  "June 20th",
		Type:  "exam",
		Title: "Midterm",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), dto.DeadlineCreateRequest{
		Email: "amy@vu.edu",
		Date:  "2024-06-20",
		Type:  "homework",
		Title: "Midterm",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDeadlineServiceUpdateAppliesPartialFields(t *testing.T) {
	existing := &models.Deadline{ID: 7, Email: "amy@vu.edu", Date: "2024-06-20", Type: models.DeadlineTypeExam, Title: "Midterm"}
	repo := &deadlineCRUDStub{byID: map[int64]*models.Deadline{7: existing}}
	planner := &regeneratorStub{}
	svc := NewDeadlineService(repo, planner, nil, nil)

	newTitle := "Midterm (rescheduled)"
	newDate := "2024-06-27"
	updated, err := svc.Update(context.Background(), 7, dto.DeadlineUpdateRequest{Title: &newTitle, Date: &newDate})
	require.NoError(t, err)
	assert.Equal(t, "Midterm (rescheduled)", updated.Title)
	assert.Equal(t, "2024-06-27", updated.Date)
	assert.Equal(t, models.DeadlineTypeExam, updated.Type, "unset fields untouched")
	assert.Equal(t, []string{"amy@vu.edu"}, planner.emails)
}

func TestDeadlineServiceUpdateNotFound(t *testing.T) {
	svc := NewDeadlineService(&deadlineCRUDStub{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), 99, dto.DeadlineUpdateRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDeadlineServiceDelete(t *testing.T) {
	existing := &models.Deadline{ID: 7, Email: "amy@vu.edu"}
	repo := &deadlineCRUDStub{byID: map[int64]*models.Deadline{7: existing}}
	planner := &regeneratorStub{}
	svc := NewDeadlineService(repo, planner, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Equal(t, []int64{7}, repo.deleted)
	assert.Equal(t, []string{"amy@vu.edu"}, planner.emails)
}

func TestDeadlineServiceListRequiresEmail(t *testing.T) {
	svc := NewDeadlineService(&deadlineCRUDStub{}, nil, nil, nil)

	_, err := svc.List(context.Background(), models.DeadlineFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDeadlineServiceExportCSV(t *testing.T) {
	repo := &deadlineCRUDStub{listed: []models.Deadline{
		{Email: "amy@vu.edu", CourseCode: "CS101", Date: "2024-06-20", Type: models.DeadlineTypeExam, Title: "Midterm"},
	}}
	svc := NewDeadlineService(repo, nil, nil, nil)

	data, err := svc.ExportCSV(context.Background(), models.DeadlineFilter{Email: "amy@vu.edu"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "course_code")
	assert.Contains(t, string(data), "Midterm")
}
