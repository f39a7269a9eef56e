package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// StudentSchedule is the persisted form of a generated schedule, keyed by
// student email. Regenerated wholesale on every upload; individual days are
// never partially edited.
type StudentSchedule struct {
	ID           int64          `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	ScheduleData types.JSONText `db:"schedule_data" json:"schedule_data"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// UpcomingDeadline is a flattened deadline entry for weekly summaries.
type UpcomingDeadline struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	Course string `json:"course,omitempty"`
}

// WeeklySummary aggregates the current week of a schedule.
type WeeklySummary struct {
	TotalStudyHours   float64            `json:"total_study_hours"`
	DeadlinesThisWeek int                `json:"deadlines_this_week"`
	StudySessions     int                `json:"study_sessions"`
	UpcomingDeadlines []UpcomingDeadline `json:"upcoming_deadlines"`
}
