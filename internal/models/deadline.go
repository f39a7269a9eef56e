package models

import "time"

// DeadlineType categorises an academic obligation.
type DeadlineType string

const (
	DeadlineTypeExam         DeadlineType = "exam"
	DeadlineTypeAssignment   DeadlineType = "assignment"
	DeadlineTypeProject      DeadlineType = "project"
	DeadlineTypeQuiz         DeadlineType = "quiz"
	DeadlineTypePresentation DeadlineType = "presentation"
)

// Deadline is a dated academic obligation. Instances come from two places:
// the syllabus parser (ID empty, Source "parsed") and the deadlines table
// (full persistence fields populated). Once produced by the parser a
// deadline is never mutated.
type Deadline struct {
	ID          int64        `db:"id" json:"id,omitempty"`
	Email       string       `db:"email" json:"email,omitempty"`
	CourseCode  string       `db:"course_code" json:"course_code,omitempty"`
	CourseName  string       `db:"course_name" json:"course_name,omitempty"`
	Date        string       `db:"deadline_date" json:"date"`
	Time        string       `db:"deadline_time" json:"time,omitempty"`
	Type        DeadlineType `db:"deadline_type" json:"type"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description,omitempty"`
	Source      string       `db:"-" json:"source,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at,omitempty"`
}

// DeadlineFilter narrows deadline queries.
type DeadlineFilter struct {
	Email      string
	CourseCode string
	From       string
	To         string
}
