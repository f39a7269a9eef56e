package dto

import "github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"

// UploadForm captures the multipart fields of POST /upload. The syllabus
// file itself travels as the "file" part.
type UploadForm struct {
	Email      string `form:"email" validate:"required,email"`
	Wakeup     int    `form:"wakeup" validate:"omitempty,min=0,max=23"`
	Sleep      int    `form:"sleep" validate:"omitempty,min=0,max=23"`
	StudyStyle string `form:"study_style" validate:"omitempty,oneof=pomodoro focused flexible"`
	SendEmail  bool   `form:"send_email"`
}

// ParseSummary reports what the parser extracted from a syllabus.
type ParseSummary struct {
	Dates      []string             `json:"dates"`
	Courses    models.CourseInfo    `json:"courses"`
	Deadlines  []models.Deadline    `json:"deadlines"`
	ClassTimes []models.ClassTimeSlot `json:"class_times"`
}

// UploadResponse is returned after a syllabus has been parsed and the
// schedule regenerated.
type UploadResponse struct {
	Email        string       `json:"email"`
	Parsed       ParseSummary `json:"parsed"`
	ScheduleDays int          `json:"schedule_days"`
	EmailQueued  bool         `json:"email_queued"`
}
