package dto

// DeadlineCreateRequest captures POST /deadlines payload.
type DeadlineCreateRequest struct {
	Email       string `json:"email" validate:"required,email"`
	CourseCode  string `json:"course_code"`
	CourseName  string `json:"course_name"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"omitempty,datetime=15:04"`
	Type        string `json:"type" validate:"required,oneof=exam assignment project quiz presentation"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
}

// DeadlineUpdateRequest captures PUT /deadlines/:id payload. Zero-valued
// fields keep their stored values.
type DeadlineUpdateRequest struct {
	CourseCode  *string `json:"course_code,omitempty"`
	CourseName  *string `json:"course_name,omitempty"`
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=exam assignment project quiz presentation"`
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
}
