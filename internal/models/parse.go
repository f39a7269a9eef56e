package models

// ClassTimeSlot records a weekly meeting pattern found in a syllabus, e.g.
// "MWF 10:00 AM - 11:00 AM". Captured for future use; the synthesizer does
// not consume it.
type ClassTimeSlot struct {
	Days      string  `json:"days"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// CourseInfo groups course codes and free-text course names found in a
// document. Codes are deduplicated.
type CourseInfo struct {
	Codes []string `json:"codes"`
	Names []string `json:"names"`
}

// ParseResult is the structured output of a full document scan.
type ParseResult struct {
	Dates      []string        `json:"dates"`
	Courses    CourseInfo      `json:"courses"`
	Deadlines  []Deadline      `json:"deadlines"`
	ClassTimes []ClassTimeSlot `json:"class_times"`
}
