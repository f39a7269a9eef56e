package scheduler

import (
	"fmt"
	"time"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

var reviewIntensity = map[int]string{
	1: "Intensive",
	3: "Focused",
	7: "Initial",
}

// ReviewSessions emits 20:00 review blocks for exams and projects falling
// exactly 1, 3, or 7 days after the given day. A single deadline can thus
// contribute up to three reviews across its run-up, each placed
// independently into its day.
func ReviewSessions(day time.Time, deadlines []models.Deadline) []models.Activity {
	var sessions []models.Activity
	for _, d := range deadlines {
		if d.Type != models.DeadlineTypeExam && d.Type != models.DeadlineTypeProject {
			continue
		}
		due, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			continue
		}
		daysUntil := int(due.Sub(day).Hours() / 24)
		intensity, ok := reviewIntensity[daysUntil]
		if !ok {
			continue
		}

		duration := 45
		if daysUntil == 1 {
			duration = 60
		}
		priority := models.PriorityMedium
		if daysUntil <= 3 {
			priority = models.PriorityHigh
		}

		sessions = append(sessions, models.Activity{
			Time:     "20:00",
			Activity: fmt.Sprintf("📖 %s Review: %s", intensity, d.Title),
			Type:     models.ActivityTypeReview,
			Course:   d.CourseCode,
			Duration: duration,
			Priority: priority,
		})
	}
	return sessions
}
