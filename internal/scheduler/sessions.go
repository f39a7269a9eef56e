package scheduler

import "github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"

// StudySessions produces the study blocks for one day, parameterised by
// style. Pure and deterministic: no randomisation, no clock access. weekday
// follows the 0=Monday..6=Sunday convention.
func StudySessions(wakeup, sleep int, style string, weekday int) []models.Activity {
	switch style {
	case StylePomodoro:
		sessions := []models.Activity{
			{
				Time:        hourLabel(wakeup + 2),
				Activity:    "📚 Morning Study Block (4 Pomodoros)",
				Type:        models.ActivityTypeStudy,
				Duration:    120,
				Description: "25min study + 5min break × 4",
			},
			{
				Time:        "14:00",
				Activity:    "📚 Afternoon Study Block (4 Pomodoros)",
				Type:        models.ActivityTypeStudy,
				Duration:    120,
				Description: "25min study + 5min break × 4",
			},
		}
		if weekday < 5 {
			sessions = append(sessions, models.Activity{
				Time:        "19:00",
				Activity:    "📚 Evening Study Block (2 Pomodoros)",
				Type:        models.ActivityTypeStudy,
				Duration:    60,
				Description: "25min study + 5min break × 2",
			})
		}
		return sessions

	case StyleFocused:
		return []models.Activity{
			{
				Time:        hourLabel(wakeup + 2),
				Activity:    "📚 Deep Focus Session 1",
				Type:        models.ActivityTypeStudy,
				Duration:    180,
				Description: "Extended focused study session",
			},
			{
				Time:        "14:00",
				Activity:    "📚 Deep Focus Session 2",
				Type:        models.ActivityTypeStudy,
				Duration:    150,
				Description: "Extended focused study session",
			},
		}

	default:
		// Flexible, and the catch-all for unrecognised styles.
		return []models.Activity{
			{
				Time:        hourLabel(wakeup + 2),
				Activity:    "📚 Morning Study Session",
				Type:        models.ActivityTypeStudy,
				Duration:    90,
				Description: "Flexible study session",
			},
			{
				Time:        "13:00",
				Activity:    "📚 Afternoon Study Session",
				Type:        models.ActivityTypeStudy,
				Duration:    60,
				Description: "Flexible study session",
			},
			{
				Time:        "16:00",
				Activity:    "📚 Late Afternoon Study",
				Type:        models.ActivityTypeStudy,
				Duration:    90,
				Description: "Flexible study session",
			},
			{
				Time:        "19:30",
				Activity:    "📚 Evening Review",
				Type:        models.ActivityTypeStudy,
				Duration:    45,
				Description: "Review and light study",
			},
		}
	}
}
