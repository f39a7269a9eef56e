package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/models"
)

// HorizonDays is the forward window a schedule covers, starting today
// inclusive — roughly one semester.
const HorizonDays = 120

const dateLayout = "2006-01-02"

// Preferences carry the user's daily rhythm. Zero values fall back to the
// service defaults; an unrecognised study style takes the flexible branch.
type Preferences struct {
	Wakeup     int    `json:"wakeup"`
	Sleep      int    `json:"sleep"`
	StudyStyle string `json:"study_style"`
}

const (
	StyleFocused  = "focused"
	StylePomodoro = "pomodoro"
	StyleFlexible = "flexible"

	defaultWakeup = 8
	defaultSleep  = 23
)

func (p Preferences) WithDefaults() Preferences {
	if p.Wakeup <= 0 {
		p.Wakeup = defaultWakeup
	}
	if p.Sleep <= 0 {
		p.Sleep = defaultSleep
	}
	if p.StudyStyle == "" {
		p.StudyStyle = StylePomodoro
	}
	return p
}

// Synthesize builds a day-by-day activity calendar over the full horizon.
// today anchors the window and the review-session arithmetic; the result is
// deterministic given identical inputs. Deadlines are read only, never
// mutated. Overlapping activity times are allowed and left as-is — the only
// ordering applied is the stable per-day sort on the time string.
func Synthesize(deadlines []models.Deadline, prefs Preferences, today time.Time) models.Schedule {
	prefs = prefs.WithDefaults()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	schedule := make(models.Schedule, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		day := start.AddDate(0, 0, i)
		schedule[day.Format(dateLayout)] = buildDayPlan(day, prefs, deadlines)
	}
	return schedule
}

// buildDayPlan assembles one day: fixed routine and meals, style-dependent
// study blocks, any deadlines landing on the day, review sessions for
// deadlines 1/3/7 days out, weekday wellness, and wind-down time.
func buildDayPlan(day time.Time, prefs Preferences, deadlines []models.Deadline) []models.Activity {
	weekday := mondayIndexedWeekday(day)

	plan := []models.Activity{
		{
			Time:     hourLabel(prefs.Wakeup),
			Activity: "🌅 Morning Routine & Wake Up",
			Type:     models.ActivityTypeRoutine,
			Duration: 60,
		},
		{
			Time:     hourLabel(prefs.Wakeup + 1),
			Activity: "🍳 Breakfast",
			Type:     models.ActivityTypeMeal,
			Duration: 30,
		},
	}

	plan = append(plan, StudySessions(prefs.Wakeup, prefs.Sleep, prefs.StudyStyle, weekday)...)

	plan = append(plan,
		models.Activity{Time: "12:00", Activity: "🥗 Lunch Break", Type: models.ActivityTypeMeal, Duration: 60},
		models.Activity{Time: "18:00", Activity: "🍽️ Dinner", Type: models.ActivityTypeMeal, Duration: 60},
	)

	plan = append(plan, deadlineActivities(day, deadlines)...)
	plan = append(plan, ReviewSessions(day, deadlines)...)

	if weekday < 5 {
		plan = append(plan, models.Activity{
			Time:     hourLabel(prefs.Wakeup + 8),
			Activity: "💪 Exercise/Wellness Time",
			Type:     models.ActivityTypeWellness,
			Duration: 45,
		})
	}

	plan = append(plan, models.Activity{
		Time:     hourLabel(prefs.Sleep - 2),
		Activity: "🎉 Free Time & Relaxation",
		Type:     models.ActivityTypeFree,
		Duration: 120,
	})

	// Stable: ties keep generation order.
	sort.SliceStable(plan, func(i, j int) bool { return plan[i].Time < plan[j].Time })
	return plan
}

var typeEmojis = map[models.DeadlineType]string{
	models.DeadlineTypeExam:         "📝",
	models.DeadlineTypeAssignment:   "📄",
	models.DeadlineTypeProject:      "🚀",
	models.DeadlineTypeQuiz:         "❓",
	models.DeadlineTypePresentation: "🎤",
}

const fallbackEmoji = "⚠️"

// deadlineActivities emits one high-priority entry per deadline landing on
// the given day. Parsed deadlines carry no time of day and default to 23:59.
func deadlineActivities(day time.Time, deadlines []models.Deadline) []models.Activity {
	dateStr := day.Format(dateLayout)
	var activities []models.Activity
	for _, d := range deadlines {
		if d.Date != dateStr {
			continue
		}
		emoji, ok := typeEmojis[d.Type]
		if !ok {
			emoji = fallbackEmoji
		}
		at := d.Time
		if at == "" {
			at = "23:59"
		}
		activities = append(activities, models.Activity{
			Time:        at,
			Activity:    fmt.Sprintf("%s %s: %s", emoji, strings.ToUpper(string(d.Type)), d.Title),
			Type:        models.ActivityTypeDeadline,
			Course:      d.CourseCode,
			Description: d.Description,
			Priority:    models.PriorityHigh,
		})
	}
	return activities
}

// hourLabel renders an hour as a zero-padded HH:00 time string.
func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// mondayIndexedWeekday maps time.Weekday (Sunday=0) onto the
// 0=Monday..6=Sunday convention the generators use.
func mondayIndexedWeekday(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}
