package models

// ActivityType labels a slot in a daily plan.
type ActivityType string

const (
	ActivityTypeRoutine  ActivityType = "routine"
	ActivityTypeMeal     ActivityType = "meal"
	ActivityTypeStudy    ActivityType = "study"
	ActivityTypeDeadline ActivityType = "deadline"
	ActivityTypeReview   ActivityType = "review"
	ActivityTypeWellness ActivityType = "wellness"
	ActivityTypeFree     ActivityType = "free"
)

// Activity priorities. Only deadline and review activities carry one.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Activity is a single entry in a day's plan. Time is a zero-padded 24-hour
// "HH:MM" string; ordering within a day is lexicographic on that string.
// Immutable once placed into a day.
type Activity struct {
	Time        string       `json:"time"`
	Activity    string       `json:"activity"`
	Type        ActivityType `json:"type"`
	Duration    int          `json:"duration,omitempty"`
	Description string       `json:"description,omitempty"`
	Course      string       `json:"course,omitempty"`
	Priority    string       `json:"priority,omitempty"`
}

// Schedule maps canonical dates (YYYY-MM-DD) to the ordered activities of
// that day. It covers exactly the synthesis horizon and serialises directly
// to JSON.
type Schedule map[string][]Activity
