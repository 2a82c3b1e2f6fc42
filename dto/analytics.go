package dto

// Summary is the window-wide totals payload for /analytics/summary.
type Summary struct {
	TotalActualMinutes  int `json:"total_actual_minutes"`
	TotalPlannedMinutes int `json:"total_planned_minutes"`
	AchievementRate     int `json:"achievement_rate"`
}

// BucketComparison is one row of /analytics/plan-vs-actual.
type BucketComparison struct {
	Bucket      string `json:"bucket"`
	Actual      int    `json:"actual"`
	Planned     int    `json:"planned"`
	Achievement int    `json:"achievement"`
}

// SubjectShare is one slice of the subject-distribution donut.
type SubjectShare struct {
	Subject string `json:"subject"`
	Minutes int    `json:"minutes"`
	Share   int    `json:"share"`
}

// StreakResponse is the /analytics/streak payload.
type StreakResponse struct {
	StreakDays int `json:"streak_days"`
}

// KanbanBucket is one bucket's prepare/active/done counts.
type KanbanBucket struct {
	Bucket  string `json:"bucket"`
	Prepare int    `json:"prepare"`
	Active  int    `json:"active"`
	Done    int    `json:"done"`
}

// KanbanReport is the /analytics/kanban payload.
type KanbanReport struct {
	Mode    string         `json:"mode"`
	Buckets []KanbanBucket `json:"buckets"`
}

// DailyActual is one day of the long-range actual-minutes series.
type DailyActual struct {
	Date          string `json:"date"`
	ActualMinutes int    `json:"actual_minutes"`
}
