package model

type QuestStatus string

const (
	StatusPrepare QuestStatus = "prepare"
	StatusActive  QuestStatus = "active"
	StatusDone    QuestStatus = "done"
)

// ValidStatus reports whether s is one of the three kanban states.
func ValidStatus(s QuestStatus) bool {
	switch s {
	case StatusPrepare, StatusActive, StatusDone:
		return true
	}
	return false
}

// Quest is a study task owned by a single user. Date fields are stored as
// strings because historical documents carry both bare dates
// ("2024-01-05") and full timestamps; consumers parse them through
// utils.ParseDate and must handle the absent case explicitly.
type Quest struct {
	QuestID          int            `bson:"questId" json:"questId"`
	UserID           int            `bson:"userId" json:"userId"`
	Title            string         `bson:"title,omitempty" json:"title,omitempty"`
	Description      string         `bson:"description,omitempty" json:"description,omitempty"`
	Subject          string         `bson:"subject,omitempty" json:"subject,omitempty"`
	Topic            string         `bson:"topic,omitempty" json:"topic,omitempty"`
	Difficulty       string         `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	SuggestedMinutes int            `bson:"suggested_minutes" json:"suggested_minutes"`
	Deadline         string         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Visibility       string         `bson:"visibility,omitempty" json:"visibility,omitempty"`
	Status           QuestStatus    `bson:"status" json:"status"`
	CreatedAt        string         `bson:"created_at" json:"created_at"`
	UpdatedAt        string         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	SpentLogs        []TimeLogEntry `bson:"spent_logs,omitempty" json:"spent_logs,omitempty"`
}

// TimeLogEntry records minutes spent on a quest on a given day.
// SpentMinutes may be zero or negative (corrections); only strictly
// positive entries count as activity.
type TimeLogEntry struct {
	SpentAt      string `bson:"spent_at" json:"spent_at"`
	SpentMinutes int    `bson:"spent_minutes" json:"spent_minutes"`
}

// SubjectOrUnknown returns the quest subject, defaulting to "Unknown"
// when no subject was assigned.
func (q *Quest) SubjectOrUnknown() string {
	if q.Subject == "" {
		return "Unknown"
	}
	return q.Subject
}
