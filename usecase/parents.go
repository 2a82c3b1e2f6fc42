package usecase

import (
	"context"
	"fmt"

	"github.com/Effortree/backend/utils"
)

// rollingDays is the window the parent view interprets.
const rollingDays = 14

// ParentSignals is the qualitative reading of a child's recent
// engagement. Only these labels (never counts or dates) may cross the
// LLM boundary.
type ParentSignals struct {
	EngagementFlow string
	Direction      string
	GuidanceLevel  string
}

// ExtractParentSignals reduces the last 14 days of activity to
// qualitative signals. Thresholds are on distinct active days, not
// minutes, so a single long session counts the same as a short one.
func (s *AnalyticsService) ExtractParentSignals(ctx context.Context, userID int) (ParentSignals, error) {
	quests, err := s.quests.FindQuestsByUser(ctx, userID)
	if err != nil {
		return ParentSignals{}, fmt.Errorf("fetching quests: %w", err)
	}

	today := s.now()
	start := today.AddDate(0, 0, -rollingDays)

	activeDays := make(map[string]struct{})
	for _, q := range quests {
		for _, entry := range q.SpentLogs {
			if entry.SpentMinutes <= 0 {
				continue
			}
			d, ok := utils.ParseDate(entry.SpentAt)
			if !ok || d.Before(start) || d.After(today) {
				continue
			}
			activeDays[utils.FormatDate(d)] = struct{}{}
		}
	}

	switch n := len(activeDays); {
	case n == 0:
		return ParentSignals{"paused", "unclear", "wait"}, nil
	case n >= 8:
		return ParentSignals{"steady", "stable", "wait"}, nil
	case n >= 3:
		return ParentSignals{"uneven", "recovering", "gentle_support"}, nil
	default:
		return ParentSignals{"slowing", "slowing", "attention"}, nil
	}
}

// BuildNarrativeFeatures turns signals into the plain-language
// sentences handed to the LLM collaborator. The sentences deliberately
// contain no numbers, dates, or quest titles.
func BuildNarrativeFeatures(signals ParentSignals) []string {
	var features []string

	switch signals.EngagementFlow {
	case "steady":
		features = append(features, "The recent period shows a generally steady flow of engagement")
	case "uneven":
		features = append(features, "The recent period shows some variation rather than a consistent rhythm")
	case "slowing":
		features = append(features, "The recent period suggests a gradual slowing of momentum")
	default:
		features = append(features, "The recent period appears quieter than usual")
	}

	switch signals.Direction {
	case "recovering":
		features = append(features, "There are signs that momentum can return naturally")
	case "slowing":
		features = append(features, "The change appears gradual rather than abrupt")
	default:
		features = append(features, "No strong directional change stands out")
	}

	features = append(features, "Short pauses are treated as part of a normal learning process")

	switch signals.GuidanceLevel {
	case "gentle_support":
		features = append(features, "A supportive and low-pressure approach is currently most effective")
	case "attention":
		features = append(features, "The current rhythm suggests a need for gentle reconnection")
	case "wait":
		features = append(features, "Providing space for the student's natural rhythm is advised")
	}

	return features
}
