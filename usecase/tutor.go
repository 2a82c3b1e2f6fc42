package usecase

import (
	"fmt"
	"strings"

	"github.com/Effortree/backend/model"
)

const (
	historyMessageLimit = 6
	historyCharLimit    = 1000
)

// BuildTutorHistory renders the most recent exchange as plain text for
// the tutor prompt, capped at historyMessageLimit messages and
// historyCharLimit characters. Messages are expected oldest first.
func BuildTutorHistory(messages []*model.ChatMessage) string {
	if len(messages) > historyMessageLimit {
		messages = messages[len(messages)-historyMessageLimit:]
	}

	var lines []string
	total := 0
	for _, m := range messages {
		role := "Assistant"
		if m.Role == model.RoleUser {
			role = "User"
		}
		line := fmt.Sprintf("%s: %s", role, m.Content)
		if total+len(line) > historyCharLimit {
			break
		}
		lines = append(lines, line)
		total += len(line)
	}

	if len(lines) == 0 {
		return "No prior conversation."
	}
	return strings.Join(lines, "\n")
}
