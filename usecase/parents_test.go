package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Effortree/backend/model"
	"github.com/Effortree/backend/utils"
)

// questWithActiveDays builds one quest with a positive log on each of
// the given offsets (days before today).
func questWithActiveDays(today time.Time, offsets ...int) *model.Quest {
	q := &model.Quest{QuestID: 1, Status: model.StatusActive, CreatedAt: "2023-01-01"}
	for _, off := range offsets {
		q.SpentLogs = append(q.SpentLogs, model.TimeLogEntry{
			SpentAt:      utils.FormatDate(today.AddDate(0, 0, -off)),
			SpentMinutes: 30,
		})
	}
	return q
}

func TestExtractParentSignals(t *testing.T) {
	today := date(2024, time.March, 15)

	tests := []struct {
		name    string
		offsets []int
		want    ParentSignals
	}{
		{
			name: "no activity",
			want: ParentSignals{"paused", "unclear", "wait"},
		},
		{
			name:    "eight distinct days is steady",
			offsets: []int{0, 1, 2, 3, 4, 5, 6, 7},
			want:    ParentSignals{"steady", "stable", "wait"},
		},
		{
			name:    "three days is uneven",
			offsets: []int{1, 4, 9},
			want:    ParentSignals{"uneven", "recovering", "gentle_support"},
		},
		{
			name:    "seven days still uneven",
			offsets: []int{0, 1, 2, 3, 4, 5, 6},
			want:    ParentSignals{"uneven", "recovering", "gentle_support"},
		},
		{
			name:    "one or two days is slowing",
			offsets: []int{2, 10},
			want:    ParentSignals{"slowing", "slowing", "attention"},
		},
		{
			name:    "activity outside the rolling window does not count",
			offsets: []int{20, 30, 40},
			want:    ParentSignals{"paused", "unclear", "wait"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var quests []*model.Quest
			if len(tt.offsets) > 0 {
				quests = append(quests, questWithActiveDays(today, tt.offsets...))
			}
			svc := newTestService(quests, today)

			got, err := svc.ExtractParentSignals(context.Background(), 1)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("signals = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Multiple logs on the same calendar day count as one active day.
func TestExtractParentSignalsDistinctDays(t *testing.T) {
	today := date(2024, time.March, 15)
	q := &model.Quest{QuestID: 1, Status: model.StatusActive, CreatedAt: "2023-01-01"}
	for i := 0; i < 10; i++ {
		q.SpentLogs = append(q.SpentLogs, model.TimeLogEntry{
			SpentAt:      "2024-03-14",
			SpentMinutes: 15,
		})
	}

	got, err := newTestService([]*model.Quest{q}, today).ExtractParentSignals(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	want := ParentSignals{"slowing", "slowing", "attention"}
	if got != want {
		t.Errorf("signals = %+v, want %+v", got, want)
	}
}

func TestBuildNarrativeFeatures(t *testing.T) {
	tests := []struct {
		signals ParentSignals
		first   string
		last    string
	}{
		{
			signals: ParentSignals{"steady", "stable", "wait"},
			first:   "The recent period shows a generally steady flow of engagement",
			last:    "Providing space for the student's natural rhythm is advised",
		},
		{
			signals: ParentSignals{"uneven", "recovering", "gentle_support"},
			first:   "The recent period shows some variation rather than a consistent rhythm",
			last:    "A supportive and low-pressure approach is currently most effective",
		},
		{
			signals: ParentSignals{"slowing", "slowing", "attention"},
			first:   "The recent period suggests a gradual slowing of momentum",
			last:    "The current rhythm suggests a need for gentle reconnection",
		},
		{
			signals: ParentSignals{"paused", "unclear", "wait"},
			first:   "The recent period appears quieter than usual",
			last:    "Providing space for the student's natural rhythm is advised",
		},
	}

	for _, tt := range tests {
		t.Run(tt.signals.EngagementFlow, func(t *testing.T) {
			features := BuildNarrativeFeatures(tt.signals)
			if len(features) != 4 {
				t.Fatalf("got %d features, want 4", len(features))
			}
			if features[0] != tt.first {
				t.Errorf("first feature = %q, want %q", features[0], tt.first)
			}
			if features[3] != tt.last {
				t.Errorf("last feature = %q, want %q", features[3], tt.last)
			}
		})
	}
}

// Narrative sentences must never leak quantitative detail.
func TestNarrativeFeaturesContainNoDigits(t *testing.T) {
	for _, signals := range []ParentSignals{
		{"steady", "stable", "wait"},
		{"uneven", "recovering", "gentle_support"},
		{"slowing", "slowing", "attention"},
		{"paused", "unclear", "wait"},
	} {
		for _, f := range BuildNarrativeFeatures(signals) {
			if strings.ContainsAny(f, "0123456789") {
				t.Errorf("feature contains a digit: %q", f)
			}
		}
	}
}

func TestBuildTutorHistory(t *testing.T) {
	msg := func(role, content string) *model.ChatMessage {
		return &model.ChatMessage{Role: role, Content: content}
	}

	t.Run("empty", func(t *testing.T) {
		if got := BuildTutorHistory(nil); got != "No prior conversation." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("roles rendered as labels", func(t *testing.T) {
		got := BuildTutorHistory([]*model.ChatMessage{
			msg(model.RoleUser, "what is a fraction?"),
			msg(model.RoleAssistant, "a part of a whole"),
		})
		want := "User: what is a fraction?\nAssistant: a part of a whole"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps only the last six messages", func(t *testing.T) {
		var messages []*model.ChatMessage
		for i := 0; i < 10; i++ {
			messages = append(messages, msg(model.RoleUser, fmt.Sprintf("m%d", i)))
		}
		got := BuildTutorHistory(messages)
		if strings.Contains(got, "m3") {
			t.Errorf("history kept a message older than the last six: %q", got)
		}
		if !strings.Contains(got, "m4") || !strings.Contains(got, "m9") {
			t.Errorf("history missing expected messages: %q", got)
		}
	})

	t.Run("character cap", func(t *testing.T) {
		long := strings.Repeat("x", 600)
		got := BuildTutorHistory([]*model.ChatMessage{
			msg(model.RoleUser, long),
			msg(model.RoleAssistant, long),
		})
		if strings.Count(got, "\n") != 0 {
			t.Errorf("second message should have been dropped by the character cap")
		}
	})
}
