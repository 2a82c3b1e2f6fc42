package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare date", "2024-01-05", "2024-01-05", true},
		{"rfc3339 utc", "2024-01-05T09:30:00Z", "2024-01-05", true},
		{"rfc3339 offset", "2024-01-05T23:30:00+09:00", "2024-01-05", true},
		{"naive timestamp", "2024-01-05T09:30:00", "2024-01-05", true},
		{"timestamp with trailing junk", "2024-01-05 morning", "2024-01-05", true},
		{"empty", "", "", false},
		{"garbage", "not-a-date", "", false},
		{"bad month", "2024-13-05", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("ParseDate(%q) not truncated to midnight: %v", tt.input, got)
			}
		})
	}
}

// An offset timestamp is normalized to UTC before truncation, so a
// late-evening local time can land on the previous or next UTC day.
func TestParseDateOffsetNormalizesToUTC(t *testing.T) {
	got, ok := ParseDate("2024-01-06T02:30:00+09:00")
	if !ok {
		t.Fatal("expected ok")
	}
	if FormatDate(got) != "2024-01-05" {
		t.Errorf("got %s, want 2024-01-05 (UTC day)", FormatDate(got))
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, time.February, 29, 18, 45, 12, 999, time.UTC)
	got := Midnight(in)
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight(%v) = %v, want %v", in, got, want)
	}
}

func TestDatePrefix(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"2024-01-05T09:30:00Z", "2024-01-05"},
		{"2024-01-05", "2024-01-05"},
		{" short ", "short"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DatePrefix(tt.input); got != tt.want {
			t.Errorf("DatePrefix(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
