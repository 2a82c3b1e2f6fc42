package usecase

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildBucketsInvariants(t *testing.T) {
	anchors := []time.Time{
		date(2024, time.January, 10),
		date(2024, time.February, 29),
		date(2024, time.December, 31),
		date(2025, time.January, 1),
		date(2025, time.June, 15),
	}

	for _, mode := range []Mode{ModeDaily, ModeWeekly, ModeMonthly} {
		for _, anchor := range anchors {
			buckets, err := BuildBuckets(mode, anchor)
			if err != nil {
				t.Fatalf("BuildBuckets(%s, %s): %v", mode, anchor, err)
			}
			if len(buckets) != BucketCount {
				t.Fatalf("%s/%s: got %d buckets, want %d", mode, anchor, len(buckets), BucketCount)
			}

			for i, b := range buckets {
				if b.End.Before(b.Start) {
					t.Errorf("%s/%s bucket %d: end %s before start %s", mode, anchor, i, b.End, b.Start)
				}
				if i > 0 {
					prev := buckets[i-1]
					if !b.Start.Equal(prev.End.AddDate(0, 0, 1)) {
						t.Errorf("%s/%s: bucket %d not contiguous: prev end %s, start %s",
							mode, anchor, i, prev.End, b.Start)
					}
				}
			}

			last := buckets[len(buckets)-1]
			if !last.Contains(anchor) {
				t.Errorf("%s/%s: last bucket [%s, %s] does not contain anchor",
					mode, anchor, last.Start, last.End)
			}
		}
	}
}

func TestBuildBucketsDaily(t *testing.T) {
	buckets, err := BuildBuckets(ModeDaily, date(2024, time.January, 10))
	if err != nil {
		t.Fatal(err)
	}

	if got := buckets[0].Label; got != "2024-01-01" {
		t.Errorf("first label = %q, want 2024-01-01", got)
	}
	if got := buckets[9].Label; got != "2024-01-10" {
		t.Errorf("last label = %q, want 2024-01-10", got)
	}
	for _, b := range buckets {
		if !b.Start.Equal(b.End) {
			t.Errorf("daily bucket %s spans more than one day", b.Label)
		}
	}
}

func TestBuildBucketsWeekly(t *testing.T) {
	// 2024-01-10 is a Wednesday; its ISO week is 2024-W02,
	// Monday 2024-01-08 through Sunday 2024-01-14.
	buckets, err := BuildBuckets(ModeWeekly, date(2024, time.January, 10))
	if err != nil {
		t.Fatal(err)
	}

	last := buckets[9]
	if last.Label != "2024-W02" {
		t.Errorf("last label = %q, want 2024-W02", last.Label)
	}
	if !last.Start.Equal(date(2024, time.January, 8)) {
		t.Errorf("last start = %s, want 2024-01-08", last.Start)
	}
	if !last.End.Equal(date(2024, time.January, 14)) {
		t.Errorf("last end = %s, want 2024-01-14", last.End)
	}
	if last.Start.Weekday() != time.Monday {
		t.Errorf("weekly bucket does not start on Monday")
	}
}

func TestBuildBucketsWeeklyISOYearBoundary(t *testing.T) {
	// 2024-12-31 is a Tuesday inside ISO week 2025-W01; the label must
	// carry the ISO year, not the calendar year.
	buckets, err := BuildBuckets(ModeWeekly, date(2024, time.December, 31))
	if err != nil {
		t.Fatal(err)
	}

	if got := buckets[9].Label; got != "2025-W01" {
		t.Errorf("last label = %q, want 2025-W01", got)
	}
	if !buckets[9].Start.Equal(date(2024, time.December, 30)) {
		t.Errorf("last start = %s, want 2024-12-30", buckets[9].Start)
	}
}

func TestBuildBucketsMonthly(t *testing.T) {
	buckets, err := BuildBuckets(ModeMonthly, date(2024, time.March, 15))
	if err != nil {
		t.Fatal(err)
	}

	if got := buckets[0].Label; got != "2023-06" {
		t.Errorf("first label = %q, want 2023-06", got)
	}
	if got := buckets[9].Label; got != "2024-03" {
		t.Errorf("last label = %q, want 2024-03", got)
	}

	// February 2024 is a leap month.
	feb := buckets[8]
	if feb.Label != "2024-02" {
		t.Fatalf("bucket 8 label = %q, want 2024-02", feb.Label)
	}
	if !feb.End.Equal(date(2024, time.February, 29)) {
		t.Errorf("feb end = %s, want 2024-02-29", feb.End)
	}
}

func TestBuildBucketsInvalidMode(t *testing.T) {
	if _, err := BuildBuckets(Mode("hourly"), date(2024, time.January, 1)); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("got %v, want ErrInvalidMode", err)
	}
	if _, err := BuildBuckets(Mode(""), date(2024, time.January, 1)); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("got %v, want ErrInvalidMode", err)
	}
}
