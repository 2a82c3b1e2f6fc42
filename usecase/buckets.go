package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/Effortree/backend/utils"
)

// Mode selects the bucket granularity for the trailing analytics window.
type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
)

// ErrInvalidMode is returned for any mode outside daily/weekly/monthly.
var ErrInvalidMode = errors.New("Invalid mode")

// BucketCount is the fixed width of every trailing window.
const BucketCount = 10

// Bucket is one calendar-aligned aggregation window. Start and End are
// inclusive UTC calendar dates; End doubles as the kanban evaluation
// instant for the bucket.
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date d falls inside the bucket.
func (b Bucket) Contains(d time.Time) bool {
	return !d.Before(b.Start) && !d.After(b.End)
}

// BuildBuckets produces exactly BucketCount contiguous buckets, oldest
// first, with the last bucket's range containing the anchor date.
// Weekly buckets are ISO 8601 Monday-start weeks labelled by ISO
// year-week; monthly buckets span whole calendar months.
func BuildBuckets(mode Mode, anchor time.Time) ([]Bucket, error) {
	anchor = utils.Midnight(anchor)

	switch mode {
	case ModeDaily:
		return buildDailyBuckets(anchor), nil
	case ModeWeekly:
		return buildWeeklyBuckets(anchor), nil
	case ModeMonthly:
		return buildMonthlyBuckets(anchor), nil
	}
	return nil, ErrInvalidMode
}

func buildDailyBuckets(anchor time.Time) []Bucket {
	buckets := make([]Bucket, 0, BucketCount)
	for i := BucketCount - 1; i >= 0; i-- {
		d := anchor.AddDate(0, 0, -i)
		buckets = append(buckets, Bucket{
			Label: utils.FormatDate(d),
			Start: d,
			End:   d,
		})
	}
	return buckets
}

func buildWeeklyBuckets(anchor time.Time) []Bucket {
	// Monday of the anchor's week. time.Weekday has Sunday == 0.
	back := (int(anchor.Weekday()) + 6) % 7
	monday := anchor.AddDate(0, 0, -back)

	buckets := make([]Bucket, 0, BucketCount)
	for i := BucketCount - 1; i >= 0; i-- {
		start := monday.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 6)
		buckets = append(buckets, Bucket{
			Label: isoWeekLabel(start),
			Start: start,
			End:   end,
		})
	}
	return buckets
}

func buildMonthlyBuckets(anchor time.Time) []Bucket {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]Bucket, 0, BucketCount)
	for i := BucketCount - 1; i >= 0; i-- {
		start := first.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, -1)
		buckets = append(buckets, Bucket{
			Label: start.Format("2006-01"),
			Start: start,
			End:   end,
		})
	}
	return buckets
}

// isoWeekLabel formats d as "GGGG-Www". The ISO year can differ from the
// calendar year near January 1st, so the label comes from ISOWeek, not
// from d.Year().
func isoWeekLabel(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
