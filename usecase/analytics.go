package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Effortree/backend/dto"
	"github.com/Effortree/backend/model"
	"github.com/Effortree/backend/utils"
)

// QuestSource is the persistence port the analytics engine reads from.
// Every computation is a pure function of the snapshot it returns; the
// engine never writes and never owns connection lifecycle.
type QuestSource interface {
	FindQuestsByUser(ctx context.Context, userID int) ([]*model.Quest, error)
}

// AnalyticsService derives time-bucketed analytics from quest snapshots.
type AnalyticsService struct {
	quests QuestSource
	now    func() time.Time
}

func NewAnalyticsService(quests QuestSource) *AnalyticsService {
	return &AnalyticsService{
		quests: quests,
		now:    utils.Today,
	}
}

// NewAnalyticsServiceWithClock pins "today" for deterministic tests.
func NewAnalyticsServiceWithClock(quests QuestSource, now func() time.Time) *AnalyticsService {
	return &AnalyticsService{quests: quests, now: now}
}

// Percentage converts numerator/denominator into a truncated integer
// percent. Zero (not an error) when the denominator is zero, never
// negative. This policy applies uniformly to achievement rates and
// subject shares.
func Percentage(numerator, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	p := numerator * 100 / denominator
	if p < 0 {
		return 0
	}
	return p
}

// bucketTotals holds accumulated minutes per bucket index.
type bucketTotals struct {
	actual  []int
	planned []int
}

// aggregate folds quests and their time logs into per-bucket totals.
// Actual minutes sum every log whose date lands in the bucket, negative
// and zero entries included; planned minutes sum suggested_minutes of
// quests whose deadline lands in the bucket. Logs outside the window
// and unparsable dates are skipped silently.
func aggregate(quests []*model.Quest, buckets []Bucket) bucketTotals {
	totals := bucketTotals{
		actual:  make([]int, len(buckets)),
		planned: make([]int, len(buckets)),
	}

	for _, q := range quests {
		for _, entry := range q.SpentLogs {
			d, ok := utils.ParseDate(entry.SpentAt)
			if !ok {
				continue
			}
			if i, ok := bucketIndex(buckets, d); ok {
				totals.actual[i] += entry.SpentMinutes
			}
		}

		if q.Deadline == "" {
			continue
		}
		d, ok := utils.ParseDate(q.Deadline)
		if !ok {
			continue
		}
		if i, ok := bucketIndex(buckets, d); ok {
			totals.planned[i] += q.SuggestedMinutes
		}
	}

	return totals
}

func bucketIndex(buckets []Bucket, d time.Time) (int, bool) {
	for i, b := range buckets {
		if b.Contains(d) {
			return i, true
		}
	}
	return -1, false
}

// Summary returns window-wide actual/planned totals and the overall
// achievement rate.
func (s *AnalyticsService) Summary(ctx context.Context, userID int, mode Mode) (*dto.Summary, error) {
	buckets, err := BuildBuckets(mode, s.now())
	if err != nil {
		return nil, err
	}

	quests, err := s.quests.FindQuestsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching quests: %w", err)
	}

	totals := aggregate(quests, buckets)

	totalActual, totalPlanned := 0, 0
	for i := range buckets {
		totalActual += totals.actual[i]
		totalPlanned += totals.planned[i]
	}

	return &dto.Summary{
		TotalActualMinutes:  totalActual,
		TotalPlannedMinutes: totalPlanned,
		AchievementRate:     Percentage(totalActual, totalPlanned),
	}, nil
}

// PlanVsActual returns one comparison row per bucket, oldest first.
func (s *AnalyticsService) PlanVsActual(ctx context.Context, userID int, mode Mode) ([]dto.BucketComparison, error) {
	buckets, err := BuildBuckets(mode, s.now())
	if err != nil {
		return nil, err
	}

	quests, err := s.quests.FindQuestsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching quests: %w", err)
	}

	totals := aggregate(quests, buckets)

	rows := make([]dto.BucketComparison, 0, len(buckets))
	for i, b := range buckets {
		rows = append(rows, dto.BucketComparison{
			Bucket:      b.Label,
			Actual:      totals.actual[i],
			Planned:     totals.planned[i],
			Achievement: Percentage(totals.actual[i], totals.planned[i]),
		})
	}
	return rows, nil
}

// Subjects returns per-subject minute totals across the whole window
// plus each subject's share of the total. Quests without a subject fall
// under "Unknown". Ordered by minutes descending for stable output.
func (s *AnalyticsService) Subjects(ctx context.Context, userID int, mode Mode) ([]dto.SubjectShare, error) {
	buckets, err := BuildBuckets(mode, s.now())
	if err != nil {
		return nil, err
	}

	quests, err := s.quests.FindQuestsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching quests: %w", err)
	}

	subjectMinutes := make(map[string]int)
	for _, q := range quests {
		subject := q.SubjectOrUnknown()
		for _, entry := range q.SpentLogs {
			d, ok := utils.ParseDate(entry.SpentAt)
			if !ok {
				continue
			}
			if _, ok := bucketIndex(buckets, d); ok {
				subjectMinutes[subject] += entry.SpentMinutes
			}
		}
	}

	total := 0
	for _, m := range subjectMinutes {
		total += m
	}

	shares := make([]dto.SubjectShare, 0, len(subjectMinutes))
	for subject, minutes := range subjectMinutes {
		shares = append(shares, dto.SubjectShare{
			Subject: subject,
			Minutes: minutes,
			Share:   Percentage(minutes, total),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Minutes != shares[j].Minutes {
			return shares[i].Minutes > shares[j].Minutes
		}
		return shares[i].Subject < shares[j].Subject
	})
	return shares, nil
}

// Streak counts consecutive calendar days ending today on which the
// user logged at least one strictly positive time entry. Zero-minute
// entries never count as activity.
func (s *AnalyticsService) Streak(ctx context.Context, userID int) (int, error) {
	quests, err := s.quests.FindQuestsByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("fetching quests: %w", err)
	}

	activeDays := make(map[string]struct{})
	for _, q := range quests {
		for _, entry := range q.SpentLogs {
			if entry.SpentMinutes <= 0 {
				continue
			}
			if d, ok := utils.ParseDate(entry.SpentAt); ok {
				activeDays[utils.FormatDate(d)] = struct{}{}
			}
		}
	}

	streak := 0
	day := s.now()
	for {
		if _, ok := activeDays[utils.FormatDate(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// kanbanState is the 3-way classification of a quest as of a bucket's
// end date.
type kanbanState int

const (
	statePrepare kanbanState = iota
	stateActive
	stateDone
	stateExcluded // created after the bucket's end
)

// classifyQuest evaluates a quest's lifecycle state as of b.End.
// Done takes priority over activity detection; a done quest whose
// updated_at is missing or unparsable counts as done in every bucket
// it exists in. Activity must fall inside the bucket's own window,
// not merely before its end.
func classifyQuest(q *model.Quest, b Bucket) kanbanState {
	created, ok := utils.ParseDate(q.CreatedAt)
	if !ok || created.After(b.End) {
		return stateExcluded
	}

	if q.Status == model.StatusDone {
		updated, ok := utils.ParseDate(q.UpdatedAt)
		if !ok || !updated.After(b.End) {
			return stateDone
		}
		// Marked done after this bucket closed; fall through and
		// classify by activity instead.
	}

	for _, entry := range q.SpentLogs {
		if entry.SpentMinutes <= 0 {
			continue
		}
		if d, ok := utils.ParseDate(entry.SpentAt); ok && b.Contains(d) {
			return stateActive
		}
	}
	return statePrepare
}

// Kanban classifies every quest into prepare/active/done per bucket,
// evaluated as of each bucket's end date. Classification is recomputed
// independently per bucket, so a quest migrates across states as time
// and activity accrue.
func (s *AnalyticsService) Kanban(ctx context.Context, userID int, mode Mode, anchor time.Time) (*dto.KanbanReport, error) {
	if anchor.IsZero() {
		anchor = s.now()
	}
	buckets, err := BuildBuckets(mode, anchor)
	if err != nil {
		return nil, err
	}

	quests, err := s.quests.FindQuestsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching quests: %w", err)
	}

	report := &dto.KanbanReport{
		Mode:    string(mode),
		Buckets: make([]dto.KanbanBucket, 0, len(buckets)),
	}

	for _, b := range buckets {
		var row dto.KanbanBucket
		row.Bucket = b.Label
		for _, q := range quests {
			switch classifyQuest(q, b) {
			case stateDone:
				row.Done++
			case stateActive:
				row.Active++
			case statePrepare:
				row.Prepare++
			}
		}
		report.Buckets = append(report.Buckets, row)
	}
	return report, nil
}

// longRangeDays is the fixed span of the long-range daily series.
const longRangeDays = 308

// DailyActualLongRange returns 308 consecutive daily actual-minute
// totals ending today, oldest first. Always daily granularity; log
// dates are matched on their bare-date prefix.
func (s *AnalyticsService) DailyActualLongRange(ctx context.Context, userID int) ([]dto.DailyActual, error) {
	quests, err := s.quests.FindQuestsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching quests: %w", err)
	}

	today := s.now()
	totals := make(map[string]int, longRangeDays)
	for i := longRangeDays - 1; i >= 0; i-- {
		totals[utils.FormatDate(today.AddDate(0, 0, -i))] = 0
	}

	for _, q := range quests {
		for _, entry := range q.SpentLogs {
			key := utils.DatePrefix(entry.SpentAt)
			if _, ok := totals[key]; ok {
				totals[key] += entry.SpentMinutes
			}
		}
	}

	series := make([]dto.DailyActual, 0, longRangeDays)
	for i := longRangeDays - 1; i >= 0; i-- {
		date := utils.FormatDate(today.AddDate(0, 0, -i))
		series = append(series, dto.DailyActual{
			Date:          date,
			ActualMinutes: totals[date],
		})
	}
	return series, nil
}
