package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Effortree/backend/model"
	"github.com/Effortree/backend/usecase"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubQuestSource struct {
	quests []*model.Quest
	err    error
}

func (s *stubQuestSource) FindQuestsByUser(ctx context.Context, userID int) ([]*model.Quest, error) {
	return s.quests, s.err
}

func analyticsRouter(quests []*model.Quest) *gin.Engine {
	now := func() time.Time {
		return time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	}
	h := NewAnalyticsHandler(usecase.NewAnalyticsServiceWithClock(&stubQuestSource{quests: quests}, now))

	router := gin.New()
	router.GET("/analytics/summary", h.GetSummary)
	router.GET("/analytics/plan-vs-actual", h.GetPlanVsActual)
	router.GET("/analytics/subjects", h.GetSubjects)
	router.GET("/analytics/streak", h.GetStreak)
	router.GET("/analytics/kanban", h.GetKanban)
	router.GET("/analytics/daily-actual", h.GetDailyActualLongRange)
	return router
}

func doGet(t *testing.T, router *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyticsMissingUserID(t *testing.T) {
	router := analyticsRouter(nil)
	for _, url := range []string{
		"/analytics/summary",
		"/analytics/plan-vs-actual",
		"/analytics/subjects",
		"/analytics/streak",
		"/analytics/kanban",
		"/analytics/daily-actual",
		"/analytics/summary?userId=abc",
	} {
		w := doGet(t, router, url)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", url, w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: %v", url, err)
		}
		if body["error"] != "Missing or invalid userId" {
			t.Errorf("%s: error = %q", url, body["error"])
		}
	}
}

func TestAnalyticsInvalidMode(t *testing.T) {
	router := analyticsRouter(nil)
	w := doGet(t, router, "/analytics/summary?userId=1&mode=yearly")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Invalid mode" {
		t.Errorf("error = %q, want Invalid mode", body["error"])
	}
}

func TestGetSummaryShape(t *testing.T) {
	quests := []*model.Quest{{
		QuestID:          1,
		Status:           model.StatusActive,
		CreatedAt:        "2024-01-01",
		Deadline:         "2024-01-05",
		SuggestedMinutes: 60,
		SpentLogs:        []model.TimeLogEntry{{SpentAt: "2024-01-03", SpentMinutes: 30}},
	}}
	w := doGet(t, analyticsRouter(quests), "/analytics/summary?userId=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		TotalActualMinutes  int `json:"total_actual_minutes"`
		TotalPlannedMinutes int `json:"total_planned_minutes"`
		AchievementRate     int `json:"achievement_rate"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.TotalActualMinutes != 30 || body.TotalPlannedMinutes != 60 || body.AchievementRate != 50 {
		t.Errorf("body = %+v, want 30/60/50", body)
	}
}

func TestGetPlanVsActualShape(t *testing.T) {
	w := doGet(t, analyticsRouter(nil), "/analytics/plan-vs-actual?userId=1&mode=daily")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var rows []struct {
		Bucket      string `json:"bucket"`
		Actual      int    `json:"actual"`
		Planned     int    `json:"planned"`
		Achievement int    `json:"achievement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	if rows[0].Bucket != "2024-01-01" || rows[9].Bucket != "2024-01-10" {
		t.Errorf("bucket range %s..%s, want 2024-01-01..2024-01-10", rows[0].Bucket, rows[9].Bucket)
	}
}

func TestGetStreakShape(t *testing.T) {
	quests := []*model.Quest{{
		QuestID:   1,
		Status:    model.StatusActive,
		CreatedAt: "2024-01-01",
		SpentLogs: []model.TimeLogEntry{
			{SpentAt: "2024-01-10", SpentMinutes: 20},
			{SpentAt: "2024-01-09", SpentMinutes: 20},
		},
	}}
	w := doGet(t, analyticsRouter(quests), "/analytics/streak?userId=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["streak_days"] != 2 {
		t.Errorf("streak_days = %d, want 2", body["streak_days"])
	}
}

func TestGetKanbanDateParam(t *testing.T) {
	router := analyticsRouter(nil)

	w := doGet(t, router, "/analytics/kanban?userId=1&date=not-a-date")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Invalid date" {
		t.Errorf("error = %q, want Invalid date", body["error"])
	}

	w = doGet(t, router, "/analytics/kanban?userId=1&mode=weekly&date=2024-01-10")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var report struct {
		Mode    string `json:"mode"`
		Buckets []struct {
			Bucket  string `json:"bucket"`
			Prepare int    `json:"prepare"`
			Active  int    `json:"active"`
			Done    int    `json:"done"`
		} `json:"buckets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Mode != "weekly" || len(report.Buckets) != 10 {
		t.Errorf("mode=%s buckets=%d, want weekly/10", report.Mode, len(report.Buckets))
	}
	if report.Buckets[9].Bucket != "2024-W02" {
		t.Errorf("last bucket = %s, want 2024-W02", report.Buckets[9].Bucket)
	}
}

func TestGetDailyActualLongRangeShape(t *testing.T) {
	w := doGet(t, analyticsRouter(nil), "/analytics/daily-actual?userId=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var series []struct {
		Date          string `json:"date"`
		ActualMinutes int    `json:"actual_minutes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &series); err != nil {
		t.Fatal(err)
	}
	if len(series) != 308 {
		t.Errorf("got %d entries, want 308", len(series))
	}
	if series[len(series)-1].Date != "2024-01-10" {
		t.Errorf("last date = %s, want 2024-01-10", series[len(series)-1].Date)
	}
}

func TestAnalyticsStoreFailure(t *testing.T) {
	now := func() time.Time {
		return time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	}
	h := NewAnalyticsHandler(usecase.NewAnalyticsServiceWithClock(
		&stubQuestSource{err: context.DeadlineExceeded}, now))
	router := gin.New()
	router.GET("/analytics/summary", h.GetSummary)

	w := doGet(t, router, "/analytics/summary?userId=1")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
}
