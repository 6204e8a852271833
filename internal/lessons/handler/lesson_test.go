package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aulario/internal/lessons/service"
	"aulario/pkg/logger"
	"aulario/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock services for testing
type mockLessonService struct {
	createFunc func(ctx context.Context, lesson *model.Lesson) error
}

func (m *mockLessonService) Create(ctx context.Context, lesson *model.Lesson) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, lesson)
	}
	return nil
}

func (m *mockLessonService) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	return nil, nil
}

func (m *mockLessonService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Lesson, int64, error) {
	return []*model.Lesson{}, 0, nil
}

func (m *mockLessonService) Update(ctx context.Context, id string, updates *model.LessonUpdate) error {
	return nil
}

func (m *mockLessonService) Delete(ctx context.Context, id string) error {
	return nil
}

type mockPlannerService struct {
	conflictsFunc    func(ctx context.Context, query *service.SlotQuery) ([]*model.Lesson, error)
	weekOverviewFunc func(ctx context.Context, query *service.WeekQuery) (*service.WeekOverview, error)
}

func (m *mockPlannerService) Conflicts(ctx context.Context, query *service.SlotQuery) ([]*model.Lesson, error) {
	if m.conflictsFunc != nil {
		return m.conflictsFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockPlannerService) AvailableClassrooms(ctx context.Context, query *service.SlotQuery) ([]*model.Classroom, error) {
	return nil, nil
}

func (m *mockPlannerService) WeekOverview(ctx context.Context, query *service.WeekQuery) (*service.WeekOverview, error) {
	if m.weekOverviewFunc != nil {
		return m.weekOverviewFunc(ctx, query)
	}
	return &service.WeekOverview{}, nil
}

func newTestHandler(planner service.PlannerService) *LessonHandler {
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "handler-test"})
	return NewLessonHandler(&mockLessonService{}, planner, log)
}

func TestConflictsRequiresDateAndStartTime(t *testing.T) {
	h := newTestHandler(&mockPlannerService{
		conflictsFunc: func(ctx context.Context, query *service.SlotQuery) ([]*model.Lesson, error) {
			t.Fatal("planner must not be reached without date and start_time")
			return nil, nil
		},
	})

	tests := []string{
		"?classroom_id=507f1f77bcf86cd799439011",
		"?classroom_id=507f1f77bcf86cd799439011&date=2026-03-02",
		"?classroom_id=507f1f77bcf86cd799439011&start_time=09:00",
	}
	for _, qs := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/conflicts"+qs, nil)
		w := httptest.NewRecorder()

		h.Conflicts(w, req, httprouter.Params{})

		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", qs, w.Code)
		}
	}
}

func TestConflictsPassesQueryThrough(t *testing.T) {
	var received *service.SlotQuery
	h := newTestHandler(&mockPlannerService{
		conflictsFunc: func(ctx context.Context, query *service.SlotQuery) ([]*model.Lesson, error) {
			received = query
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/lessons/conflicts?classroom_id=507f1f77bcf86cd799439011&date=2026-03-02&start_time=09:00&end_time=10:30&exclude_lesson_id=507f1f77bcf86cd799439022",
		nil)
	w := httptest.NewRecorder()

	h.Conflicts(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if received == nil {
		t.Fatal("planner was not called")
	}
	if received.ClassroomID != "507f1f77bcf86cd799439011" ||
		received.Date != "2026-03-02" ||
		received.StartTime != "09:00" ||
		received.EndTime != "10:30" ||
		received.ExcludeLessonID != "507f1f77bcf86cd799439022" {
		t.Errorf("query = %+v, want all parameters passed through", received)
	}

	var body struct {
		Data struct {
			Schedulable bool `json:"schedulable"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Data.Schedulable {
		t.Error("schedulable = false, want true when no conflicts found")
	}
}

func TestWeekHourOverrides(t *testing.T) {
	var received *service.WeekQuery
	h := newTestHandler(&mockPlannerService{
		weekOverviewFunc: func(ctx context.Context, query *service.WeekQuery) (*service.WeekOverview, error) {
			received = query
			return &service.WeekOverview{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/week?date=2026-03-04&from_hour=10&to_hour=12", nil)
	w := httptest.NewRecorder()
	h.Week(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if received == nil || received.Date != "2026-03-04" || received.FromHour != 10 || received.ToHour != 12 {
		t.Errorf("query = %+v, want date and both hour overrides passed through", received)
	}

	// Absent hours stay unset so the configured grid range applies.
	received = nil
	req = httptest.NewRequest(http.MethodGet, "/api/v1/lessons/week?date=2026-03-04", nil)
	h.Week(httptest.NewRecorder(), req, httprouter.Params{})
	if received == nil || received.FromHour != -1 || received.ToHour != -1 {
		t.Errorf("query = %+v, want -1 sentinels for absent hour parameters", received)
	}
}

func TestWeekRejectsBadHourParam(t *testing.T) {
	h := newTestHandler(&mockPlannerService{
		weekOverviewFunc: func(ctx context.Context, query *service.WeekQuery) (*service.WeekOverview, error) {
			t.Fatal("planner must not be reached with a malformed hour")
			return nil, nil
		},
	})

	for _, qs := range []string{"?date=2026-03-04&from_hour=morning", "?date=2026-03-04&to_hour=24"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/week"+qs, nil)
		w := httptest.NewRecorder()
		h.Week(w, req, httprouter.Params{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", qs, w.Code)
		}
	}
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	h := newTestHandler(&mockPlannerService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lessons", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
