package service

import (
	"context"
	"testing"
	"time"

	"aulario/internal/engine"
	lessonserrors "aulario/internal/lessons/errors"
	"aulario/internal/lessons/validator"
	"aulario/pkg/config"
	mongotx "aulario/pkg/db/mongo"
	apperrors "aulario/pkg/errors"
	"aulario/pkg/logger"
	"aulario/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testClassroomID = "507f1f77bcf86cd799439011"
	testLessonID    = "507f1f77bcf86cd799439022"
	otherLessonID   = "507f1f77bcf86cd799439033"
)

type mockLessonRepo struct {
	createFn                 func(ctx context.Context, lesson *model.Lesson) error
	findByIDFn               func(ctx context.Context, id string) (*model.Lesson, error)
	findAllFn                func(ctx context.Context, limit int, offset int64) ([]*model.Lesson, error)
	updateFn                 func(ctx context.Context, id string, lesson *model.Lesson) (*mongo.UpdateResult, error)
	deleteFn                 func(ctx context.Context, id string) error
	findByClassroomAndDateFn func(ctx context.Context, classroomID, date string) ([]*model.Lesson, error)
	findByDateRangeFn        func(ctx context.Context, fromDate, toDate string) ([]*model.Lesson, error)
	countFn                  func(ctx context.Context) (int64, error)
}

func (m *mockLessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return m.createFn(ctx, lesson)
}

func (m *mockLessonRepo) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockLessonRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Lesson, error) {
	return m.findAllFn(ctx, limit, offset)
}

func (m *mockLessonRepo) Update(ctx context.Context, id string, lesson *model.Lesson) (*mongo.UpdateResult, error) {
	return m.updateFn(ctx, id, lesson)
}

func (m *mockLessonRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockLessonRepo) FindByClassroomAndDate(ctx context.Context, classroomID, date string) ([]*model.Lesson, error) {
	return m.findByClassroomAndDateFn(ctx, classroomID, date)
}

func (m *mockLessonRepo) FindByDateRange(ctx context.Context, fromDate, toDate string) ([]*model.Lesson, error) {
	return m.findByDateRangeFn(ctx, fromDate, toDate)
}

func (m *mockLessonRepo) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

func (m *mockLessonRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepo struct {
	createFn func(ctx context.Context, lock *model.LessonLock) (*model.LessonLock, error)
	deleteFn func(ctx context.Context, lockID string) error
}

func (m *mockLockRepo) Create(ctx context.Context, lock *model.LessonLock) (*model.LessonLock, error) {
	if m.createFn != nil {
		return m.createFn(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepo) Delete(ctx context.Context, lockID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, lockID)
	}
	return nil
}

type mockClassrooms struct {
	findByIDFn      func(ctx context.Context, id string) (*model.Classroom, error)
	findAllActiveFn func(ctx context.Context) ([]*model.Classroom, error)
}

func (m *mockClassrooms) FindByID(ctx context.Context, id string) (*model.Classroom, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &model.Classroom{ID: id, Name: "Aula Magna", Active: true}, nil
}

func (m *mockClassrooms) FindAllActive(ctx context.Context) ([]*model.Classroom, error) {
	if m.findAllActiveFn != nil {
		return m.findAllActiveFn(ctx)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "lessons-test"}),
	}
}

func newTestService(repo *mockLessonRepo, classrooms ClassroomDirectory) LessonService {
	cfg := testConfig()
	return NewLessonService(
		repo,
		&mockLockRepo{},
		classrooms,
		validator.NewLessonValidator(cfg.Log),
		engine.New(60*time.Minute),
		nil,
		cfg,
	)
}

func validLesson() *model.Lesson {
	return &model.Lesson{
		Name:        "Linear Algebra",
		ClassroomID: testClassroomID,
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "10:30",
	}
}

func TestCreateLesson(t *testing.T) {
	created := false
	repo := &mockLessonRepo{
		createFn: func(ctx context.Context, lesson *model.Lesson) error {
			created = true
			lesson.ID = testLessonID
			return nil
		},
		findByClassroomAndDateFn: func(ctx context.Context, classroomID, date string) ([]*model.Lesson, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	lesson := validLesson()
	if err := svc.Create(context.Background(), lesson); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("repository Create was not called")
	}
	if lesson.Status != model.StatusScheduled {
		t.Errorf("status = %q, want default %q", lesson.Status, model.StatusScheduled)
	}
}

func TestCreateLessonConflict(t *testing.T) {
	repo := &mockLessonRepo{
		createFn: func(ctx context.Context, lesson *model.Lesson) error {
			t.Fatal("Create must not be reached when the slot conflicts")
			return nil
		},
		findByClassroomAndDateFn: func(ctx context.Context, classroomID, date string) ([]*model.Lesson, error) {
			return []*model.Lesson{
				{ID: otherLessonID, Name: "Physics", ClassroomID: testClassroomID, Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00"},
			}, nil
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	err := svc.Create(context.Background(), validLesson())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("err = %v, want conflict error", err)
	}
	if appErr.Details == nil {
		t.Error("conflict error should carry the conflicting lessons in details")
	}
}

func TestCreateLessonBackToBackSlotAllowed(t *testing.T) {
	repo := &mockLessonRepo{
		createFn: func(ctx context.Context, lesson *model.Lesson) error { return nil },
		findByClassroomAndDateFn: func(ctx context.Context, classroomID, date string) ([]*model.Lesson, error) {
			return []*model.Lesson{
				{ID: otherLessonID, Name: "Physics", ClassroomID: testClassroomID, Date: "2026-03-02", StartTime: "10:30", EndTime: "11:30"},
			}, nil
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	if err := svc.Create(context.Background(), validLesson()); err != nil {
		t.Fatalf("lesson ending when the next begins should be schedulable, got: %v", err)
	}
}

func TestCreateLessonUnknownClassroom(t *testing.T) {
	classrooms := &mockClassrooms{
		findByIDFn: func(ctx context.Context, id string) (*model.Classroom, error) {
			return nil, apperrors.NotFoundWithID("Classroom", id)
		},
	}
	repo := &mockLessonRepo{
		createFn: func(ctx context.Context, lesson *model.Lesson) error {
			t.Fatal("Create must not be reached for an unknown classroom")
			return nil
		},
		findByClassroomAndDateFn: func(ctx context.Context, classroomID, date string) ([]*model.Lesson, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo, classrooms)

	err := svc.Create(context.Background(), validLesson())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("err = %v, want invalid input for unknown classroom", err)
	}
}

func TestCreateLessonInvalidInterval(t *testing.T) {
	repo := &mockLessonRepo{
		findByClassroomAndDateFn: func(ctx context.Context, classroomID, date string) ([]*model.Lesson, error) {
			t.Fatal("conflict check must not run for an invalid interval")
			return nil, nil
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	lesson := validLesson()
	lesson.StartTime = "11:00"
	lesson.EndTime = "10:00"
	err := svc.Create(context.Background(), lesson)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("err = %v, want validation error for end before start", err)
	}
}

func TestUpdateLessonExcludesSelf(t *testing.T) {
	stored := validLesson()
	stored.ID = testLessonID
	stored.Status = model.StatusScheduled

	repo := &mockLessonRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Lesson, error) {
			return stored, nil
		},
		findByClassroomAndDateFn: func(ctx context.Context, classroomID, date string) ([]*model.Lesson, error) {
			// The set still contains the record being edited.
			return []*model.Lesson{stored}, nil
		},
		updateFn: func(ctx context.Context, id string, lesson *model.Lesson) (*mongo.UpdateResult, error) {
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	updates := &model.LessonUpdate{StartTime: "09:30"}
	if err := svc.Update(context.Background(), testLessonID, updates); err != nil {
		t.Fatalf("editing a lesson must not conflict with its own stored record, got: %v", err)
	}
}

func TestUpdateCompletedLessonForbidden(t *testing.T) {
	stored := validLesson()
	stored.ID = testLessonID
	stored.Status = model.StatusCompleted

	repo := &mockLessonRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Lesson, error) {
			return stored, nil
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	err := svc.Update(context.Background(), testLessonID, &model.LessonUpdate{StartTime: "09:30"})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeForbidden {
		t.Fatalf("err = %v, want forbidden for completed lesson", err)
	}
}

func TestDeleteCompletedLessonForbidden(t *testing.T) {
	stored := validLesson()
	stored.ID = testLessonID
	stored.Status = model.StatusCompleted

	repo := &mockLessonRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Lesson, error) {
			return stored, nil
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	err := svc.Delete(context.Background(), testLessonID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeForbidden {
		t.Fatalf("err = %v, want forbidden for completed lesson", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &mockLessonRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Lesson, error) {
			return nil, lessonserrors.ErrNotFound
		},
	}
	svc := newTestService(repo, &mockClassrooms{})

	_, err := svc.GetByID(context.Background(), testLessonID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
