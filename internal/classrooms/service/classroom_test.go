package service

import (
	"context"
	"testing"

	classroomserrors "aulario/internal/classrooms/errors"
	"aulario/internal/classrooms/validator"
	"aulario/pkg/config"
	mongotx "aulario/pkg/db/mongo"
	apperrors "aulario/pkg/errors"
	"aulario/pkg/logger"
	"aulario/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockClassroomRepository struct {
	createFunc     func(ctx context.Context, classroom *model.Classroom) error
	findByIDFunc   func(ctx context.Context, id string) (*model.Classroom, error)
	findByCodeFunc func(ctx context.Context, code string) (*model.Classroom, error)
	findAllFunc    func(ctx context.Context, limit int, offset int64) ([]*model.Classroom, error)
	countFunc      func(ctx context.Context) (int64, error)
}

func (m *mockClassroomRepository) Create(ctx context.Context, classroom *model.Classroom) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, classroom)
	}
	return nil
}

func (m *mockClassroomRepository) FindByID(ctx context.Context, id string) (*model.Classroom, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, classroomserrors.ErrNotFound
}

func (m *mockClassroomRepository) FindByCode(ctx context.Context, code string) (*model.Classroom, error) {
	if m.findByCodeFunc != nil {
		return m.findByCodeFunc(ctx, code)
	}
	return nil, classroomserrors.ErrNotFound
}

func (m *mockClassroomRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Classroom{}, nil
}

func (m *mockClassroomRepository) FindAllActive(ctx context.Context) ([]*model.Classroom, error) {
	return []*model.Classroom{}, nil
}

func (m *mockClassroomRepository) Update(ctx context.Context, id string, classroom *model.Classroom) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockClassroomRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockClassroomRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockClassroomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService(repo *mockClassroomRepository) ClassroomService {
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "classrooms-test"})
	cfg := &config.Config{Log: log}
	return NewClassroomService(repo, validator.NewClassroomValidator(log), cfg)
}

func TestCreateClassroomNormalizesCode(t *testing.T) {
	var created *model.Classroom
	repo := &mockClassroomRepository{
		createFunc: func(ctx context.Context, classroom *model.Classroom) error {
			created = classroom
			classroom.ID = "507f1f77bcf86cd799439011"
			return nil
		},
	}
	svc := newTestService(repo)

	classroom := &model.Classroom{Name: "  Aula   Magna ", Code: "Aula B-12"}
	if err := svc.Create(context.Background(), classroom); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("repository Create was not called")
	}
	if created.Code != "AULA-B-12" {
		t.Errorf("code = %q, want normalized AULA-B-12", created.Code)
	}
	if created.Name != "Aula Magna" {
		t.Errorf("name = %q, want normalized Aula Magna", created.Name)
	}
	if !created.Active {
		t.Error("new classrooms should be bookable by default")
	}
}

func TestCreateClassroomDuplicateCode(t *testing.T) {
	repo := &mockClassroomRepository{
		findByCodeFunc: func(ctx context.Context, code string) (*model.Classroom, error) {
			return &model.Classroom{ID: "507f1f77bcf86cd799439011", Code: code}, nil
		},
		createFunc: func(ctx context.Context, classroom *model.Classroom) error {
			t.Fatal("Create must not be reached for a duplicate code")
			return nil
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), &model.Classroom{Name: "Aula Magna", Code: "AULA-1"})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("err = %v, want conflict for duplicate code", err)
	}
}

func TestCreateClassroomValidation(t *testing.T) {
	svc := newTestService(&mockClassroomRepository{})

	err := svc.Create(context.Background(), &model.Classroom{Name: "A"})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("err = %v, want validation error for a one-letter name", err)
	}
}

func TestGetClassroomByIDNotFound(t *testing.T) {
	svc := newTestService(&mockClassroomRepository{})

	_, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439011")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateClassroomCodeCollision(t *testing.T) {
	existing := &model.Classroom{
		ID:     "507f1f77bcf86cd799439011",
		Name:   "Aula Magna",
		Code:   "AULA-1",
		Active: true,
	}
	repo := &mockClassroomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Classroom, error) {
			return existing, nil
		},
		findByCodeFunc: func(ctx context.Context, code string) (*model.Classroom, error) {
			return &model.Classroom{ID: "507f1f77bcf86cd799439022", Code: code}, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), existing.ID, &model.ClassroomUpdate{Code: "AULA-2"})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("err = %v, want conflict when another room owns the code", err)
	}
}
