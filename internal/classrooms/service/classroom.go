package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	classroomserrors "aulario/internal/classrooms/errors"
	"aulario/internal/classrooms/repository"
	"aulario/internal/classrooms/validator"
	"aulario/pkg/config"
	apperrors "aulario/pkg/errors"
	"aulario/pkg/model"
	"aulario/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type ClassroomService interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id string) (*model.Classroom, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, int64, error)
	GetAllActive(ctx context.Context) ([]*model.Classroom, error)
	Update(ctx context.Context, id string, updates *model.ClassroomUpdate) error
	Delete(ctx context.Context, id string) error
}

type classroomService struct {
	repo      repository.ClassroomRepository
	validator *validator.ClassroomValidator
	cfg       *config.Config
}

func NewClassroomService(
	repo repository.ClassroomRepository,
	validator *validator.ClassroomValidator,
	cfg *config.Config,
) ClassroomService {
	return &classroomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *classroomService) Create(ctx context.Context, classroom *model.Classroom) error {
	s.sanitize(classroom)
	s.applyDefaults(classroom)

	if err := s.validator.Validate(classroom); err != nil {
		s.cfg.Log.Warn("Classroom validation failed",
			"name", classroom.Name,
			"code", classroom.Code,
			"error", err,
		)
		return apperrors.Validation("Classroom validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByCode(sessCtx, classroom.Code)
		if err != nil && !errors.Is(err, classroomserrors.ErrNotFound) {
			return fmt.Errorf("failed to check for duplicate code: %w", err)
		}
		if existing != nil {
			return apperrors.Conflict(fmt.Sprintf(
				"Classroom with code %s already exists (id: %s)",
				classroom.Code, existing.ID,
			))
		}

		if err := s.repo.Create(sessCtx, classroom); err != nil {
			if errors.Is(err, classroomserrors.ErrDuplicateCode) {
				return apperrors.Conflict(fmt.Sprintf("Classroom with code %s already exists", classroom.Code))
			}
			return fmt.Errorf("failed to create classroom: %w", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create classroom",
			"name", classroom.Name,
			"code", classroom.Code,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("Failed to create classroom", err)
	}

	s.cfg.Log.Info("Classroom created successfully",
		"id", classroom.ID,
		"name", classroom.Name,
		"code", classroom.Code,
	)
	return nil
}

func (s *classroomService) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Classroom ID cannot be empty")
	}

	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, classroomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Classroom", id)
		}
		if errors.Is(err, classroomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid classroom ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve classroom", err)
	}

	return classroom, nil
}

func (s *classroomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Classroom, int64, error) {

	var count int64
	var classrooms []*model.Classroom
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count classrooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count classrooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		classrooms, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list classrooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve classrooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return classrooms, count, nil
}

func (s *classroomService) GetAllActive(ctx context.Context) ([]*model.Classroom, error) {
	classrooms, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve active classrooms", err)
	}
	return classrooms, nil
}

func (s *classroomService) Update(ctx context.Context, id string, updates *model.ClassroomUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Classroom ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, classroomserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Classroom", id)
		}
		if errors.Is(err, classroomserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid classroom ID format")
		}
		return apperrors.Internal("Failed to check classroom existence", err)
	}

	s.sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Classroom update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeClassroomUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		return apperrors.Validation("Classroom validation failed", map[string]any{"error": err.Error()})
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if merged.Code != existing.Code {
			other, err := s.repo.FindByCode(sessCtx, merged.Code)
			if err != nil && !errors.Is(err, classroomserrors.ErrNotFound) {
				return fmt.Errorf("failed to check for duplicate code: %w", err)
			}
			if other != nil && other.ID != id {
				return apperrors.Conflict(fmt.Sprintf("Classroom with code %s already exists", merged.Code))
			}
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			if errors.Is(err, classroomserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Classroom", id)
			}
			return apperrors.Internal("Failed to update classroom", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update classroom", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Classroom updated successfully", "id", id)
	return nil
}

func (s *classroomService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Classroom ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, classroomserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Classroom", id)
			}
			if errors.Is(err, classroomserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid classroom ID format")
			}
			return apperrors.Internal("Failed to delete classroom", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Classroom deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *classroomService) sanitize(c *model.Classroom) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Code = sanitizer.SanitizeCode(c.Code)
}

func (s *classroomService) sanitizeUpdate(u *model.ClassroomUpdate) {
	if u.Name != "" {
		u.Name = sanitizer.NormalizeName(u.Name)
	}
	if u.Code != "" {
		u.Code = sanitizer.SanitizeCode(u.Code)
	}
}

func (s *classroomService) applyDefaults(c *model.Classroom) {
	if c.Code == "" {
		c.Code = sanitizer.SanitizeCode(c.Name)
	}
	c.Active = true
}

func (s *classroomService) mergeClassroomUpdates(existing *model.Classroom, updates *model.ClassroomUpdate) *model.Classroom {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Code != "" {
		merged.Code = updates.Code
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.HasProjector != nil {
		merged.HasProjector = *updates.HasProjector
	}
	if updates.HasWhiteboard != nil {
		merged.HasWhiteboard = *updates.HasWhiteboard
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	return &merged
}
