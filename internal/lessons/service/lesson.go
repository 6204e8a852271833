package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	classroomserrors "aulario/internal/classrooms/errors"
	"aulario/internal/engine"
	lessonserrors "aulario/internal/lessons/errors"
	"aulario/internal/lessons/repository"
	"aulario/internal/lessons/validator"
	"aulario/pkg/config"
	apperrors "aulario/pkg/errors"
	"aulario/pkg/kafka"
	"aulario/pkg/model"
	"aulario/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	EventLessonCreated = "lesson.created"
	EventLessonUpdated = "lesson.updated"
	EventLessonDeleted = "lesson.deleted"
)

// ClassroomDirectory is the read-only view of the classroom catalog the
// lesson workflows need. The classrooms repository satisfies it.
type ClassroomDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Classroom, error)
	FindAllActive(ctx context.Context) ([]*model.Classroom, error)
}

type LessonService interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id string) (*model.Lesson, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Lesson, int64, error)
	Update(ctx context.Context, id string, updates *model.LessonUpdate) error
	Delete(ctx context.Context, id string) error
}

type lessonService struct {
	repo       repository.LessonRepository
	lockRepo   repository.LessonLockRepository
	classrooms ClassroomDirectory
	validator  *validator.LessonValidator
	engine     *engine.Engine
	producer   *kafka.Producer
	cfg        *config.Config
}

func NewLessonService(
	repo repository.LessonRepository,
	lockRepo repository.LessonLockRepository,
	classrooms ClassroomDirectory,
	validator *validator.LessonValidator,
	eng *engine.Engine,
	producer *kafka.Producer,
	cfg *config.Config,
) LessonService {
	return &lessonService{
		repo:       repo,
		lockRepo:   lockRepo,
		classrooms: classrooms,
		validator:  validator,
		engine:     eng,
		producer:   producer,
		cfg:        cfg,
	}
}

func (s *lessonService) Create(ctx context.Context, lesson *model.Lesson) error {
	s.applyDefaults(lesson)
	s.sanitize(lesson)
	if err := s.validate(lesson); err != nil {
		return err
	}
	if err := s.resolveClassroom(ctx, lesson.ClassroomID); err != nil {
		return err
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireSlotLock(ctx, lesson.ClassroomID, lesson.Date)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release lesson lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflicts(sessCtx, lesson, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, lesson); err != nil {
			return apperrors.Internal("Failed to create lesson", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create lesson", "error", err)
		return err
	}

	s.publishEvent(ctx, EventLessonCreated, lesson)
	s.cfg.Log.Info("Lesson created successfully",
		"id", lesson.ID,
		"classroom_id", lesson.ClassroomID,
		"date", lesson.Date,
		"start_time", lesson.StartTime,
	)
	return nil
}

func (s *lessonService) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Lesson ID cannot be empty")
	}

	lesson, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Lesson", id)
		}
		if errors.Is(err, lessonserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid lesson ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve lesson", err)
	}

	return lesson, nil
}

func (s *lessonService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Lesson, int64, error) {

	var count int64
	var lessons []*model.Lesson
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count lessons", "error", errCount)
			errCount = apperrors.Internal("Failed to count lessons", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		lessons, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list lessons", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve lessons", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return lessons, count, nil
}

func (s *lessonService) Update(ctx context.Context, id string, updates *model.LessonUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Lesson ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Lesson", id)
		}
		if errors.Is(err, lessonserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid lesson ID format")
		}
		return apperrors.Internal("Failed to check lesson existence", err)
	}
	if existing.IsCompleted() {
		return apperrors.Forbidden("Completed lessons cannot be modified")
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Lesson update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}
	merged := s.mergeLessonUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}
	if merged.ClassroomID != existing.ClassroomID {
		if err := s.resolveClassroom(ctx, merged.ClassroomID); err != nil {
			return err
		}
	}
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflicts(sessCtx, merged, id); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update lesson", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update lesson", "id", id, "error", err)
		return err
	}

	merged.ID = id
	s.publishEvent(ctx, EventLessonUpdated, merged)
	s.cfg.Log.Info("Lesson updated successfully", "id", id)
	return nil
}

func (s *lessonService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Lesson ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Lesson", id)
		}
		if errors.Is(err, lessonserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid lesson ID format")
		}
		return apperrors.Internal("Failed to check lesson existence", err)
	}
	if existing.IsCompleted() {
		return apperrors.Forbidden("Completed lessons cannot be deleted")
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, lessonserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Lesson", id)
			}
			return apperrors.Internal("Failed to delete lesson", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(ctx, EventLessonDeleted, existing)
	s.cfg.Log.Info("Lesson deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *lessonService) sanitize(l *model.Lesson) {
	l.Name = sanitizer.TrimAndNormalize(l.Name)
	l.CourseName = sanitizer.TrimAndNormalize(l.CourseName)
	l.SubjectName = sanitizer.TrimAndNormalize(l.SubjectName)
}

func (s *lessonService) applyDefaults(l *model.Lesson) {
	if l.Status == "" {
		l.Status = model.StatusScheduled
	}
}

func (s *lessonService) mergeLessonUpdates(existing *model.Lesson, updates *model.LessonUpdate) *model.Lesson {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.CourseName != nil {
		merged.CourseName = *updates.CourseName
	}
	if updates.SubjectName != nil {
		merged.SubjectName = *updates.SubjectName
	}
	if updates.ClassroomID != "" {
		merged.ClassroomID = updates.ClassroomID
	}
	if updates.Date != "" {
		merged.Date = updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != nil {
		merged.EndTime = *updates.EndTime
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *lessonService) validate(lesson *model.Lesson) error {
	if err := s.validator.Validate(lesson); err != nil {
		s.cfg.Log.Warn("Lesson validation failed", "error", err)
		return apperrors.Validation("Lesson validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *lessonService) resolveClassroom(ctx context.Context, classroomID string) error {
	if _, err := s.classrooms.FindByID(ctx, classroomID); err != nil {
		if isClassroomUnknown(err) {
			return apperrors.InvalidInput(fmt.Sprintf("Unknown classroom: %s", classroomID))
		}
		return apperrors.Internal("Failed to resolve classroom", err)
	}
	return nil
}

func isClassroomUnknown(err error) bool {
	if errors.Is(err, classroomserrors.ErrNotFound) || errors.Is(err, classroomserrors.ErrInvalidID) {
		return true
	}
	return apperrors.AsAppError(err).Code == apperrors.CodeNotFound
}

// verifyNoConflicts runs the overlap engine against the lesson's classroom
// and date inside the current transaction. selfID is empty on create.
func (s *lessonService) verifyNoConflicts(ctx context.Context, lesson *model.Lesson, selfID string) error {
	sameDay, err := s.repo.FindByClassroomAndDate(ctx, lesson.ClassroomID, lesson.Date)
	if err != nil {
		return apperrors.Internal("Failed to check existing lessons", err)
	}

	cand := engine.Candidate{Booking: toBooking(lesson), SelfID: selfID}
	conflicts, err := s.engine.Conflicts(cand, nil, toBookings(sameDay))
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInterval) {
			return apperrors.InvalidInput(err.Error())
		}
		return apperrors.Internal("Conflict check failed", err)
	}
	if len(conflicts) > 0 {
		first := conflicts[0]
		return apperrors.Conflict(fmt.Sprintf(
			"Lesson time overlaps with %q (%s %s)",
			first.Label, first.Date, first.Start,
		)).WithDetails(map[string]any{
			"conflicts": conflictSummaries(s.engine, conflicts),
		})
	}
	return nil
}

func conflictSummaries(eng *engine.Engine, conflicts []engine.Booking) []map[string]any {
	summaries := make([]map[string]any, 0, len(conflicts))
	for _, c := range conflicts {
		summary := map[string]any{
			"id":           c.ID,
			"name":         c.Label,
			"classroom_id": c.ResourceID,
			"date":         c.Date,
			"start_time":   c.Start,
		}
		if iv, err := eng.EffectiveInterval(c); err == nil {
			summary["end_time"] = iv.End.Format(engine.TimeLayout)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func (s *lessonService) publishEvent(ctx context.Context, eventType string, lesson *model.Lesson) {
	if s.producer == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(lesson.ClassroomID).
		WithValue(lesson).
		WithEventType(eventType).
		WithSource("lessons-service").
		Build()

	if err := s.producer.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish lesson event",
			"event_type", eventType,
			"lesson_id", lesson.ID,
			"error", err,
		)
	}
}

// acquireSlotLock creates an advisory lock to prevent concurrent lesson creation
// Returns the lock ID if successful, or conflict error if lock already exists
func (s *lessonService) acquireSlotLock(ctx context.Context, classroomID, date string) (string, error) {
	// Lock ID from the slot coordinates
	lockID := fmt.Sprintf("lesson_lock_%s_%s", classroomID, date)

	lock := &model.LessonLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second), // Auto-expire after 10 seconds
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being scheduled by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire lesson lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *lessonService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
