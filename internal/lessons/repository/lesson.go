package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	lessonserrors "aulario/internal/lessons/errors"
	"aulario/pkg/config"
	mongotx "aulario/pkg/db/mongo"
	"aulario/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Lessons"
)

type mongoLessonRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	FindByID(ctx context.Context, id string) (*model.Lesson, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Lesson, error)
	Update(ctx context.Context, id string, lesson *model.Lesson) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	FindByClassroomAndDate(ctx context.Context, classroomID string, date string) ([]*model.Lesson, error)
	FindByDateRange(ctx context.Context, fromDate, toDate string) ([]*model.Lesson, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoLessonRepository(cfg *config.Config) LessonRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLessonRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoLessonRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoLessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lesson.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, lesson)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		lesson.ID = oid.Hex()
	}
	return nil
}

func (r *mongoLessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", lessonserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var lesson model.Lesson
	err = r.collection.FindOne(ctx, filter).Decode(&lesson)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, lessonserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lesson: %w", err)
	}

	return &lesson, nil
}

func (r *mongoLessonRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Lesson, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find lessons: %w", err)
	}
	defer cursor.Close(ctx)

	var lessons []*model.Lesson
	if err = cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}

	return lessons, nil
}

func (r *mongoLessonRepository) Update(ctx context.Context, id string, lesson *model.Lesson) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", lessonserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":         lesson.Name,
			"course_name":  lesson.CourseName,
			"subject_name": lesson.SubjectName,
			"classroom_id": lesson.ClassroomID,
			"date":         lesson.Date,
			"start_time":   lesson.StartTime,
			"end_time":     lesson.EndTime,
			"status":       lesson.Status,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, lessonserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoLessonRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", lessonserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	if result.DeletedCount == 0 {
		return lessonserrors.ErrNotFound
	}

	return nil
}

func (r *mongoLessonRepository) FindByClassroomAndDate(ctx context.Context, classroomID string, date string) ([]*model.Lesson, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"classroom_id": classroomID,
		"date":         date,
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find lessons by classroom and date: %w", err)
	}
	defer cursor.Close(ctx)

	var lessons []*model.Lesson
	if err = cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}

	return lessons, nil
}

func (r *mongoLessonRepository) FindByDateRange(ctx context.Context, fromDate, toDate string) ([]*model.Lesson, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date": bson.M{"$gte": fromDate, "$lte": toDate},
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find lessons in date range: %w", err)
	}
	defer cursor.Close(ctx)

	var lessons []*model.Lesson
	if err = cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}

	return lessons, nil
}

func (r *mongoLessonRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}

func (r *mongoLessonRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
