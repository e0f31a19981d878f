package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const progressLogCollectionName = "progress_logs"

// mongoProgressLogRepository implements repository.ProgressLogRepository.
type mongoProgressLogRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressLogRepository creates a new progress log repository.
func NewMongoProgressLogRepository(db *mongo.Database) repository.ProgressLogRepository {
	return &mongoProgressLogRepository{
		collection: db.Collection(progressLogCollectionName),
	}
}

// Create inserts a new progress log.
func (r *mongoProgressLogRepository) Create(ctx context.Context, log *domain.ProgressLog) (primitive.ObjectID, error) {
	if log.ProgramID == primitive.NilObjectID || log.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("log requires programId and userId")
	}

	log.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByProgramID retrieves all logs for a program, completedAt ascending.
func (r *mongoProgressLogRepository) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgressLog, error) {
	return r.findLogs(ctx, bson.M{"programId": programID})
}

// GetByDay is the day-scoped projection of the same ordering, so callers
// never re-sort.
func (r *mongoProgressLogRepository) GetByDay(ctx context.Context, programID, weekID, dayID primitive.ObjectID) ([]domain.ProgressLog, error) {
	return r.findLogs(ctx, bson.M{
		"programId": programID,
		"weekId":    weekID,
		"dayId":     dayID,
	})
}

func (r *mongoProgressLogRepository) findLogs(ctx context.Context, filter bson.M) ([]domain.ProgressLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.ProgressLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CountByExerciseID counts logs referencing an exercise.
func (r *mongoProgressLogRepository) CountByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"exerciseId": exerciseID})
}

// DeleteByProgramID removes all logs of a program (program-delete cascade).
func (r *mongoProgressLogRepository) DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"programId": programID})
	return err
}

// EnsureProgressLogIndexes creates necessary indexes for the progress_logs collection.
func EnsureProgressLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "completedAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "weekId", Value: 1}, {Key: "dayId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "exerciseId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
