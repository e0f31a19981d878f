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

const dayExerciseCollectionName = "program_day_exercises"

// mongoDayExerciseRepository implements repository.DayExerciseRepository.
type mongoDayExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoDayExerciseRepository creates a new day-exercise assignment repository.
func NewMongoDayExerciseRepository(db *mongo.Database) repository.DayExerciseRepository {
	return &mongoDayExerciseRepository{
		collection: db.Collection(dayExerciseCollectionName),
	}
}

// Upsert creates or replaces the assignment for (dayId, exerciseId).
// Repeated identical calls converge on the same document, which is what
// makes assignment idempotent for callers.
func (r *mongoDayExerciseRepository) Upsert(ctx context.Context, assignment *domain.DayExercise) (*domain.DayExercise, error) {
	if assignment.DayID == primitive.NilObjectID || assignment.ExerciseID == primitive.NilObjectID {
		return nil, errors.New("assignment requires dayId and exerciseId")
	}

	now := time.Now().UTC()
	filter := bson.M{"dayId": assignment.DayID, "exerciseId": assignment.ExerciseID}
	update := bson.M{
		"$set": bson.M{
			"targets":   assignment.Targets,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"dayId":      assignment.DayID,
			"exerciseId": assignment.ExerciseID,
			"createdAt":  now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.DayExercise
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetByDayAndExercise retrieves the assignment for one (day, exercise) pair.
func (r *mongoDayExerciseRepository) GetByDayAndExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID) (*domain.DayExercise, error) {
	var assignment domain.DayExercise
	filter := bson.M{"dayId": dayID, "exerciseId": exerciseID}
	err := r.collection.FindOne(ctx, filter).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// GetByDayID retrieves all assignments for a day in creation order.
func (r *mongoDayExerciseRepository) GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.DayExercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"dayId": dayID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assignments := []domain.DayExercise{}
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Delete removes the assignment for one (day, exercise) pair.
func (r *mongoDayExerciseRepository) Delete(ctx context.Context, dayID, exerciseID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"dayId": dayID, "exerciseId": exerciseID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByDayIDs removes all assignments belonging to the given days.
func (r *mongoDayExerciseRepository) DeleteByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) error {
	if len(dayIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"dayId": bson.M{"$in": dayIDs}})
	return err
}

// CountByExerciseID counts assignments referencing an exercise. Used to gate
// exercise deletion so log history is never orphaned.
func (r *mongoDayExerciseRepository) CountByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"exerciseId": exerciseID})
}

// EnsureDayExerciseIndexes creates necessary indexes for the assignments collection.
func EnsureDayExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One assignment per (day, exercise) pair.
			Keys:    bson.D{{Key: "dayId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
