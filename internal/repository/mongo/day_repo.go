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

const dayCollectionName = "program_days"

// mongoDayRepository implements repository.DayRepository.
type mongoDayRepository struct {
	collection *mongo.Collection
}

// NewMongoDayRepository creates a new day repository.
func NewMongoDayRepository(db *mongo.Database) repository.DayRepository {
	return &mongoDayRepository{
		collection: db.Collection(dayCollectionName),
	}
}

// Create inserts a new day.
func (r *mongoDayRepository) Create(ctx context.Context, day *domain.ProgramDay) (primitive.ObjectID, error) {
	if day.WeekID == primitive.NilObjectID || day.ProgramID == primitive.NilObjectID || day.Name == "" {
		return primitive.NilObjectID, errors.New("day requires weekId, programId, and name")
	}

	day.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, day)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted day ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single day by its ID.
func (r *mongoDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramDay, error) {
	var day domain.ProgramDay
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByWeekID retrieves all days of a week, ascending by order.
func (r *mongoDayRepository) GetByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]domain.ProgramDay, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"weekId": weekID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	days := []domain.ProgramDay{}
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// FirstByWeekID returns the lowest-order day of a week.
func (r *mongoDayRepository) FirstByWeekID(ctx context.Context, weekID primitive.ObjectID) (*domain.ProgramDay, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "order", Value: 1}})

	var day domain.ProgramDay
	err := r.collection.FindOne(ctx, bson.M{"weekId": weekID}, findOptions).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// Delete removes one day, verifying it belongs to the stated week.
func (r *mongoDayRepository) Delete(ctx context.Context, id, weekID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "weekId": weekID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByWeekID removes all days of a week and returns their IDs so
// assignment cascades can follow.
func (r *mongoDayRepository) DeleteByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.deleteMatching(ctx, bson.M{"weekId": weekID})
}

// DeleteByProgramID removes all days of a program and returns their IDs.
func (r *mongoDayRepository) DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.deleteMatching(ctx, bson.M{"programId": programID})
}

func (r *mongoDayRepository) deleteMatching(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}

	if _, err = r.collection.DeleteMany(ctx, filter); err != nil {
		return nil, err
	}
	return ids, nil
}

// EnsureDayIndexes creates necessary indexes for the program_days collection.
func EnsureDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Unique (weekId, order), same serialization backstop as weeks.
			Keys:    bson.D{{Key: "weekId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "programId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
