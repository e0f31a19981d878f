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

const weekCollectionName = "program_weeks"

// mongoWeekRepository implements repository.WeekRepository.
type mongoWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekRepository creates a new week repository.
func NewMongoWeekRepository(db *mongo.Database) repository.WeekRepository {
	return &mongoWeekRepository{
		collection: db.Collection(weekCollectionName),
	}
}

// Create inserts a new week. The unique (programId, order) index is the
// backstop against duplicate orders from concurrent appends; callers retry
// on ErrDuplicate.
func (r *mongoWeekRepository) Create(ctx context.Context, week *domain.ProgramWeek) (primitive.ObjectID, error) {
	if week.ProgramID == primitive.NilObjectID || week.Name == "" {
		return primitive.NilObjectID, errors.New("week requires programId and name")
	}

	week.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	week.CreatedAt = now
	week.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, week)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted week ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single week by its ID.
func (r *mongoWeekRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramWeek, error) {
	var week domain.ProgramWeek
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// GetByProgramID retrieves all weeks of a program, ascending by order.
func (r *mongoWeekRepository) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramWeek, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"programId": programID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	weeks := []domain.ProgramWeek{}
	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// NextAfter returns the week with the smallest order above the given one.
func (r *mongoWeekRepository) NextAfter(ctx context.Context, programID primitive.ObjectID, order int) (*domain.ProgramWeek, error) {
	filter := bson.M{
		"programId": programID,
		"order":     bson.M{"$gt": order},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "order", Value: 1}})

	var week domain.ProgramWeek
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// NextDayOrder atomically increments the week's day order sequence and
// returns the new value.
func (r *mongoWeekRepository) NextDayOrder(ctx context.Context, weekID primitive.ObjectID) (int, error) {
	update := bson.M{
		"$inc": bson.M{"daySeq": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var week domain.ProgramWeek
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": weekID}, update, opts).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return week.DaySeq, nil
}

// Delete removes one week, verifying it belongs to the stated program.
func (r *mongoWeekRepository) Delete(ctx context.Context, id, programID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "programId": programID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByProgramID removes all weeks of a program.
func (r *mongoWeekRepository) DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"programId": programID})
	return err
}

// EnsureWeekIndexes creates necessary indexes for the program_weeks collection.
func EnsureWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Unique (programId, order): the serialization backstop for
			// concurrent appends to the same program.
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
