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

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository.
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new program repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.CoachID == primitive.NilObjectID || program.ClientID == primitive.NilObjectID || program.Title == "" {
		return primitive.NilObjectID, errors.New("program requires coachId, clientId, and title")
	}

	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted program ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	var program domain.Program
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByClientID retrieves all programs for a client, newest first.
func (r *mongoProgramRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Program, error) {
	return r.findPrograms(ctx, bson.M{"clientId": clientID})
}

// GetByCoachID retrieves all programs authored by a coach, newest first.
func (r *mongoProgramRepository) GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error) {
	return r.findPrograms(ctx, bson.M{"coachId": coachID})
}

func (r *mongoProgramRepository) findPrograms(ctx context.Context, filter bson.M) ([]domain.Program, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	programs := []domain.Program{}
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// NextWeekOrder atomically increments the program's week order sequence and
// returns the new value. The sequence only grows, so orders deleted later
// are never handed out again.
func (r *mongoProgramRepository) NextWeekOrder(ctx context.Context, programID primitive.ObjectID) (int, error) {
	update := bson.M{
		"$inc": bson.M{"weekSeq": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var program domain.Program
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": programID}, update, opts).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	return program.WeekSeq, nil
}

// SetPointer writes currentWeekId and currentDayId in one UpdateOne. The
// single-document write is what guarantees a reader never sees a half
// advanced pointer pair.
func (r *mongoProgramRepository) SetPointer(ctx context.Context, programID, weekID, dayID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"currentWeekId": weekID,
			"currentDayId":  dayID,
			"updatedAt":     time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": programID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// IncrementCompletedWeeks bumps completedWeeks, capped at totalWeeks, and
// returns the updated program. Uses a pipeline update so the cap is applied
// server-side in the same atomic write.
func (r *mongoProgramRepository) IncrementCompletedWeeks(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"completedWeeks": bson.M{
				"$min": bson.A{"$totalWeeks", bson.M{"$add": bson.A{"$completedWeeks", 1}}},
			},
			"updatedAt": time.Now().UTC(),
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var program domain.Program
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": programID}, update, opts).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// ClearPointerForWeek unsets the pointer pair if it references the given week.
func (r *mongoProgramRepository) ClearPointerForWeek(ctx context.Context, programID, weekID primitive.ObjectID) error {
	return r.clearPointer(ctx, bson.M{"_id": programID, "currentWeekId": weekID})
}

// ClearPointerForDay unsets the pointer pair if it references the given day.
func (r *mongoProgramRepository) ClearPointerForDay(ctx context.Context, programID, dayID primitive.ObjectID) error {
	return r.clearPointer(ctx, bson.M{"_id": programID, "currentDayId": dayID})
}

func (r *mongoProgramRepository) clearPointer(ctx context.Context, filter bson.M) error {
	update := bson.M{
		"$unset": bson.M{"currentWeekId": "", "currentDayId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}
	// No match just means the pointer referenced something else.
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// UpdateStatus transitions the program status with a compare-and-swap on the
// current status value.
func (r *mongoProgramRepository) UpdateStatus(ctx context.Context, programID primitive.ObjectID, from, to domain.ProgramStatus) error {
	filter := bson.M{"_id": programID, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":    to,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a program document. Week/day/log/comment cascades are
// orchestrated by the service layer.
func (r *mongoProgramRepository) Delete(ctx context.Context, programID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": programID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "clientId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
