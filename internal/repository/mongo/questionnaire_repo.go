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

const (
	questionCollectionName      = "questionnaire_questions"
	questionnaireCollectionName = "questionnaires"
)

// mongoQuestionRepository implements repository.QuestionRepository.
type mongoQuestionRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionRepository creates a new question catalog repository.
func NewMongoQuestionRepository(db *mongo.Database) repository.QuestionRepository {
	return &mongoQuestionRepository{
		collection: db.Collection(questionCollectionName),
	}
}

// Create inserts a new catalog question.
func (r *mongoQuestionRepository) Create(ctx context.Context, question *domain.QuestionnaireQuestion) (primitive.ObjectID, error) {
	if question.Key == "" || question.Question == "" {
		return primitive.NilObjectID, errors.New("question requires key and question text")
	}

	question.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, question)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted question ID")
	}
	return insertedID, nil
}

// GetByKey retrieves one catalog question by its stable key.
func (r *mongoQuestionRepository) GetByKey(ctx context.Context, key string) (*domain.QuestionnaireQuestion, error) {
	var question domain.QuestionnaireQuestion
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&question)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetAll retrieves the catalog ordered ascending by order.
func (r *mongoQuestionRepository) GetAll(ctx context.Context) ([]domain.QuestionnaireQuestion, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questions := []domain.QuestionnaireQuestion{}
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Update rewrites the mutable fields of a catalog question. The key itself
// is stable and never rewritten.
func (r *mongoQuestionRepository) Update(ctx context.Context, question *domain.QuestionnaireQuestion) error {
	if question.ID == primitive.NilObjectID {
		return errors.New("question ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"question":   question.Question,
			"type":       question.Type,
			"options":    question.Options,
			"isRequired": question.IsRequired,
			"order":      question.Order,
			"updatedAt":  time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": question.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a catalog question.
func (r *mongoQuestionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureQuestionIndexes creates necessary indexes for the question catalog.
func EnsureQuestionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

// mongoQuestionnaireRepository implements repository.QuestionnaireRepository.
type mongoQuestionnaireRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionnaireRepository creates a new questionnaire repository.
func NewMongoQuestionnaireRepository(db *mongo.Database) repository.QuestionnaireRepository {
	return &mongoQuestionnaireRepository{
		collection: db.Collection(questionnaireCollectionName),
	}
}

// Create inserts a new questionnaire instance. At most one exists per
// client, enforced by a unique index on clientId.
func (r *mongoQuestionnaireRepository) Create(ctx context.Context, questionnaire *domain.Questionnaire) (primitive.ObjectID, error) {
	if questionnaire.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("questionnaire requires clientId")
	}

	questionnaire.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	questionnaire.CreatedAt = now
	questionnaire.UpdatedAt = now
	if questionnaire.Answers == nil {
		questionnaire.Answers = map[string]string{}
	}

	result, err := r.collection.InsertOne(ctx, questionnaire)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted questionnaire ID")
	}
	return insertedID, nil
}

// GetByID retrieves a questionnaire by its ID.
func (r *mongoQuestionnaireRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Questionnaire, error) {
	var questionnaire domain.Questionnaire
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&questionnaire)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &questionnaire, nil
}

// GetByClientID retrieves a client's questionnaire.
func (r *mongoQuestionnaireRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.Questionnaire, error) {
	var questionnaire domain.Questionnaire
	err := r.collection.FindOne(ctx, bson.M{"clientId": clientID}).Decode(&questionnaire)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &questionnaire, nil
}

// SetAnswer writes one keyed answer, gated on the questionnaire still being
// pending so completed/reviewed instances stay frozen.
func (r *mongoQuestionnaireRepository) SetAnswer(ctx context.Context, id primitive.ObjectID, key, value string) error {
	filter := bson.M{"_id": id, "status": domain.QuestionnairePending}
	update := bson.M{
		"$set": bson.M{
			"answers." + key: value,
			"updatedAt":      time.Now().UTC(),
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

// UpdateStatus transitions the questionnaire status with a compare-and-swap
// on the current value.
func (r *mongoQuestionnaireRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.QuestionnaireStatus) error {
	filter := bson.M{"_id": id, "status": from}
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

// EnsureQuestionnaireIndexes creates necessary indexes for questionnaires.
func EnsureQuestionnaireIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "programId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
