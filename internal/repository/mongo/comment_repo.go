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

const commentCollectionName = "comments"

// mongoCommentRepository implements repository.CommentRepository.
type mongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new comment repository.
func NewMongoCommentRepository(db *mongo.Database) repository.CommentRepository {
	return &mongoCommentRepository{
		collection: db.Collection(commentCollectionName),
	}
}

// Create inserts a new comment.
func (r *mongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error) {
	if comment.ProgramID == primitive.NilObjectID || comment.AuthorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("comment requires programId and authorId")
	}

	comment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted comment ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single comment by its ID.
func (r *mongoCommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelByProgramID retrieves parentless comments, creation ascending.
func (r *mongoCommentRepository) GetTopLevelByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Comment, error) {
	filter := bson.M{
		"programId": programID,
		"parentId":  bson.M{"$exists": false},
	}
	return r.findComments(ctx, filter)
}

// GetRepliesByProgramID retrieves every reply on a program, creation
// ascending. The service groups them under their parents.
func (r *mongoCommentRepository) GetRepliesByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Comment, error) {
	filter := bson.M{
		"programId": programID,
		"parentId":  bson.M{"$exists": true},
	}
	return r.findComments(ctx, filter)
}

func (r *mongoCommentRepository) findComments(ctx context.Context, filter bson.M) ([]domain.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []domain.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByProgramID removes all comments of a program (program-delete cascade).
func (r *mongoCommentRepository) DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"programId": programID})
	return err
}

// EnsureCommentIndexes creates necessary indexes for the comments collection.
func EnsureCommentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
