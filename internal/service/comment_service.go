package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository"
	"github.com/Sivtheng/LiftNote-sub001/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrCommentAccessDenied = errors.New("user is not a party to this program")
	ErrEmptyComment        = errors.New("comment requires content or media")
	ErrMediaURLError       = errors.New("failed to generate media upload URL")
)

// MediaUploadResponse carries a presigned upload URL plus the opaque URL the
// caller stores back on the comment once the upload succeeds.
type MediaUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	MediaURL  string `json:"mediaUrl"`
}

// PostCommentParams carries one comment as supplied by the caller.
type PostCommentParams struct {
	ProgramID primitive.ObjectID
	AuthorID  primitive.ObjectID
	Content   string
	MediaType string
	MediaURL  string
	ParentID  *primitive.ObjectID
}

// CommentService attaches threaded discussion to programs. Threads are one
// level deep: top-level comments plus replies, never deeper.
type CommentService interface {
	PostComment(ctx context.Context, params PostCommentParams) (*domain.Comment, error)
	// TopLevelComments returns the two-tier read shape: parentless comments
	// in creation order, each carrying its replies in creation order.
	TopLevelComments(ctx context.Context, programID primitive.ObjectID) ([]domain.CommentThread, error)
	// RequestMediaUploadURL presigns an upload slot for comment media.
	RequestMediaUploadURL(ctx context.Context, programID primitive.ObjectID, contentType string) (*MediaUploadResponse, error)
}

// commentService implements the CommentService interface.
type commentService struct {
	commentRepo repository.CommentRepository
	programRepo repository.ProgramRepository
	fileStorage storage.FileStorage
	notifier    Notifier
	logger      *zap.SugaredLogger
}

// NewCommentService creates a new instance of commentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	programRepo repository.ProgramRepository,
	fileStorage storage.FileStorage,
	notifier Notifier,
	logger *zap.SugaredLogger,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		programRepo: programRepo,
		fileStorage: fileStorage,
		notifier:    notifier,
		logger:      logger,
	}
}

// PostComment stores one message on a program, optionally as a reply to a
// top-level comment.
func (s *commentService) PostComment(ctx context.Context, params PostCommentParams) (*domain.Comment, error) {
	if params.Content == "" && params.MediaURL == "" {
		return nil, ErrEmptyComment
	}

	program, err := s.programRepo.GetByID(ctx, params.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, params.ProgramID.Hex())
		}
		return nil, err
	}
	if params.AuthorID != program.ClientID && params.AuthorID != program.CoachID {
		return nil, ErrCommentAccessDenied
	}

	if params.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *params.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent comment %s does not exist", domain.ErrInvalidThread, params.ParentID.Hex())
			}
			return nil, err
		}
		if parent.ProgramID != params.ProgramID {
			return nil, fmt.Errorf("%w: parent belongs to program %s", domain.ErrInvalidThread, parent.ProgramID.Hex())
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: replies cannot be replied to", domain.ErrInvalidThread)
		}
	}

	comment := &domain.Comment{
		ProgramID: params.ProgramID,
		AuthorID:  params.AuthorID,
		ParentID:  params.ParentID,
		Content:   params.Content,
		MediaType: params.MediaType,
		MediaURL:  params.MediaURL,
	}
	commentID, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = commentID

	// The other party gets notified, out-of-band.
	recipient := program.ClientID
	if params.AuthorID == program.ClientID {
		recipient = program.CoachID
	}
	dispatchAsync(s.notifier, s.logger, Notification{
		RecipientID: recipient,
		Title:       "New comment",
		Body:        fmt.Sprintf("New comment on %q", program.Title),
		Data: map[string]string{
			"programId": program.ID.Hex(),
			"commentId": commentID.Hex(),
		},
	})
	return comment, nil
}

// TopLevelComments assembles the two-tier thread shape from two ordered
// reads, so callers never reconstruct threads from a flat list.
func (s *commentService) TopLevelComments(ctx context.Context, programID primitive.ObjectID) ([]domain.CommentThread, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, programID.Hex())
		}
		return nil, err
	}

	topLevel, err := s.commentRepo.GetTopLevelByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	replies, err := s.commentRepo.GetRepliesByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}

	repliesByParent := make(map[primitive.ObjectID][]domain.Comment)
	for _, reply := range replies {
		repliesByParent[*reply.ParentID] = append(repliesByParent[*reply.ParentID], reply)
	}

	threads := make([]domain.CommentThread, len(topLevel))
	for i, comment := range topLevel {
		thread := domain.CommentThread{Comment: comment, Replies: repliesByParent[comment.ID]}
		if thread.Replies == nil {
			thread.Replies = []domain.Comment{}
		}
		threads[i] = thread
	}
	return threads, nil
}

// RequestMediaUploadURL generates a presigned PUT URL for comment media.
// The resulting object URL is stored opaquely on the comment; the core
// never checks it resolves.
func (s *commentService) RequestMediaUploadURL(ctx context.Context, programID primitive.ObjectID, contentType string) (*MediaUploadResponse, error) {
	if contentType == "" {
		return nil, errors.New("content type is required")
	}
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, programID.Hex())
		}
		return nil, err
	}

	fileExtension := "bin"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 && parts[1] != "" {
		fileExtension = parts[1]
	}
	objectKey := path.Join("comments", programID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.logger.Errorw("presign upload failed", "objectKey", objectKey, "error", err)
		return nil, ErrMediaURLError
	}

	return &MediaUploadResponse{
		UploadURL: uploadURL,
		MediaURL:  s.fileStorage.ObjectURL(objectKey),
	}, nil
}
