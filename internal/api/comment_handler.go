package api

import (
	"net/http"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentHandler holds the comment service dependency.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// --- DTOs ---

// PostCommentRequest defines the expected JSON for posting a comment.
// ParentID present makes it a reply; replies to replies are rejected.
type PostCommentRequest struct {
	Content   string  `json:"content"`
	MediaType string  `json:"mediaType"`
	MediaURL  string  `json:"mediaUrl"`
	ParentID  *string `json:"parentId"`
}

// MediaUploadRequest asks for a presigned upload slot for comment media.
type MediaUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// CommentResponse is the DTO for returning one comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"programId"`
	AuthorID  string    `json:"authorId"`
	ParentID  *string   `json:"parentId,omitempty"`
	Content   string    `json:"content,omitempty"`
	MediaType string    `json:"mediaType,omitempty"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentThreadResponse is a top-level comment with its replies, both in
// creation order.
type CommentThreadResponse struct {
	CommentResponse
	Replies []CommentResponse `json:"replies"`
}

// MapCommentToResponse converts a domain.Comment to CommentResponse DTO.
func MapCommentToResponse(cm *domain.Comment) CommentResponse {
	if cm == nil {
		return CommentResponse{}
	}
	resp := CommentResponse{
		ID:        cm.ID.Hex(),
		ProgramID: cm.ProgramID.Hex(),
		AuthorID:  cm.AuthorID.Hex(),
		Content:   cm.Content,
		MediaType: cm.MediaType,
		MediaURL:  cm.MediaURL,
		CreatedAt: cm.CreatedAt,
	}
	if cm.ParentID != nil {
		parentHex := cm.ParentID.Hex()
		resp.ParentID = &parentHex
	}
	return resp
}

// MapThreadsToResponse converts comment threads to DTOs.
func MapThreadsToResponse(threads []domain.CommentThread) []CommentThreadResponse {
	responses := make([]CommentThreadResponse, len(threads))
	for i := range threads {
		replies := make([]CommentResponse, len(threads[i].Replies))
		for j := range threads[i].Replies {
			replies[j] = MapCommentToResponse(&threads[i].Replies[j])
		}
		responses[i] = CommentThreadResponse{
			CommentResponse: MapCommentToResponse(&threads[i].Comment),
			Replies:         replies,
		}
	}
	return responses
}

// --- Handler Methods ---

// PostComment handles POST /programs/:programId/comments.
func (h *CommentHandler) PostComment(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	authorID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	var parentID *primitive.ObjectID
	if req.ParentID != nil {
		pID, err := primitive.ObjectIDFromHex(*req.ParentID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid parent comment ID format")
			return
		}
		parentID = &pID
	}

	comment, err := h.commentService.PostComment(c.Request.Context(), service.PostCommentParams{
		ProgramID: programID,
		AuthorID:  authorID,
		Content:   req.Content,
		MediaType: req.MediaType,
		MediaURL:  req.MediaURL,
		ParentID:  parentID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapCommentToResponse(comment))
}

// GetComments handles GET /programs/:programId/comments, returning the
// threaded shape.
func (h *CommentHandler) GetComments(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	threads, err := h.commentService.TopLevelComments(c.Request.Context(), programID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapThreadsToResponse(threads))
}

// RequestMediaUpload handles POST /programs/:programId/comments/media-upload.
// The client uploads to the presigned URL, then posts a comment carrying the
// returned media URL.
func (h *CommentHandler) RequestMediaUpload(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.commentService.RequestMediaUploadURL(c.Request.Context(), programID, req.ContentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
