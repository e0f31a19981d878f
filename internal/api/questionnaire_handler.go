package api

import (
	"net/http"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionnaireHandler holds the questionnaire service dependency.
type QuestionnaireHandler struct {
	questionnaireService service.QuestionnaireService
}

// NewQuestionnaireHandler creates a new QuestionnaireHandler.
func NewQuestionnaireHandler(questionnaireService service.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: questionnaireService}
}

// --- DTOs ---

// QuestionRequest defines the expected JSON for catalog question writes.
type QuestionRequest struct {
	Key        string              `json:"key" binding:"required"`
	Question   string              `json:"question" binding:"required"`
	Type       domain.QuestionType `json:"type" binding:"required,oneof=text number select"`
	Options    []string            `json:"options"`
	IsRequired bool                `json:"isRequired"`
	Order      int                 `json:"order"`
}

// CreateQuestionnaireRequest optionally ties the questionnaire to a program.
type CreateQuestionnaireRequest struct {
	ProgramID *string `json:"programId"`
}

// AnswerRequest carries one answer keyed by the catalog question key.
type AnswerRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// QuestionResponse is the DTO for returning one catalog question.
type QuestionResponse struct {
	ID         string              `json:"id"`
	Key        string              `json:"key"`
	Question   string              `json:"question"`
	Type       domain.QuestionType `json:"type"`
	Options    []string            `json:"options,omitempty"`
	IsRequired bool                `json:"isRequired"`
	Order      int                 `json:"order"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// QuestionnaireResponse is the DTO for returning a client's questionnaire.
type QuestionnaireResponse struct {
	ID        string                     `json:"id"`
	ClientID  string                     `json:"clientId"`
	ProgramID *string                    `json:"programId,omitempty"`
	Questions []QuestionResponse         `json:"questions"`
	Answers   map[string]string          `json:"answers"`
	Status    domain.QuestionnaireStatus `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// MapQuestionToResponse converts a domain.QuestionnaireQuestion to its DTO.
func MapQuestionToResponse(q *domain.QuestionnaireQuestion) QuestionResponse {
	if q == nil {
		return QuestionResponse{}
	}
	return QuestionResponse{
		ID:         q.ID.Hex(),
		Key:        q.Key,
		Question:   q.Question,
		Type:       q.Type,
		Options:    q.Options,
		IsRequired: q.IsRequired,
		Order:      q.Order,
		CreatedAt:  q.CreatedAt,
	}
}

// MapQuestionsToResponse converts a slice of catalog questions to DTOs.
func MapQuestionsToResponse(questions []domain.QuestionnaireQuestion) []QuestionResponse {
	responses := make([]QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = MapQuestionToResponse(&questions[i])
	}
	return responses
}

// MapQuestionnaireToResponse converts a domain.Questionnaire to its DTO.
func MapQuestionnaireToResponse(q *domain.Questionnaire) QuestionnaireResponse {
	if q == nil {
		return QuestionnaireResponse{}
	}
	resp := QuestionnaireResponse{
		ID:        q.ID.Hex(),
		ClientID:  q.ClientID.Hex(),
		Questions: MapQuestionsToResponse(q.Questions),
		Answers:   q.Answers,
		Status:    q.Status,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if q.ProgramID != nil {
		programHex := q.ProgramID.Hex()
		resp.ProgramID = &programHex
	}
	return resp
}

// --- Handler Methods ---

// AddQuestion handles POST /questionnaire/questions (admin only).
func (h *QuestionnaireHandler) AddQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	question, err := h.questionnaireService.AddQuestion(c.Request.Context(), &domain.QuestionnaireQuestion{
		Key:        req.Key,
		Question:   req.Question,
		Type:       req.Type,
		Options:    req.Options,
		IsRequired: req.IsRequired,
		Order:      req.Order,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapQuestionToResponse(question))
}

// UpdateQuestion handles PUT /questionnaire/questions/:questionId.
func (h *QuestionnaireHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := pathObjectID(c, "questionId")
	if !ok {
		return
	}
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.questionnaireService.UpdateQuestion(c.Request.Context(), &domain.QuestionnaireQuestion{
		ID:         questionID,
		Key:        req.Key,
		Question:   req.Question,
		Type:       req.Type,
		Options:    req.Options,
		IsRequired: req.IsRequired,
		Order:      req.Order,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteQuestion handles DELETE /questionnaire/questions/:questionId.
func (h *QuestionnaireHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := pathObjectID(c, "questionId")
	if !ok {
		return
	}

	if err := h.questionnaireService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetQuestions handles GET /questionnaire/questions.
func (h *QuestionnaireHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questionnaireService.Questions(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapQuestionsToResponse(questions))
}

// CreateQuestionnaire handles POST /questionnaire, snapshotting the current
// catalog for the authenticated client.
func (h *QuestionnaireHandler) CreateQuestionnaire(c *gin.Context) {
	var req CreateQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	clientID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	var programID *primitive.ObjectID
	if req.ProgramID != nil {
		pID, err := primitive.ObjectIDFromHex(*req.ProgramID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid program ID format")
			return
		}
		programID = &pID
	}

	questionnaire, err := h.questionnaireService.CreateQuestionnaire(c.Request.Context(), clientID, programID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapQuestionnaireToResponse(questionnaire))
}

// GetMyQuestionnaire handles GET /questionnaire.
func (h *QuestionnaireHandler) GetMyQuestionnaire(c *gin.Context) {
	clientID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	questionnaire, err := h.questionnaireService.GetForClient(c.Request.Context(), clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapQuestionnaireToResponse(questionnaire))
}

// UpsertAnswer handles PUT /questionnaire/:questionnaireId/answers. Only
// pending questionnaires accept answer writes.
func (h *QuestionnaireHandler) UpsertAnswer(c *gin.Context) {
	questionnaireID, ok := pathObjectID(c, "questionnaireId")
	if !ok {
		return
	}
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	if err := h.questionnaireService.UpsertAnswer(c.Request.Context(), questionnaireID, actorID, req.Key, req.Value); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Submit handles POST /questionnaire/:questionnaireId/submit.
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	questionnaireID, ok := pathObjectID(c, "questionnaireId")
	if !ok {
		return
	}

	actorID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	if err := h.questionnaireService.Submit(c.Request.Context(), questionnaireID, actorID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Review handles POST /questionnaire/:questionnaireId/review (coach/admin).
func (h *QuestionnaireHandler) Review(c *gin.Context) {
	questionnaireID, ok := pathObjectID(c, "questionnaireId")
	if !ok {
		return
	}

	reviewerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	if err := h.questionnaireService.Review(c.Request.Context(), questionnaireID, reviewerID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
