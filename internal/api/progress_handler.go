package api

import (
	"net/http"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the progress log service dependency.
type ProgressHandler struct {
	progressService service.ProgressLogService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressLogService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

// RecordLogRequest defines the expected JSON for recording a log entry.
// Measurement fields are independently optional; a rest day entry carries
// none of them and no exercise.
type RecordLogRequest struct {
	WeekID     string  `json:"weekId" binding:"required"`
	DayID      string  `json:"dayId" binding:"required"`
	ExerciseID *string `json:"exerciseId"`

	Weight      *float64 `json:"weight"`
	Reps        *int     `json:"reps"`
	TimeSeconds *int     `json:"timeSeconds"`
	RPE         *float64 `json:"rpe"`

	IsRestDay       bool       `json:"isRestDay"`
	WorkoutDuration *int       `json:"workoutDuration"`
	CompletedAt     *time.Time `json:"completedAt"`
}

// ProgressLogResponse is the DTO for returning a log entry.
type ProgressLogResponse struct {
	ID         string  `json:"id"`
	ProgramID  string  `json:"programId"`
	UserID     string  `json:"userId"`
	WeekID     string  `json:"weekId"`
	DayID      string  `json:"dayId"`
	ExerciseID *string `json:"exerciseId,omitempty"`

	Weight      *float64 `json:"weight,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	TimeSeconds *int     `json:"timeSeconds,omitempty"`
	RPE         *float64 `json:"rpe,omitempty"`

	IsRestDay       bool      `json:"isRestDay"`
	WorkoutDuration *int      `json:"workoutDuration,omitempty"`
	CompletedAt     time.Time `json:"completedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MapProgressLogToResponse converts a domain.ProgressLog to its DTO.
func MapProgressLogToResponse(l *domain.ProgressLog) ProgressLogResponse {
	if l == nil {
		return ProgressLogResponse{}
	}
	resp := ProgressLogResponse{
		ID:              l.ID.Hex(),
		ProgramID:       l.ProgramID.Hex(),
		UserID:          l.UserID.Hex(),
		WeekID:          l.WeekID.Hex(),
		DayID:           l.DayID.Hex(),
		Weight:          l.Weight,
		Reps:            l.Reps,
		TimeSeconds:     l.TimeSeconds,
		RPE:             l.RPE,
		IsRestDay:       l.IsRestDay,
		WorkoutDuration: l.WorkoutDuration,
		CompletedAt:     l.CompletedAt,
		CreatedAt:       l.CreatedAt,
	}
	if l.ExerciseID != nil {
		exHex := l.ExerciseID.Hex()
		resp.ExerciseID = &exHex
	}
	return resp
}

// MapProgressLogsToResponse converts a slice of logs to DTOs.
func MapProgressLogsToResponse(logs []domain.ProgressLog) []ProgressLogResponse {
	responses := make([]ProgressLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapProgressLogToResponse(&logs[i])
	}
	return responses
}

// --- Handler Methods ---

// RecordLog handles POST /programs/:programId/logs.
func (h *ProgressHandler) RecordLog(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	var req RecordLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	weekID, err := primitive.ObjectIDFromHex(req.WeekID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid week ID format")
		return
	}
	dayID, err := primitive.ObjectIDFromHex(req.DayID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format")
		return
	}
	var exerciseID *primitive.ObjectID
	if req.ExerciseID != nil {
		exID, err := primitive.ObjectIDFromHex(*req.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
			return
		}
		exerciseID = &exID
	}

	log, err := h.progressService.RecordLog(c.Request.Context(), service.RecordLogParams{
		ProgramID:       programID,
		UserID:          userID,
		WeekID:          weekID,
		DayID:           dayID,
		ExerciseID:      exerciseID,
		Weight:          req.Weight,
		Reps:            req.Reps,
		TimeSeconds:     req.TimeSeconds,
		RPE:             req.RPE,
		IsRestDay:       req.IsRestDay,
		WorkoutDuration: req.WorkoutDuration,
		CompletedAt:     req.CompletedAt,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapProgressLogToResponse(log))
}

// GetProgramLogs handles GET /programs/:programId/logs, oldest first.
func (h *ProgressHandler) GetProgramLogs(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	logs, err := h.progressService.LogsForProgram(c.Request.Context(), programID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapProgressLogsToResponse(logs))
}

// GetDayLogs handles GET /programs/:programId/weeks/:weekId/days/:dayId/logs.
func (h *ProgressHandler) GetDayLogs(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	weekID, ok := pathObjectID(c, "weekId")
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	logs, err := h.progressService.LogsForDay(c.Request.Context(), programID, weekID, dayID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapProgressLogsToResponse(logs))
}
