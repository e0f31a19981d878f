package api

import (
	"net/http"

	"github.com/Sivtheng/LiftNote-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressionHandler holds the progression service dependency.
type ProgressionHandler struct {
	progressionService service.ProgressionService
}

// NewProgressionHandler creates a new ProgressionHandler.
func NewProgressionHandler(progressionService service.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{progressionService: progressionService}
}

// AdvanceRequest names the position the pointer should move to. Both IDs are
// required; the pointer never holds a week without a day.
type AdvanceRequest struct {
	WeekID string `json:"weekId" binding:"required"`
	DayID  string `json:"dayId" binding:"required"`
}

// Advance handles PUT /programs/:programId/pointer.
func (h *ProgressionHandler) Advance(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
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

	program, err := h.progressionService.AdvanceTo(c.Request.Context(), programID, weekID, dayID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// CompleteWeek handles POST /programs/:programId/complete-week.
func (h *ProgressionHandler) CompleteWeek(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	program, err := h.progressionService.CompleteWeek(c.Request.Context(), programID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// CompleteProgram handles POST /programs/:programId/complete.
func (h *ProgressionHandler) CompleteProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	if err := h.progressionService.CompleteProgram(c.Request.Context(), programID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CancelProgram handles POST /programs/:programId/cancel.
func (h *ProgressionHandler) CancelProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	if err := h.progressionService.CancelProgram(c.Request.Context(), programID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
