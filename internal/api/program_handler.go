package api

import (
	"net/http"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

// CreateProgramRequest defines the expected JSON for creating a program.
type CreateProgramRequest struct {
	ClientID    string `json:"clientId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TotalWeeks  int    `json:"totalWeeks" binding:"required,min=1"`
}

// AddWeekRequest defines the expected JSON for appending a week.
type AddWeekRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddDayRequest defines the expected JSON for appending a day.
type AddDayRequest struct {
	Name string `json:"name" binding:"required"`
}

// AssignExerciseRequest carries the target prescription as parallel lists,
// the shape clients naturally produce. The service rejects mismatched or
// duplicate dimensions.
type AssignExerciseRequest struct {
	ExerciseID string   `json:"exerciseId" binding:"required"`
	Dimensions []string `json:"dimensions" binding:"required,min=1"`
	Values     []string `json:"values" binding:"required,min=1"`
}

// ProgramResponse is the DTO for returning program details.
type ProgramResponse struct {
	ID             string               `json:"id"`
	CoachID        string               `json:"coachId"`
	ClientID       string               `json:"clientId"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Status         domain.ProgramStatus `json:"status"`
	TotalWeeks     int                  `json:"totalWeeks"`
	CompletedWeeks int                  `json:"completedWeeks"`
	CurrentWeekID  *string              `json:"currentWeekId,omitempty"`
	CurrentDayID   *string              `json:"currentDayId,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// WeekResponse is the DTO for returning week details.
type WeekResponse struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"programId"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayResponse is the DTO for returning day details.
type DayResponse struct {
	ID        string    `json:"id"`
	WeekID    string    `json:"weekId"`
	ProgramID string    `json:"programId"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// TargetEntryResponse is one prescribed dimension/value pair.
type TargetEntryResponse struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

// AssignmentResponse is the DTO for returning a day exercise assignment.
type AssignmentResponse struct {
	ID         string                `json:"id"`
	DayID      string                `json:"dayId"`
	ExerciseID string                `json:"exerciseId"`
	Targets    []TargetEntryResponse `json:"targets"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// MapProgramToResponse converts a domain.Program to ProgramResponse DTO.
func MapProgramToResponse(p *domain.Program) ProgramResponse {
	if p == nil {
		return ProgramResponse{}
	}
	resp := ProgramResponse{
		ID:             p.ID.Hex(),
		CoachID:        p.CoachID.Hex(),
		ClientID:       p.ClientID.Hex(),
		Title:          p.Title,
		Description:    p.Description,
		Status:         p.Status,
		TotalWeeks:     p.TotalWeeks,
		CompletedWeeks: p.CompletedWeeks,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.CurrentWeekID != nil {
		weekHex := p.CurrentWeekID.Hex()
		resp.CurrentWeekID = &weekHex
	}
	if p.CurrentDayID != nil {
		dayHex := p.CurrentDayID.Hex()
		resp.CurrentDayID = &dayHex
	}
	return resp
}

// MapProgramsToResponse converts a slice of domain.Program to DTOs.
func MapProgramsToResponse(programs []domain.Program) []ProgramResponse {
	responses := make([]ProgramResponse, len(programs))
	for i := range programs {
		responses[i] = MapProgramToResponse(&programs[i])
	}
	return responses
}

// MapWeekToResponse converts a domain.ProgramWeek to WeekResponse DTO.
func MapWeekToResponse(w *domain.ProgramWeek) WeekResponse {
	if w == nil {
		return WeekResponse{}
	}
	return WeekResponse{
		ID:        w.ID.Hex(),
		ProgramID: w.ProgramID.Hex(),
		Name:      w.Name,
		Order:     w.Order,
		CreatedAt: w.CreatedAt,
	}
}

// MapDayToResponse converts a domain.ProgramDay to DayResponse DTO.
func MapDayToResponse(d *domain.ProgramDay) DayResponse {
	if d == nil {
		return DayResponse{}
	}
	return DayResponse{
		ID:        d.ID.Hex(),
		WeekID:    d.WeekID.Hex(),
		ProgramID: d.ProgramID.Hex(),
		Name:      d.Name,
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
	}
}

// MapAssignmentToResponse converts a domain.DayExercise to AssignmentResponse.
func MapAssignmentToResponse(a *domain.DayExercise) AssignmentResponse {
	if a == nil {
		return AssignmentResponse{}
	}
	targets := make([]TargetEntryResponse, len(a.Targets))
	for i, entry := range a.Targets {
		targets[i] = TargetEntryResponse{
			Dimension: string(entry.Dimension),
			Value:     entry.Value,
		}
	}
	return AssignmentResponse{
		ID:         a.ID.Hex(),
		DayID:      a.DayID.Hex(),
		ExerciseID: a.ExerciseID.Hex(),
		Targets:    targets,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateProgram handles POST /programs.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	coachID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), coachID, clientID, req.Title, req.Description, req.TotalWeeks)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapProgramToResponse(program))
}

// GetProgram handles GET /programs/:programId.
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), programID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// GetMyPrograms handles GET /programs, scoped by the caller's role: coaches
// see the programs they authored, clients the ones assigned to them.
func (h *ProgramHandler) GetMyPrograms(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	roleRaw, _ := c.Get(ContextUserRoleKey)
	role, _ := roleRaw.(domain.Role)

	var programs []domain.Program
	if role == domain.RoleClient {
		programs, err = h.programService.GetProgramsForClient(c.Request.Context(), userID)
	} else {
		programs, err = h.programService.GetProgramsForCoach(c.Request.Context(), userID)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapProgramsToResponse(programs))
}

// DeleteProgram handles DELETE /programs/:programId.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), programID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddWeek handles POST /programs/:programId/weeks.
func (h *ProgramHandler) AddWeek(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	var req AddWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	week, err := h.programService.AddWeek(c.Request.Context(), programID, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapWeekToResponse(week))
}

// GetWeeks handles GET /programs/:programId/weeks.
func (h *ProgramHandler) GetWeeks(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	weeks, err := h.programService.WeeksOf(c.Request.Context(), programID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]WeekResponse, len(weeks))
	for i := range weeks {
		responses[i] = MapWeekToResponse(&weeks[i])
	}
	c.JSON(http.StatusOK, responses)
}

// RemoveWeek handles DELETE /programs/:programId/weeks/:weekId.
func (h *ProgramHandler) RemoveWeek(c *gin.Context) {
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	weekID, ok := pathObjectID(c, "weekId")
	if !ok {
		return
	}

	if err := h.programService.RemoveWeek(c.Request.Context(), programID, weekID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddDay handles POST /weeks/:weekId/days.
func (h *ProgramHandler) AddDay(c *gin.Context) {
	weekID, ok := pathObjectID(c, "weekId")
	if !ok {
		return
	}
	var req AddDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.programService.AddDay(c.Request.Context(), weekID, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapDayToResponse(day))
}

// GetDays handles GET /weeks/:weekId/days.
func (h *ProgramHandler) GetDays(c *gin.Context) {
	weekID, ok := pathObjectID(c, "weekId")
	if !ok {
		return
	}

	days, err := h.programService.DaysOf(c.Request.Context(), weekID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]DayResponse, len(days))
	for i := range days {
		responses[i] = MapDayToResponse(&days[i])
	}
	c.JSON(http.StatusOK, responses)
}

// RemoveDay handles DELETE /weeks/:weekId/days/:dayId.
func (h *ProgramHandler) RemoveDay(c *gin.Context) {
	weekID, ok := pathObjectID(c, "weekId")
	if !ok {
		return
	}
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	if err := h.programService.RemoveDay(c.Request.Context(), weekID, dayID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignExercise handles PUT /days/:dayId/exercises. Re-assigning the same
// (day, exercise) pair replaces the targets, so PUT rather than POST.
func (h *ProgramHandler) AssignExercise(c *gin.Context) {
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}
	var req AssignExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	assignment, err := h.programService.AssignExercise(c.Request.Context(), dayID, exerciseID, req.Dimensions, req.Values)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapAssignmentToResponse(assignment))
}

// GetAssignments handles GET /days/:dayId/exercises.
func (h *ProgramHandler) GetAssignments(c *gin.Context) {
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}

	assignments, err := h.programService.AssignmentsOf(c.Request.Context(), dayID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = MapAssignmentToResponse(&assignments[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetAssignment handles GET /days/:dayId/exercises/:exerciseId.
func (h *ProgramHandler) GetAssignment(c *gin.Context) {
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	assignment, err := h.programService.ReadAssignment(c.Request.Context(), dayID, exerciseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapAssignmentToResponse(assignment))
}

// RemoveAssignment handles DELETE /days/:dayId/exercises/:exerciseId.
func (h *ProgramHandler) RemoveAssignment(c *gin.Context) {
	dayID, ok := pathObjectID(c, "dayId")
	if !ok {
		return
	}
	exerciseID, ok := pathObjectID(c, "exerciseId")
	if !ok {
		return
	}

	if err := h.programService.RemoveAssignment(c.Request.Context(), dayID, exerciseID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// pathObjectID parses one hex ObjectID path parameter, aborting with 400 on
// malformed input.
func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+param+" format")
		return primitive.NilObjectID, false
	}
	return id, true
}
