package api

import (
	"net/http"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the router. Structure mutations are
// coach-only; reads and logging are open to both parties (the services
// enforce the party check per program).
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	programService service.ProgramService,
	progressionService service.ProgressionService,
	progressService service.ProgressLogService,
	commentService service.CommentService,
	questionnaireService service.QuestionnaireService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	programHandler := NewProgramHandler(programService)
	progressionHandler := NewProgressionHandler(progressionService)
	progressHandler := NewProgressHandler(progressService)
	commentHandler := NewCommentHandler(commentService)
	questionnaireHandler := NewQuestionnaireHandler(questionnaireService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)
	coachOnly := RoleMiddleware(domain.RoleCoach, domain.RoleAdmin)
	adminOnly := RoleMiddleware(domain.RoleAdmin)
	clientOnly := RoleMiddleware(domain.RoleClient)
	clientOrAdmin := RoleMiddleware(domain.RoleClient, domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Exercise Library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", coachOnly, exerciseHandler.CreateExercise)
			exerciseGroup.GET("", coachOnly, exerciseHandler.GetMyExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:exerciseId", coachOnly, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", coachOnly, exerciseHandler.DeleteExercise)
		}

		// --- Programs ---
		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", coachOnly, programHandler.CreateProgram)
			programGroup.GET("", programHandler.GetMyPrograms)
			programGroup.GET("/:programId", programHandler.GetProgram)
			programGroup.DELETE("/:programId", coachOnly, programHandler.DeleteProgram)

			programGroup.POST("/:programId/weeks", coachOnly, programHandler.AddWeek)
			programGroup.GET("/:programId/weeks", programHandler.GetWeeks)
			programGroup.DELETE("/:programId/weeks/:weekId", coachOnly, programHandler.RemoveWeek)

			// --- Progression ---
			programGroup.PUT("/:programId/pointer", progressionHandler.Advance)
			programGroup.POST("/:programId/complete-week", progressionHandler.CompleteWeek)
			programGroup.POST("/:programId/complete", coachOnly, progressionHandler.CompleteProgram)
			programGroup.POST("/:programId/cancel", coachOnly, progressionHandler.CancelProgram)

			// --- Progress Logs ---
			programGroup.POST("/:programId/logs", progressHandler.RecordLog)
			programGroup.GET("/:programId/logs", progressHandler.GetProgramLogs)
			programGroup.GET("/:programId/weeks/:weekId/days/:dayId/logs", progressHandler.GetDayLogs)

			// --- Comments ---
			programGroup.POST("/:programId/comments", commentHandler.PostComment)
			programGroup.GET("/:programId/comments", commentHandler.GetComments)
			programGroup.POST("/:programId/comments/media-upload", commentHandler.RequestMediaUpload)
		}

		// --- Weeks and Days ---
		weekGroup := protected.Group("/weeks")
		{
			weekGroup.POST("/:weekId/days", coachOnly, programHandler.AddDay)
			weekGroup.GET("/:weekId/days", programHandler.GetDays)
			weekGroup.DELETE("/:weekId/days/:dayId", coachOnly, programHandler.RemoveDay)
		}

		// --- Day Exercise Assignments ---
		dayGroup := protected.Group("/days")
		{
			dayGroup.PUT("/:dayId/exercises", coachOnly, programHandler.AssignExercise)
			dayGroup.GET("/:dayId/exercises", programHandler.GetAssignments)
			dayGroup.GET("/:dayId/exercises/:exerciseId", programHandler.GetAssignment)
			dayGroup.DELETE("/:dayId/exercises/:exerciseId", coachOnly, programHandler.RemoveAssignment)
		}

		// --- Questionnaires ---
		questionnaireGroup := protected.Group("/questionnaire")
		{
			questionnaireGroup.POST("/questions", adminOnly, questionnaireHandler.AddQuestion)
			questionnaireGroup.GET("/questions", questionnaireHandler.GetQuestions)
			questionnaireGroup.PUT("/questions/:questionId", adminOnly, questionnaireHandler.UpdateQuestion)
			questionnaireGroup.DELETE("/questions/:questionId", adminOnly, questionnaireHandler.DeleteQuestion)

			questionnaireGroup.POST("", clientOnly, questionnaireHandler.CreateQuestionnaire)
			questionnaireGroup.GET("", clientOnly, questionnaireHandler.GetMyQuestionnaire)
			// The service additionally checks ownership; admins may act for
			// any client.
			questionnaireGroup.PUT("/:questionnaireId/answers", clientOrAdmin, questionnaireHandler.UpsertAnswer)
			questionnaireGroup.POST("/:questionnaireId/submit", clientOrAdmin, questionnaireHandler.Submit)
			questionnaireGroup.POST("/:questionnaireId/review", coachOnly, questionnaireHandler.Review)
		}
	}
}
