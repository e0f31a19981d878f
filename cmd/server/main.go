package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/api"
	"github.com/Sivtheng/LiftNote-sub001/internal/config"
	"github.com/Sivtheng/LiftNote-sub001/internal/logger"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository/mongo"
	"github.com/Sivtheng/LiftNote-sub001/internal/service"
	"github.com/Sivtheng/LiftNote-sub001/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title LiftNote API
// @version 1.0
// @description API for coach-authored training programs, progress logging and client communication.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck
	zlog.Info("Starting LiftNote server...")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		zlog.Fatalw("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		zlog.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			zlog.Errorw("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	zlog.Infow("Database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs"))
		mongo.EnsureWeekIndexes(ctx, appDB.Collection("program_weeks"))
		mongo.EnsureDayIndexes(ctx, appDB.Collection("program_days"))
		mongo.EnsureDayExerciseIndexes(ctx, appDB.Collection("program_day_exercises"))
		mongo.EnsureProgressLogIndexes(ctx, appDB.Collection("progress_logs"))
		mongo.EnsureCommentIndexes(ctx, appDB.Collection("comments"))
		mongo.EnsureQuestionIndexes(ctx, appDB.Collection("questionnaire_questions"))
		mongo.EnsureQuestionnaireIndexes(ctx, appDB.Collection("questionnaires"))
		zlog.Info("Index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, zlog)
	if err != nil {
		zlog.Fatalw("Failed to initialize S3 storage", "error", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	weekRepo := mongo.NewMongoWeekRepository(appDB)
	dayRepo := mongo.NewMongoDayRepository(appDB)
	dayExRepo := mongo.NewMongoDayExerciseRepository(appDB)
	logRepo := mongo.NewMongoProgressLogRepository(appDB)
	commentRepo := mongo.NewMongoCommentRepository(appDB)
	questionRepo := mongo.NewMongoQuestionRepository(appDB)
	questionnaireRepo := mongo.NewMongoQuestionnaireRepository(appDB)

	// --- Initialize Services ---
	notifier := service.NewLogNotifier(zlog)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	programService := service.NewProgramService(programRepo, weekRepo, dayRepo, dayExRepo, exerciseRepo, logRepo, commentRepo, userRepo, notifier, zlog)
	progressionService := service.NewProgressionService(programRepo, weekRepo, dayRepo, zlog)
	progressService := service.NewProgressLogService(logRepo, programRepo, weekRepo, dayRepo, dayExRepo, notifier, zlog)
	commentService := service.NewCommentService(commentRepo, programRepo, fileStorage, notifier, zlog)
	questionnaireService := service.NewQuestionnaireService(questionRepo, questionnaireRepo, userRepo)
	exerciseService := service.NewExerciseService(exerciseRepo, dayExRepo, logRepo, userRepo)

	// --- Initialize Gin Engine ---
	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		programService,
		progressionService,
		progressService,
		commentService,
		questionnaireService,
		exerciseService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Infow("Server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		zlog.Fatalw("Server forced to shutdown", "error", err)
	}

	zlog.Info("Server exiting")
}
