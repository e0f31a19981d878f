package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify this exercise")
)

// ExerciseService manages the shared exercise library.
type ExerciseService interface {
	CreateExercise(ctx context.Context, creatorID primitive.ObjectID, name, description, videoURL string) (*domain.Exercise, error)
	GetExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	GetCoachExercises(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID, name, description, videoURL string) (*domain.Exercise, error)
	// DeleteExercise refuses to remove an exercise that any assignment or
	// progress log still references, so history stays intact.
	DeleteExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	dayExRepo    repository.DayExerciseRepository
	logRepo      repository.ProgressLogRepository
	userRepo     repository.UserRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	dayExRepo repository.DayExerciseRepository,
	logRepo repository.ProgressLogRepository,
	userRepo repository.UserRepository,
) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		dayExRepo:    dayExRepo,
		logRepo:      logRepo,
		userRepo:     userRepo,
	}
}

// CreateExercise adds a movement definition to the shared library.
func (s *exerciseService) CreateExercise(ctx context.Context, creatorID primitive.ObjectID, name, description, videoURL string) (*domain.Exercise, error) {
	if name == "" {
		return nil, errors.New("exercise name is required")
	}
	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotCoach
		}
		return nil, err
	}
	if !creator.IsCoach() {
		return nil, ErrNotCoach
	}

	exercise := &domain.Exercise{
		CreatorID:   creatorID,
		Name:        name,
		Description: description,
		VideoURL:    videoURL,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExercise retrieves one exercise definition.
func (s *exerciseService) GetExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// GetCoachExercises retrieves all exercises created by one coach.
func (s *exerciseService) GetCoachExercises(ctx context.Context, coachID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByCreatorID(ctx, coachID)
}

// UpdateExercise rewrites an exercise the coach owns.
func (s *exerciseService) UpdateExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID, name, description, videoURL string) (*domain.Exercise, error) {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise.CreatorID != coachID {
		return nil, ErrExerciseAccessDenied
	}

	exercise.Name = name
	exercise.Description = description
	exercise.VideoURL = videoURL
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes an exercise only when nothing references it.
func (s *exerciseService) DeleteExercise(ctx context.Context, coachID, exerciseID primitive.ObjectID) error {
	exercise, err := s.GetExercise(ctx, exerciseID)
	if err != nil {
		return err
	}
	if exercise.CreatorID != coachID {
		return ErrExerciseAccessDenied
	}

	assignments, err := s.dayExRepo.CountByExerciseID(ctx, exerciseID)
	if err != nil {
		return err
	}
	logs, err := s.logRepo.CountByExerciseID(ctx, exerciseID)
	if err != nil {
		return err
	}
	if assignments > 0 || logs > 0 {
		return fmt.Errorf("%w: exercise is referenced by %d assignments and %d logs", domain.ErrConflict, assignments, logs)
	}

	return s.exerciseRepo.Delete(ctx, exerciseID)
}
