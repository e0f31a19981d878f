package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrLogAccessDenied = errors.New("user is not a party to this program")
)

// RecordLogParams carries one log entry as supplied by the caller.
// Measurement fields are independently optional. CompletedAt nil means
// "now"; an explicit value supports offline-entered logs.
type RecordLogParams struct {
	ProgramID  primitive.ObjectID
	UserID     primitive.ObjectID
	WeekID     primitive.ObjectID
	DayID      primitive.ObjectID
	ExerciseID *primitive.ObjectID

	Weight      *float64
	Reps        *int
	TimeSeconds *int
	RPE         *float64

	IsRestDay       bool
	WorkoutDuration *int
	CompletedAt     *time.Time
}

// ProgressLogService records actual performed values against program
// coordinates, validated against the program structure.
type ProgressLogService interface {
	RecordLog(ctx context.Context, params RecordLogParams) (*domain.ProgressLog, error)
	// LogsForProgram returns all logs ordered by completedAt ascending.
	LogsForProgram(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgressLog, error)
	// LogsForDay is the day-scoped projection of the same ordering.
	LogsForDay(ctx context.Context, programID, weekID, dayID primitive.ObjectID) ([]domain.ProgressLog, error)
}

// progressLogService implements the ProgressLogService interface.
type progressLogService struct {
	logRepo     repository.ProgressLogRepository
	programRepo repository.ProgramRepository
	weekRepo    repository.WeekRepository
	dayRepo     repository.DayRepository
	dayExRepo   repository.DayExerciseRepository
	notifier    Notifier
	logger      *zap.SugaredLogger
}

// NewProgressLogService creates a new instance of progressLogService.
func NewProgressLogService(
	logRepo repository.ProgressLogRepository,
	programRepo repository.ProgramRepository,
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	dayExRepo repository.DayExerciseRepository,
	notifier Notifier,
	logger *zap.SugaredLogger,
) ProgressLogService {
	return &progressLogService{
		logRepo:     logRepo,
		programRepo: programRepo,
		weekRepo:    weekRepo,
		dayRepo:     dayRepo,
		dayExRepo:   dayExRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// RecordLog validates and stores one performance record or rest day marker.
func (s *progressLogService) RecordLog(ctx context.Context, params RecordLogParams) (*domain.ProgressLog, error) {
	program, err := s.programRepo.GetByID(ctx, params.ProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, params.ProgramID.Hex())
		}
		return nil, err
	}
	// Logs come from the client, or from the coach on the client's behalf.
	if params.UserID != program.ClientID && params.UserID != program.CoachID {
		return nil, ErrLogAccessDenied
	}

	// Coordinates must form a real chain in the structure store.
	week, err := s.weekRepo.GetByID(ctx, params.WeekID)
	if err != nil || week.ProgramID != params.ProgramID {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: week %s in program %s", domain.ErrNotFound, params.WeekID.Hex(), params.ProgramID.Hex())
	}
	day, err := s.dayRepo.GetByID(ctx, params.DayID)
	if err != nil || day.WeekID != params.WeekID {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: day %s in week %s", domain.ErrNotFound, params.DayID.Hex(), params.WeekID.Hex())
	}

	log := &domain.ProgressLog{
		ProgramID:       params.ProgramID,
		UserID:          params.UserID,
		WeekID:          params.WeekID,
		DayID:           params.DayID,
		Weight:          params.Weight,
		Reps:            params.Reps,
		TimeSeconds:     params.TimeSeconds,
		RPE:             params.RPE,
		IsRestDay:       params.IsRestDay,
		WorkoutDuration: params.WorkoutDuration,
	}

	if params.IsRestDay {
		// A rest day is the absence of performance: no exercise, no numbers.
		if log.HasMeasurements() {
			return nil, fmt.Errorf("%w: measurements supplied on a rest day", domain.ErrRestDayMeasurements)
		}
		if params.ExerciseID != nil {
			return nil, fmt.Errorf("%w: exercise supplied on a rest day", domain.ErrRestDayMeasurements)
		}
	} else {
		if params.ExerciseID == nil {
			return nil, fmt.Errorf("%w: exercise is required for a non-rest log", domain.ErrUnassignedExercise)
		}
		if _, err := s.dayExRepo.GetByDayAndExercise(ctx, params.DayID, *params.ExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: exercise %s on day %s", domain.ErrUnassignedExercise, params.ExerciseID.Hex(), params.DayID.Hex())
			}
			return nil, err
		}
		log.ExerciseID = params.ExerciseID
		if !log.HasMeasurements() {
			return nil, fmt.Errorf("%w: at least one of weight/reps/time/rpe is required", domain.ErrEmptyLog)
		}
	}

	now := time.Now().UTC()
	if params.CompletedAt != nil {
		if params.CompletedAt.After(now) {
			return nil, fmt.Errorf("%w: completedAt %s is after %s", domain.ErrInvalidTimestamp, params.CompletedAt.Format(time.RFC3339), now.Format(time.RFC3339))
		}
		log.CompletedAt = params.CompletedAt.UTC()
	} else {
		log.CompletedAt = now
	}

	logID, err := s.logRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = logID

	// Tell the coach, unless the coach logged on the client's behalf.
	if params.UserID == program.ClientID {
		dispatchAsync(s.notifier, s.logger, Notification{
			RecipientID: program.CoachID,
			Title:       "Workout logged",
			Body:        fmt.Sprintf("A new log was recorded on %q", program.Title),
			Data: map[string]string{
				"programId": program.ID.Hex(),
				"logId":     logID.Hex(),
			},
		})
	}
	return log, nil
}

// LogsForProgram returns all of a program's logs, completedAt ascending.
func (s *progressLogService) LogsForProgram(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgressLog, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, programID.Hex())
		}
		return nil, err
	}
	return s.logRepo.GetByProgramID(ctx, programID)
}

// LogsForDay returns one day's logs in the same completedAt ordering, so no
// caller ever re-sorts.
func (s *progressLogService) LogsForDay(ctx context.Context, programID, weekID, dayID primitive.ObjectID) ([]domain.ProgressLog, error) {
	return s.logRepo.GetByDay(ctx, programID, weekID, dayID)
}
