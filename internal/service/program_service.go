package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"
	"github.com/Sivtheng/LiftNote-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrNotCoach = errors.New("user does not have the coach role")
)

// orderRetries bounds the retry loop on (parent, order) conflicts before the
// operation surfaces ErrConflict.
const orderRetries = 3

// ProgramService owns the program/week/day/assignment tree and its ordering
// and uniqueness invariants.
type ProgramService interface {
	CreateProgram(ctx context.Context, coachID, clientID primitive.ObjectID, title, description string, totalWeeks int) (*domain.Program, error)
	GetProgram(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error)
	GetProgramsForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.Program, error)
	GetProgramsForCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error)
	DeleteProgram(ctx context.Context, programID primitive.ObjectID) error

	AddWeek(ctx context.Context, programID primitive.ObjectID, name string) (*domain.ProgramWeek, error)
	AddDay(ctx context.Context, weekID primitive.ObjectID, name string) (*domain.ProgramDay, error)
	AssignExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID, dimensions, values []string) (*domain.DayExercise, error)
	ReadAssignment(ctx context.Context, dayID, exerciseID primitive.ObjectID) (*domain.DayExercise, error)

	RemoveWeek(ctx context.Context, programID, weekID primitive.ObjectID) error
	RemoveDay(ctx context.Context, weekID, dayID primitive.ObjectID) error
	RemoveAssignment(ctx context.Context, dayID, exerciseID primitive.ObjectID) error

	WeeksOf(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramWeek, error)
	DaysOf(ctx context.Context, weekID primitive.ObjectID) ([]domain.ProgramDay, error)
	AssignmentsOf(ctx context.Context, dayID primitive.ObjectID) ([]domain.DayExercise, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo  repository.ProgramRepository
	weekRepo     repository.WeekRepository
	dayRepo      repository.DayRepository
	dayExRepo    repository.DayExerciseRepository
	exerciseRepo repository.ExerciseRepository
	logRepo      repository.ProgressLogRepository
	commentRepo  repository.CommentRepository
	userRepo     repository.UserRepository
	notifier     Notifier
	logger       *zap.SugaredLogger
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	programRepo repository.ProgramRepository,
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	dayExRepo repository.DayExerciseRepository,
	exerciseRepo repository.ExerciseRepository,
	logRepo repository.ProgressLogRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	logger *zap.SugaredLogger,
) ProgramService {
	return &programService{
		programRepo:  programRepo,
		weekRepo:     weekRepo,
		dayRepo:      dayRepo,
		dayExRepo:    dayExRepo,
		exerciseRepo: exerciseRepo,
		logRepo:      logRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateProgram creates a new active program for a coach-client pair.
func (s *programService) CreateProgram(ctx context.Context, coachID, clientID primitive.ObjectID, title, description string, totalWeeks int) (*domain.Program, error) {
	if coachID == primitive.NilObjectID || clientID == primitive.NilObjectID || title == "" {
		return nil, errors.New("coach ID, client ID, and title are required")
	}
	if totalWeeks <= 0 {
		return nil, errors.New("total weeks must be positive")
	}

	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotCoach
		}
		return nil, err
	}
	if !coach.IsCoach() {
		return nil, ErrNotCoach
	}

	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s does not exist", domain.ErrInvalidClient, clientID.Hex())
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, fmt.Errorf("%w: user %s has role %s", domain.ErrInvalidClient, clientID.Hex(), client.Role)
	}

	program := &domain.Program{
		CoachID:     coachID,
		ClientID:    clientID,
		Title:       title,
		Description: description,
		Status:      domain.ProgramActive,
		TotalWeeks:  totalWeeks,
		// CompletedWeeks 0, pointers unset
	}
	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = programID

	dispatchAsync(s.notifier, s.logger, Notification{
		RecipientID: clientID,
		Title:       "New program assigned",
		Body:        fmt.Sprintf("%s assigned you the program %q", coach.Name, title),
		Data:        map[string]string{"programId": programID.Hex()},
	})
	return program, nil
}

// GetProgram retrieves a single program.
func (s *programService) GetProgram(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, programID.Hex())
		}
		return nil, err
	}
	return program, nil
}

// GetProgramsForClient retrieves all programs assigned to a client.
func (s *programService) GetProgramsForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.Program, error) {
	return s.programRepo.GetByClientID(ctx, clientID)
}

// GetProgramsForCoach retrieves all programs authored by a coach.
func (s *programService) GetProgramsForCoach(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error) {
	return s.programRepo.GetByCoachID(ctx, coachID)
}

// DeleteProgram removes a program and cascades to its weeks, days,
// assignments, logs, and comments.
func (s *programService) DeleteProgram(ctx context.Context, programID primitive.ObjectID) error {
	if _, err := s.GetProgram(ctx, programID); err != nil {
		return err
	}

	dayIDs, err := s.dayRepo.DeleteByProgramID(ctx, programID)
	if err != nil {
		return err
	}
	if err := s.dayExRepo.DeleteByDayIDs(ctx, dayIDs); err != nil {
		return err
	}
	if err := s.weekRepo.DeleteByProgramID(ctx, programID); err != nil {
		return err
	}
	if err := s.logRepo.DeleteByProgramID(ctx, programID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByProgramID(ctx, programID); err != nil {
		return err
	}
	return s.programRepo.Delete(ctx, programID)
}

// AddWeek appends a week to a program. The order comes from the program's
// monotonic sequence, so it is never reused after deletions; the unique
// (programId, order) index plus a bounded retry covers concurrent appends.
func (s *programService) AddWeek(ctx context.Context, programID primitive.ObjectID, name string) (*domain.ProgramWeek, error) {
	if name == "" {
		return nil, errors.New("week name is required")
	}
	program, err := s.GetProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.Status != domain.ProgramActive {
		return nil, fmt.Errorf("%w: program is %s, structure is frozen", domain.ErrInvalidTransition, program.Status)
	}

	for attempt := 0; attempt < orderRetries; attempt++ {
		order, err := s.programRepo.NextWeekOrder(ctx, programID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, programID.Hex())
			}
			return nil, err
		}

		week := &domain.ProgramWeek{
			ProgramID: programID,
			Name:      name,
			Order:     order,
		}
		weekID, err := s.weekRepo.Create(ctx, week)
		if err == nil {
			week.ID = weekID
			return week, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		s.logger.Warnw("week order conflict, retrying", "program", programID.Hex(), "order", order)
	}
	return nil, fmt.Errorf("%w: could not allocate week order", domain.ErrConflict)
}

// AddDay appends a day to a week, with the same ordering rule scoped to
// the week.
func (s *programService) AddDay(ctx context.Context, weekID primitive.ObjectID, name string) (*domain.ProgramDay, error) {
	if name == "" {
		return nil, errors.New("day name is required")
	}
	week, err := s.getWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	program, err := s.GetProgram(ctx, week.ProgramID)
	if err != nil {
		return nil, err
	}
	if program.Status != domain.ProgramActive {
		return nil, fmt.Errorf("%w: program is %s, structure is frozen", domain.ErrInvalidTransition, program.Status)
	}

	for attempt := 0; attempt < orderRetries; attempt++ {
		order, err := s.weekRepo.NextDayOrder(ctx, weekID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: week %s", domain.ErrNotFound, weekID.Hex())
			}
			return nil, err
		}

		day := &domain.ProgramDay{
			WeekID:    weekID,
			ProgramID: week.ProgramID,
			Name:      name,
			Order:     order,
		}
		dayID, err := s.dayRepo.Create(ctx, day)
		if err == nil {
			day.ID = dayID
			return day, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		s.logger.Warnw("day order conflict, retrying", "week", weekID.Hex(), "order", order)
	}
	return nil, fmt.Errorf("%w: could not allocate day order", domain.ErrConflict)
}

// AssignExercise creates or replaces the prescription for one (day, exercise)
// pair. Repeated identical calls are idempotent.
func (s *programService) AssignExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID, dimensions, values []string) (*domain.DayExercise, error) {
	targets, err := domain.NewTargetSpec(dimensions, values)
	if err != nil {
		return nil, err
	}

	if _, err := s.getDay(ctx, dayID); err != nil {
		return nil, err
	}
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: exercise %s", domain.ErrNotFound, exerciseID.Hex())
		}
		return nil, err
	}

	assignment := &domain.DayExercise{
		DayID:      dayID,
		ExerciseID: exerciseID,
		Targets:    targets,
	}
	return s.dayExRepo.Upsert(ctx, assignment)
}

// ReadAssignment retrieves the prescription for one (day, exercise) pair.
func (s *programService) ReadAssignment(ctx context.Context, dayID, exerciseID primitive.ObjectID) (*domain.DayExercise, error) {
	assignment, err := s.dayExRepo.GetByDayAndExercise(ctx, dayID, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no assignment for day %s exercise %s", domain.ErrNotFound, dayID.Hex(), exerciseID.Hex())
		}
		return nil, err
	}
	return assignment, nil
}

// RemoveWeek deletes a week and cascades to its days and their assignments.
// Fails with NotFound if the week does not belong to the stated program.
func (s *programService) RemoveWeek(ctx context.Context, programID, weekID primitive.ObjectID) error {
	if err := s.weekRepo.Delete(ctx, weekID, programID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: week %s in program %s", domain.ErrNotFound, weekID.Hex(), programID.Hex())
		}
		return err
	}

	dayIDs, err := s.dayRepo.DeleteByWeekID(ctx, weekID)
	if err != nil {
		return err
	}
	if err := s.dayExRepo.DeleteByDayIDs(ctx, dayIDs); err != nil {
		return err
	}
	// A pointer referencing the removed week would dangle.
	return s.programRepo.ClearPointerForWeek(ctx, programID, weekID)
}

// RemoveDay deletes a day and cascades to its assignments. Fails with
// NotFound if the day does not belong to the stated week.
func (s *programService) RemoveDay(ctx context.Context, weekID, dayID primitive.ObjectID) error {
	day, err := s.getDay(ctx, dayID)
	if err != nil {
		return err
	}
	if err := s.dayRepo.Delete(ctx, dayID, weekID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: day %s in week %s", domain.ErrNotFound, dayID.Hex(), weekID.Hex())
		}
		return err
	}
	if err := s.dayExRepo.DeleteByDayIDs(ctx, []primitive.ObjectID{dayID}); err != nil {
		return err
	}
	return s.programRepo.ClearPointerForDay(ctx, day.ProgramID, dayID)
}

// RemoveAssignment deletes the assignment for one (day, exercise) pair.
func (s *programService) RemoveAssignment(ctx context.Context, dayID, exerciseID primitive.ObjectID) error {
	err := s.dayExRepo.Delete(ctx, dayID, exerciseID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: no assignment for day %s exercise %s", domain.ErrNotFound, dayID.Hex(), exerciseID.Hex())
	}
	return err
}

// WeeksOf returns the program's weeks, ascending by order.
func (s *programService) WeeksOf(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramWeek, error) {
	if _, err := s.GetProgram(ctx, programID); err != nil {
		return nil, err
	}
	return s.weekRepo.GetByProgramID(ctx, programID)
}

// DaysOf returns the week's days, ascending by order.
func (s *programService) DaysOf(ctx context.Context, weekID primitive.ObjectID) ([]domain.ProgramDay, error) {
	if _, err := s.getWeek(ctx, weekID); err != nil {
		return nil, err
	}
	return s.dayRepo.GetByWeekID(ctx, weekID)
}

// AssignmentsOf returns the day's assignments in creation order.
func (s *programService) AssignmentsOf(ctx context.Context, dayID primitive.ObjectID) ([]domain.DayExercise, error) {
	if _, err := s.getDay(ctx, dayID); err != nil {
		return nil, err
	}
	return s.dayExRepo.GetByDayID(ctx, dayID)
}

func (s *programService) getWeek(ctx context.Context, weekID primitive.ObjectID) (*domain.ProgramWeek, error) {
	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: week %s", domain.ErrNotFound, weekID.Hex())
		}
		return nil, err
	}
	return week, nil
}

func (s *programService) getDay(ctx context.Context, dayID primitive.ObjectID) (*domain.ProgramDay, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: day %s", domain.ErrNotFound, dayID.Hex())
		}
		return nil, err
	}
	return day, nil
}
