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

// ProgressionService tracks "where the client currently is" in a program.
// The pointer is only ever moved by explicit action, never inferred, and the
// (week, day) pair is always written together.
type ProgressionService interface {
	// AdvanceTo positions the pointer on an explicit (week, day) coordinate.
	AdvanceTo(ctx context.Context, programID, weekID, dayID primitive.ObjectID) (*domain.Program, error)
	// CompleteWeek increments completedWeeks (capped at totalWeeks) and, if a
	// next week exists in order, advances the pointer to its first day. It
	// never flips program status; CompleteProgram is a separate action.
	CompleteWeek(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error)
	// CompleteProgram transitions an active program to completed.
	CompleteProgram(ctx context.Context, programID primitive.ObjectID) error
	// CancelProgram transitions an active program to cancelled.
	CancelProgram(ctx context.Context, programID primitive.ObjectID) error
}

// progressionService implements the ProgressionService interface.
type progressionService struct {
	programRepo repository.ProgramRepository
	weekRepo    repository.WeekRepository
	dayRepo     repository.DayRepository
	logger      *zap.SugaredLogger
}

// NewProgressionService creates a new instance of progressionService.
func NewProgressionService(
	programRepo repository.ProgramRepository,
	weekRepo repository.WeekRepository,
	dayRepo repository.DayRepository,
	logger *zap.SugaredLogger,
) ProgressionService {
	return &progressionService{
		programRepo: programRepo,
		weekRepo:    weekRepo,
		dayRepo:     dayRepo,
		logger:      logger,
	}
}

// AdvanceTo validates that week belongs to program and day belongs to week,
// then sets both pointers in a single write.
func (s *progressionService) AdvanceTo(ctx context.Context, programID, weekID, dayID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.getProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.Status != domain.ProgramActive {
		return nil, fmt.Errorf("%w: program is %s", domain.ErrInvalidTransition, program.Status)
	}

	week, err := s.weekRepo.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: week %s does not exist", domain.ErrInvalidTransition, weekID.Hex())
		}
		return nil, err
	}
	if week.ProgramID != programID {
		return nil, fmt.Errorf("%w: week %s does not belong to program %s", domain.ErrInvalidTransition, weekID.Hex(), programID.Hex())
	}

	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: day %s does not exist", domain.ErrInvalidTransition, dayID.Hex())
		}
		return nil, err
	}
	if day.WeekID != weekID {
		return nil, fmt.Errorf("%w: day %s does not belong to week %s", domain.ErrInvalidTransition, dayID.Hex(), weekID.Hex())
	}

	if err := s.programRepo.SetPointer(ctx, programID, weekID, dayID); err != nil {
		return nil, err
	}
	program.CurrentWeekID = &weekID
	program.CurrentDayID = &dayID
	return program, nil
}

// CompleteWeek records one more completed week and moves the pointer to the
// next week's first day when there is one. With no next week the pointer
// stays where it is and the caller decides whether to complete the program.
func (s *progressionService) CompleteWeek(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.getProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	if program.Status != domain.ProgramActive {
		return nil, fmt.Errorf("%w: program is %s", domain.ErrInvalidTransition, program.Status)
	}

	updated, err := s.programRepo.IncrementCompletedWeeks(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, programID.Hex())
		}
		return nil, err
	}

	// An unset pointer means the client has not started: "next" is the first
	// week in order. Orders are 1-based so 0 sorts before every real order.
	currentOrder := 0
	if program.CurrentWeekID != nil {
		currentWeek, err := s.weekRepo.GetByID(ctx, *program.CurrentWeekID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if currentWeek != nil {
			currentOrder = currentWeek.Order
		}
	}

	nextWeek, err := s.weekRepo.NextAfter(ctx, programID, currentOrder)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Last week: pointer stays on the last day.
			return updated, nil
		}
		return nil, err
	}

	firstDay, err := s.dayRepo.FirstByWeekID(ctx, nextWeek.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Next week has no days yet; a pointer with no day half would be
			// a split pair, so it stays put.
			s.logger.Warnw("next week has no days, pointer not advanced",
				"program", programID.Hex(), "week", nextWeek.ID.Hex())
			return updated, nil
		}
		return nil, err
	}

	if err := s.programRepo.SetPointer(ctx, programID, nextWeek.ID, firstDay.ID); err != nil {
		return nil, err
	}
	updated.CurrentWeekID = &nextWeek.ID
	updated.CurrentDayID = &firstDay.ID
	return updated, nil
}

// CompleteProgram transitions active -> completed.
func (s *progressionService) CompleteProgram(ctx context.Context, programID primitive.ObjectID) error {
	return s.transition(ctx, programID, domain.ProgramActive, domain.ProgramCompleted)
}

// CancelProgram transitions active -> cancelled.
func (s *progressionService) CancelProgram(ctx context.Context, programID primitive.ObjectID) error {
	return s.transition(ctx, programID, domain.ProgramActive, domain.ProgramCancelled)
}

func (s *progressionService) transition(ctx context.Context, programID primitive.ObjectID, from, to domain.ProgramStatus) error {
	err := s.programRepo.UpdateStatus(ctx, programID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: program %s is not %s", domain.ErrInvalidTransition, programID.Hex(), from)
		}
		return err
	}
	return nil
}

func (s *progressionService) getProgram(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: program %s", domain.ErrNotFound, programID.Hex())
		}
		return nil, err
	}
	return program, nil
}
