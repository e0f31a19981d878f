package repository

import (
	"context"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for the shared exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByCreatorID(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgramRepository owns program documents, including the progression
// pointer and the monotonic week-order allocator.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Program, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Program, error)
	// NextWeekOrder atomically increments and returns the program's week
	// order sequence. Orders are monotonic and never reused.
	NextWeekOrder(ctx context.Context, programID primitive.ObjectID) (int, error)
	// SetPointer writes current week and current day in a single update so a
	// concurrent reader never observes a split pair.
	SetPointer(ctx context.Context, programID, weekID, dayID primitive.ObjectID) error
	// IncrementCompletedWeeks bumps completedWeeks by one, capped at
	// totalWeeks, and returns the updated program.
	IncrementCompletedWeeks(ctx context.Context, programID primitive.ObjectID) (*domain.Program, error)
	// ClearPointerForWeek unsets both pointers if they currently reference
	// the given week; a no-op otherwise. ClearPointerForDay is the same for
	// a day. Both keep the pointer pair from dangling after removals.
	ClearPointerForWeek(ctx context.Context, programID, weekID primitive.ObjectID) error
	ClearPointerForDay(ctx context.Context, programID, dayID primitive.ObjectID) error
	// UpdateStatus transitions status from one value to another; returns
	// ErrNotFound if the program is not currently in the from status.
	UpdateStatus(ctx context.Context, programID primitive.ObjectID, from, to domain.ProgramStatus) error
	Delete(ctx context.Context, programID primitive.ObjectID) error
}

// WeekRepository defines the interface for program weeks.
type WeekRepository interface {
	Create(ctx context.Context, week *domain.ProgramWeek) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramWeek, error)
	// GetByProgramID returns weeks ordered ascending by order.
	GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgramWeek, error)
	// NextAfter returns the week with the smallest order strictly greater
	// than the given order, or ErrNotFound if none exists.
	NextAfter(ctx context.Context, programID primitive.ObjectID, order int) (*domain.ProgramWeek, error)
	// NextDayOrder atomically increments and returns the week's day order
	// sequence.
	NextDayOrder(ctx context.Context, weekID primitive.ObjectID) (int, error)
	Delete(ctx context.Context, id, programID primitive.ObjectID) error
	DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error
}

// DayRepository defines the interface for program days.
type DayRepository interface {
	Create(ctx context.Context, day *domain.ProgramDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramDay, error)
	// GetByWeekID returns days ordered ascending by order.
	GetByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]domain.ProgramDay, error)
	// FirstByWeekID returns the lowest-order day of a week, or ErrNotFound.
	FirstByWeekID(ctx context.Context, weekID primitive.ObjectID) (*domain.ProgramDay, error)
	Delete(ctx context.Context, id, weekID primitive.ObjectID) error
	// DeleteByWeekID and DeleteByProgramID remove days in bulk and return the
	// removed day IDs so assignment cascades can follow.
	DeleteByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// DayExerciseRepository defines the interface for day-exercise assignments.
type DayExerciseRepository interface {
	// Upsert creates or replaces the assignment for (dayId, exerciseId).
	Upsert(ctx context.Context, assignment *domain.DayExercise) (*domain.DayExercise, error)
	GetByDayAndExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID) (*domain.DayExercise, error)
	// GetByDayID returns assignments in creation order.
	GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.DayExercise, error)
	Delete(ctx context.Context, dayID, exerciseID primitive.ObjectID) error
	DeleteByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) error
	CountByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (int64, error)
}

// ProgressLogRepository defines the interface for progress logs.
type ProgressLogRepository interface {
	Create(ctx context.Context, log *domain.ProgressLog) (primitive.ObjectID, error)
	// GetByProgramID returns logs ordered by completedAt ascending.
	GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.ProgressLog, error)
	// GetByDay is the same ordering filtered to one (week, day) coordinate.
	GetByDay(ctx context.Context, programID, weekID, dayID primitive.ObjectID) ([]domain.ProgressLog, error)
	CountByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (int64, error)
	DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error
}

// CommentRepository defines the interface for program comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	// GetTopLevelByProgramID returns parentless comments, creation ascending.
	GetTopLevelByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Comment, error)
	// GetRepliesByProgramID returns all replies on a program, creation ascending.
	GetRepliesByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Comment, error)
	DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error
}

// QuestionRepository defines the interface for the questionnaire question
// catalog.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.QuestionnaireQuestion) (primitive.ObjectID, error)
	GetByKey(ctx context.Context, key string) (*domain.QuestionnaireQuestion, error)
	// GetAll returns the catalog ordered ascending by order.
	GetAll(ctx context.Context) ([]domain.QuestionnaireQuestion, error)
	Update(ctx context.Context, question *domain.QuestionnaireQuestion) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// QuestionnaireRepository defines the interface for client questionnaires.
type QuestionnaireRepository interface {
	Create(ctx context.Context, questionnaire *domain.Questionnaire) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Questionnaire, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) (*domain.Questionnaire, error)
	// SetAnswer writes one keyed answer while the questionnaire is still
	// pending; returns ErrNotFound if it is not editable.
	SetAnswer(ctx context.Context, id primitive.ObjectID, key, value string) error
	// UpdateStatus transitions status from one value to another; returns
	// ErrNotFound if the questionnaire is not currently in the from status.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to domain.QuestionnaireStatus) error
}
