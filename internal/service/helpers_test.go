package service

import (
	"context"
	"testing"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fixture bundles the in-memory repositories, the services under test and a
// ready coach/client pair.
type fixture struct {
	userRepo          *fakeUserRepo
	exerciseRepo      *fakeExerciseRepo
	programRepo       *fakeProgramRepo
	weekRepo          *fakeWeekRepo
	dayRepo           *fakeDayRepo
	dayExRepo         *fakeDayExerciseRepo
	logRepo           *fakeProgressLogRepo
	commentRepo       *fakeCommentRepo
	questionRepo      *fakeQuestionRepo
	questionnaireRepo *fakeQuestionnaireRepo

	programs       ProgramService
	progression    ProgressionService
	progress       ProgressLogService
	comments       CommentService
	questionnaires QuestionnaireService
	exercises      ExerciseService

	coach  *domain.User
	client *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		userRepo:          newFakeUserRepo(),
		exerciseRepo:      newFakeExerciseRepo(),
		programRepo:       newFakeProgramRepo(),
		weekRepo:          newFakeWeekRepo(),
		dayRepo:           newFakeDayRepo(),
		dayExRepo:         newFakeDayExerciseRepo(),
		logRepo:           newFakeProgressLogRepo(),
		commentRepo:       newFakeCommentRepo(),
		questionRepo:      newFakeQuestionRepo(),
		questionnaireRepo: newFakeQuestionnaireRepo(),
	}

	logger := zap.NewNop().Sugar()
	notifier := NewLogNotifier(logger)
	f.programs = NewProgramService(f.programRepo, f.weekRepo, f.dayRepo, f.dayExRepo, f.exerciseRepo, f.logRepo, f.commentRepo, f.userRepo, notifier, logger)
	f.progression = NewProgressionService(f.programRepo, f.weekRepo, f.dayRepo, logger)
	f.progress = NewProgressLogService(f.logRepo, f.programRepo, f.weekRepo, f.dayRepo, f.dayExRepo, notifier, logger)
	f.comments = NewCommentService(f.commentRepo, f.programRepo, nil, notifier, logger)
	f.questionnaires = NewQuestionnaireService(f.questionRepo, f.questionnaireRepo, f.userRepo)
	f.exercises = NewExerciseService(f.exerciseRepo, f.dayExRepo, f.logRepo, f.userRepo)

	f.coach = f.addUser(t, "Coach Carter", "coach@liftnote.test", domain.RoleCoach)
	f.client = f.addUser(t, "Client Reed", "client@liftnote.test", domain.RoleClient)
	return f
}

func (f *fixture) addUser(t *testing.T, name, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email, Role: role}
	_, err := f.userRepo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func (f *fixture) createProgram(t *testing.T, totalWeeks int) *domain.Program {
	t.Helper()
	program, err := f.programs.CreateProgram(context.Background(), f.coach.ID, f.client.ID, "Strength Block", "", totalWeeks)
	require.NoError(t, err)
	return program
}

func (f *fixture) addWeek(t *testing.T, programID primitive.ObjectID, name string) *domain.ProgramWeek {
	t.Helper()
	week, err := f.programs.AddWeek(context.Background(), programID, name)
	require.NoError(t, err)
	return week
}

func (f *fixture) addDay(t *testing.T, weekID primitive.ObjectID, name string) *domain.ProgramDay {
	t.Helper()
	day, err := f.programs.AddDay(context.Background(), weekID, name)
	require.NoError(t, err)
	return day
}

func (f *fixture) addExercise(t *testing.T, name string) *domain.Exercise {
	t.Helper()
	exercise, err := f.exercises.CreateExercise(context.Background(), f.coach.ID, name, "", "")
	require.NoError(t, err)
	return exercise
}
