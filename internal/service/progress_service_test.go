package service

import (
	"context"
	"testing"
	"time"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type progressFixture struct {
	*fixture
	program  *domain.Program
	week     *domain.ProgramWeek
	day      *domain.ProgramDay
	exercise *domain.Exercise
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	f := newFixture(t)
	program := f.createProgram(t, 4)
	week := f.addWeek(t, program.ID, "Week 1")
	day := f.addDay(t, week.ID, "Push")
	exercise := f.addExercise(t, "Bench Press")
	_, err := f.programs.AssignExercise(context.Background(), day.ID, exercise.ID, []string{"reps", "weight"}, []string{"8-12", "60kg"})
	require.NoError(t, err)
	return &progressFixture{fixture: f, program: program, week: week, day: day, exercise: exercise}
}

func (pf *progressFixture) baseParams() RecordLogParams {
	return RecordLogParams{
		ProgramID:  pf.program.ID,
		UserID:     pf.client.ID,
		WeekID:     pf.week.ID,
		DayID:      pf.day.ID,
		ExerciseID: &pf.exercise.ID,
	}
}

func TestRecordLog_HappyPath(t *testing.T) {
	pf := newProgressFixture(t)
	params := pf.baseParams()
	weight := 62.5
	reps := 10
	params.Weight = &weight
	params.Reps = &reps

	before := time.Now().UTC()
	log, err := pf.progress.RecordLog(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, log.CompletedAt.Before(before), "default completedAt is now")
	assert.Equal(t, &weight, log.Weight)
	assert.False(t, log.IsRestDay)
}

func TestRecordLog_RestDayRejectsPerformance(t *testing.T) {
	pf := newProgressFixture(t)
	ctx := context.Background()

	// Measurements on a rest day.
	params := pf.baseParams()
	params.ExerciseID = nil
	params.IsRestDay = true
	weight := 50.0
	params.Weight = &weight
	_, err := pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrRestDayMeasurements)

	// An exercise on a rest day.
	params = pf.baseParams()
	params.IsRestDay = true
	_, err = pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrRestDayMeasurements)

	// A plain rest day, duration allowed.
	params = pf.baseParams()
	params.ExerciseID = nil
	params.IsRestDay = true
	duration := 0
	params.WorkoutDuration = &duration
	log, err := pf.progress.RecordLog(ctx, params)
	require.NoError(t, err)
	assert.True(t, log.IsRestDay)
	assert.Nil(t, log.ExerciseID)
}

func TestRecordLog_NonRestValidation(t *testing.T) {
	pf := newProgressFixture(t)
	ctx := context.Background()

	// No exercise on a performance log.
	params := pf.baseParams()
	params.ExerciseID = nil
	reps := 8
	params.Reps = &reps
	_, err := pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrUnassignedExercise)

	// An exercise that is not assigned to the day.
	unassigned := pf.addExercise(t, "Curl")
	params = pf.baseParams()
	params.ExerciseID = &unassigned.ID
	params.Reps = &reps
	_, err = pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrUnassignedExercise)

	// No measurements at all.
	params = pf.baseParams()
	_, err = pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrEmptyLog)
}

func TestRecordLog_TimestampRules(t *testing.T) {
	pf := newProgressFixture(t)
	ctx := context.Background()

	// Future timestamps are rejected.
	params := pf.baseParams()
	reps := 8
	params.Reps = &reps
	future := time.Now().Add(time.Hour)
	params.CompletedAt = &future
	_, err := pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrInvalidTimestamp)

	// Past timestamps support offline entry.
	past := time.Now().Add(-48 * time.Hour)
	params.CompletedAt = &past
	log, err := pf.progress.RecordLog(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, past.UTC(), log.CompletedAt)
}

func TestRecordLog_PartyCheck(t *testing.T) {
	pf := newProgressFixture(t)
	ctx := context.Background()

	stranger := pf.addUser(t, "Stranger", "stranger@liftnote.test", domain.RoleClient)
	params := pf.baseParams()
	params.UserID = stranger.ID
	reps := 8
	params.Reps = &reps
	_, err := pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, ErrLogAccessDenied)

	// The coach may log on the client's behalf.
	params.UserID = pf.coach.ID
	_, err = pf.progress.RecordLog(ctx, params)
	assert.NoError(t, err)
}

func TestRecordLog_CoordinatesMustChain(t *testing.T) {
	pf := newProgressFixture(t)
	ctx := context.Background()

	otherWeek := pf.addWeek(t, pf.program.ID, "Week 2")

	// Day does not belong to the stated week.
	params := pf.baseParams()
	params.WeekID = otherWeek.ID
	reps := 8
	params.Reps = &reps
	_, err := pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Week does not belong to the stated program.
	params = pf.baseParams()
	params.WeekID = primitive.NewObjectID()
	_, err = pf.progress.RecordLog(ctx, params)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogsForDay_OrderedByCompletedAt(t *testing.T) {
	pf := newProgressFixture(t)
	ctx := context.Background()
	gofakeit.Seed(42)

	for i := 0; i < 50; i++ {
		params := pf.baseParams()
		weight := gofakeit.Float64Range(20, 180)
		reps := gofakeit.Number(1, 15)
		params.Weight = &weight
		params.Reps = &reps
		completedAt := gofakeit.DateRange(time.Now().Add(-30*24*time.Hour), time.Now().Add(-time.Minute))
		params.CompletedAt = &completedAt
		_, err := pf.progress.RecordLog(ctx, params)
		require.NoError(t, err)
	}

	logs, err := pf.progress.LogsForDay(ctx, pf.program.ID, pf.week.ID, pf.day.ID)
	require.NoError(t, err)
	require.Len(t, logs, 50)
	for i := 1; i < len(logs); i++ {
		assert.False(t, logs[i].CompletedAt.Before(logs[i-1].CompletedAt),
			"logs must come back completedAt ascending")
	}

	full, err := pf.progress.LogsForProgram(ctx, pf.program.ID)
	require.NoError(t, err)
	assert.Len(t, full, 50)
}
