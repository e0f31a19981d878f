package service

import (
	"context"
	"testing"

	"github.com/Sivtheng/LiftNote-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProgram_RoleChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Only coaches author programs.
	_, err := f.programs.CreateProgram(ctx, f.client.ID, f.client.ID, "Nope", "", 4)
	assert.ErrorIs(t, err, ErrNotCoach)

	// The assignee must hold the client role.
	otherCoach := f.addUser(t, "Other Coach", "other@liftnote.test", domain.RoleCoach)
	_, err = f.programs.CreateProgram(ctx, f.coach.ID, otherCoach.ID, "Nope", "", 4)
	assert.ErrorIs(t, err, domain.ErrInvalidClient)

	program, err := f.programs.CreateProgram(ctx, f.coach.ID, f.client.ID, "Hypertrophy", "12 week block", 12)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgramActive, program.Status)
	assert.Equal(t, 0, program.CompletedWeeks)
	assert.Nil(t, program.CurrentWeekID)
	assert.Nil(t, program.CurrentDayID)
}

func TestAddWeek_OrdersAreMonotonicAcrossDeletions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)

	week1 := f.addWeek(t, program.ID, "Week 1")
	week2 := f.addWeek(t, program.ID, "Week 2")
	week3 := f.addWeek(t, program.ID, "Week 3")
	assert.Equal(t, []int{1, 2, 3}, []int{week1.Order, week2.Order, week3.Order})

	require.NoError(t, f.programs.RemoveWeek(ctx, program.ID, week2.ID))

	// A freed order is never handed out again.
	week4 := f.addWeek(t, program.ID, "Week 4")
	assert.Equal(t, 4, week4.Order)

	weeks, err := f.programs.WeeksOf(ctx, program.ID)
	require.NoError(t, err)
	var orders []int
	for _, week := range weeks {
		orders = append(orders, week.Order)
	}
	assert.Equal(t, []int{1, 3, 4}, orders)
}

func TestAddDay_OrdersAreScopedToWeek(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)
	weekA := f.addWeek(t, program.ID, "Week A")
	weekB := f.addWeek(t, program.ID, "Week B")

	dayA1 := f.addDay(t, weekA.ID, "Push")
	dayA2 := f.addDay(t, weekA.ID, "Pull")
	dayB1 := f.addDay(t, weekB.ID, "Legs")
	assert.Equal(t, 1, dayA1.Order)
	assert.Equal(t, 2, dayA2.Order)
	assert.Equal(t, 1, dayB1.Order)

	require.NoError(t, f.programs.RemoveDay(ctx, weekA.ID, dayA2.ID))
	dayA3 := f.addDay(t, weekA.ID, "Pull v2")
	assert.Equal(t, 3, dayA3.Order)
}

func TestAddWeek_RetriesOrderConflicts(t *testing.T) {
	f := newFixture(t)
	program := f.createProgram(t, 4)

	// One simulated collision is absorbed by the retry loop.
	f.weekRepo.forceDuplicates = 1
	week, err := f.programs.AddWeek(context.Background(), program.ID, "Week 1")
	require.NoError(t, err)
	assert.Equal(t, 2, week.Order) // first allocation burned by the collision

	// Collisions on every attempt surface as a conflict.
	f.weekRepo.forceDuplicates = orderRetries
	_, err = f.programs.AddWeek(context.Background(), program.ID, "Week 2")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddWeek_StructureFrozenOffActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)

	require.NoError(t, f.progression.CancelProgram(ctx, program.ID))

	_, err := f.programs.AddWeek(ctx, program.ID, "Too late")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAssignExercise_ReplacesInPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)
	week := f.addWeek(t, program.ID, "Week 1")
	day := f.addDay(t, week.ID, "Push")
	exercise := f.addExercise(t, "Bench Press")

	first, err := f.programs.AssignExercise(ctx, day.ID, exercise.ID, []string{"reps", "weight"}, []string{"8-12", "60kg"})
	require.NoError(t, err)

	second, err := f.programs.AssignExercise(ctx, day.ID, exercise.ID, []string{"reps", "rpe"}, []string{"5", "8"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	assignments, err := f.programs.AssignmentsOf(ctx, day.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	reps, ok := assignments[0].Targets.Value(domain.DimensionReps)
	require.True(t, ok)
	assert.Equal(t, "5", reps)
	_, ok = assignments[0].Targets.Value(domain.DimensionWeight)
	assert.False(t, ok, "replaced spec should not keep old dimensions")
}

func TestAssignExercise_RejectsBadSpecs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)
	week := f.addWeek(t, program.ID, "Week 1")
	day := f.addDay(t, week.ID, "Push")
	exercise := f.addExercise(t, "Squat")

	cases := []struct {
		name       string
		dimensions []string
		values     []string
	}{
		{"length mismatch", []string{"reps", "weight"}, []string{"8"}},
		{"unknown dimension", []string{"velocity"}, []string{"0.4"}},
		{"duplicate dimension", []string{"reps", "reps"}, []string{"8", "10"}},
		{"empty", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.programs.AssignExercise(ctx, day.ID, exercise.ID, tc.dimensions, tc.values)
			assert.ErrorIs(t, err, domain.ErrInvalidSpecification)
		})
	}
}

func TestRemoveWeek_CascadesAndClearsPointer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)
	week := f.addWeek(t, program.ID, "Week 1")
	day := f.addDay(t, week.ID, "Push")
	exercise := f.addExercise(t, "Deadlift")
	_, err := f.programs.AssignExercise(ctx, day.ID, exercise.ID, []string{"reps"}, []string{"5"})
	require.NoError(t, err)

	_, err = f.progression.AdvanceTo(ctx, program.ID, week.ID, day.ID)
	require.NoError(t, err)

	require.NoError(t, f.programs.RemoveWeek(ctx, program.ID, week.ID))

	// Pointer no longer dangles on the removed week.
	got, err := f.programs.GetProgram(ctx, program.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentWeekID)
	assert.Nil(t, got.CurrentDayID)

	// Days and assignments went with the week.
	_, err = f.dayRepo.GetByID(ctx, day.ID)
	assert.Error(t, err)
	count, err := f.dayExRepo.CountByExerciseID(ctx, exercise.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRemoveWeek_WrongProgram(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)
	other, err := f.programs.CreateProgram(ctx, f.coach.ID, f.client.ID, "Other", "", 4)
	require.NoError(t, err)
	week := f.addWeek(t, program.ID, "Week 1")

	err = f.programs.RemoveWeek(ctx, other.ID, week.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The week survives a mismatched delete.
	weeks, err := f.programs.WeeksOf(ctx, program.ID)
	require.NoError(t, err)
	assert.Len(t, weeks, 1)
}

func TestDeleteProgram_CascadesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	program := f.createProgram(t, 4)
	week := f.addWeek(t, program.ID, "Week 1")
	day := f.addDay(t, week.ID, "Push")
	exercise := f.addExercise(t, "Row")
	_, err := f.programs.AssignExercise(ctx, day.ID, exercise.ID, []string{"reps"}, []string{"10"})
	require.NoError(t, err)
	weight := 40.0
	_, err = f.progress.RecordLog(ctx, RecordLogParams{
		ProgramID:  program.ID,
		UserID:     f.client.ID,
		WeekID:     week.ID,
		DayID:      day.ID,
		ExerciseID: &exercise.ID,
		Weight:     &weight,
	})
	require.NoError(t, err)
	_, err = f.comments.PostComment(ctx, PostCommentParams{
		ProgramID: program.ID,
		AuthorID:  f.client.ID,
		Content:   "felt good",
	})
	require.NoError(t, err)

	require.NoError(t, f.programs.DeleteProgram(ctx, program.ID))

	_, err = f.programs.GetProgram(ctx, program.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	logs, err := f.logRepo.GetByProgramID(ctx, program.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
	comments, err := f.commentRepo.GetTopLevelByProgramID(ctx, program.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
